package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/reviews
type ReviewHandler struct {
	uc *usecase.ProductUsecase
}

func NewReviewHandler(uc *usecase.ProductUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/reviews", h.list)
	g.POST("/reviews", h.create)
}

func (h *ReviewHandler) list(c echo.Context) error {
	productID, err := strconv.ParseInt(c.QueryParam("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid product_id"})
	}

	reviews, err := h.uc.ListReviews(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) create(c echo.Context) error {
	var req usecase.CreateReviewInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid body"})
	}

	created, err := h.uc.CreateReview(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}
