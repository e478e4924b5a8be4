package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/user/addresses（実体はWooCommerce顧客に保存される）
type AddressHandler struct {
	uc *usecase.AddressUsecase
}

func NewAddressHandler(uc *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

func (h *AddressHandler) RegisterRoutes(g *echo.Group, cfg config.Config, userRepo repository.UserRepository) {
	user := g.Group("/user")
	user.Use(middleware.AuthJWT(cfg))
	user.Use(middleware.TokenVersionGuard(userRepo))

	user.GET("/addresses", h.get)
	user.POST("/addresses", h.save)
	user.PUT("/addresses", h.save)
	user.DELETE("/addresses", h.delete)
}

func (h *AddressHandler) get(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	pair, err := h.uc.GetAddresses(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, pair)
}

func (h *AddressHandler) save(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req usecase.SaveAddressesInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid body"})
	}

	pair, err := h.uc.SaveAddresses(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, pair)
}

func (h *AddressHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.uc.DeleteAddresses(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "addresses deleted"})
}
