package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/contact, /api/recaptcha
type ContactHandler struct {
	uc *usecase.ContactUsecase
}

func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/contact", h.send)
	g.POST("/recaptcha/verify", h.verify)
}

func (h *ContactHandler) send(c echo.Context) error {
	var req usecase.ContactInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid body"})
	}

	if err := h.uc.SendMessage(c.Request().Context(), req); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "message sent"})
}

type verifyRequest struct {
	Token string `json:"token"`
}

func (h *ContactHandler) verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid body"})
	}

	ok, err := h.uc.VerifyToken(c.Request().Context(), req.Token)
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "reCAPTCHA verification failed"})
	}

	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "verified"})
}
