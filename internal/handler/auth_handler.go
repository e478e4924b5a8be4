package handler

import (
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/store"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

const refreshCookieName = "refresh_token"

// /api/auth のHTTP
type AuthHandler struct {
	uc           *usecase.AuthUsecase
	stores       *store.Manager
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase, stores *store.Manager, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		stores:       stores,
		cookieSecure: cfg.GoEnv != "dev",
	}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group, cfg config.Config) {
	auth := g.Group("/auth")

	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/refresh", h.refresh)
	auth.POST("/logout", h.logout)

	me := auth.Group("")
	me.Use(middleware.AuthJWT(cfg))
	me.GET("/me", h.me)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid body"})
	}

	result, err := h.uc.Login(c.Request().Context(), req, c.Request().UserAgent())
	if err != nil {
		return writeError(c, err)
	}

	h.setRefreshCookie(c, result.RefreshTokenPlain)

	return c.JSON(http.StatusOK, result.Body)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return unauthorized(c)
	}

	result, err := h.uc.Refresh(c.Request().Context(), cookie.Value, c.Request().UserAgent())
	if err != nil {
		h.clearRefreshCookie(c)
		return writeError(c, err)
	}

	h.setRefreshCookie(c, result.RefreshTokenPlain)

	return c.JSON(http.StatusOK, result.Body)
}

func (h *AuthHandler) logout(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return unauthorized(c)
	}

	userID, err := h.uc.Logout(c.Request().Context(), cookie.Value)
	if err != nil {
		return writeError(c, err)
	}

	//セッションのカート/お気に入りを破棄（永続コピーはWordPress側に残る）
	h.stores.Dispose(userID)
	h.clearRefreshCookie(c)

	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "logout success"})
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	dto, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto)
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/auth",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/auth",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
