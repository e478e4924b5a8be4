package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// 全ハンドラをまとめて受け取る
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Review   *handler.ReviewHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Coupon   *handler.CouponHandler
	Order    *handler.OrderHandler
	Address  *handler.AddressHandler
	Contact  *handler.ContactHandler
}

// New はルート登録済みのechoを返す。
func New(cfg config.Config, h Handlers, userRepo repository.UserRepository) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))

	api := e.Group("/api")

	h.Auth.RegisterRoutes(api, cfg)
	h.Product.RegisterRoutes(api)
	h.Review.RegisterRoutes(api)
	h.Cart.RegisterRoutes(api, cfg, userRepo)
	h.Wishlist.RegisterRoutes(api, cfg, userRepo)
	h.Coupon.RegisterRoutes(api, cfg, userRepo)
	h.Order.RegisterRoutes(api, cfg, userRepo)
	h.Address.RegisterRoutes(api, cfg, userRepo)
	h.Contact.RegisterRoutes(api)

	return e
}

// Start はサーバを起動する。
func Start(e *echo.Echo, cfg config.Config) error {
	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	return e.Start(addr)
}
