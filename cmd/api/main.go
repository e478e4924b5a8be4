package main

import (
	"log/slog"
	"os"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/infra/woocommerce"
	"storefront/internal/server"
	"storefront/internal/store"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		slog.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
	); err != nil {
		slog.Error("db migrate failed", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)

	//WooCommerce/WordPressクライアントとセッションストア
	wc := woocommerce.NewClient(cfg)
	stores := store.NewManager()

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo)
	productUC := usecase.NewProductUsecase(wc)
	cartUC := usecase.NewCartUsecase(stores, wc, wc)
	wishlistUC := usecase.NewWishlistUsecase(stores, wc, wc)
	couponUC := usecase.NewCouponUsecase(stores, wc)
	orderUC := usecase.NewOrderUsecase(stores, wc, wc)
	addressUC := usecase.NewAddressUsecase(wc)
	contactUC := usecase.NewContactUsecase(
		usecase.NewGoogleRecaptcha(cfg),
		usecase.NewSendGridMailer(cfg),
	)

	//Handler生成
	h := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC, stores, cfg),
		Product:  handler.NewProductHandler(productUC),
		Review:   handler.NewReviewHandler(productUC),
		Cart:     handler.NewCartHandler(cartUC),
		Wishlist: handler.NewWishlistHandler(wishlistUC),
		Coupon:   handler.NewCouponHandler(couponUC),
		Order:    handler.NewOrderHandler(orderUC),
		Address:  handler.NewAddressHandler(addressUC),
		Contact:  handler.NewContactHandler(contactUC),
	}

	e := server.New(cfg, h, userRepo)

	slog.Info("server starting", "port", cfg.Port)
	if err := server.Start(e, cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
