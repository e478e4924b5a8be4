package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/infra/woocommerce"
	"storefront/internal/store"
)

type CouponClient interface {
	GetCouponByCode(ctx context.Context, code string) (woocommerce.Coupon, error)
}

type CouponUsecase struct {
	stores *store.Manager
	client CouponClient
}

func NewCouponUsecase(stores *store.Manager, client CouponClient) *CouponUsecase {
	return &CouponUsecase{stores: stores, client: client}
}

type ApplyCouponInput struct {
	Code string `json:"code"`
}

// ApplyCoupon はWooCommerceでコードを照合して適用する。
// 既に適用中のクーポンは置き換える（同時に1枚）。
func (u *CouponUsecase) ApplyCoupon(ctx context.Context, userID int64, in ApplyCouponInput) (store.CartState, error) {
	if userID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	code := strings.ToLower(strings.TrimSpace(in.Code))
	if code == "" {
		return store.CartState{}, NewHTTPError(http.StatusBadRequest, "coupon code required")
	}

	coupon, err := u.client.GetCouponByCode(ctx, code)
	if err == woocommerce.ErrNotFound {
		return store.CartState{}, NewHTTPError(http.StatusNotFound, "coupon not found")
	}
	if err != nil {
		slog.Error("failed to load coupon", "code", code, "error", err)
		return store.CartState{}, NewHTTPError(http.StatusBadGateway, "failed to load coupon")
	}

	//期限切れチェック（date_expiresはWooCommerceのローカル形式）
	if coupon.DateExpires != "" {
		if exp, perr := time.Parse("2006-01-02T15:04:05", coupon.DateExpires); perr == nil && exp.Before(time.Now()) {
			return store.CartState{}, NewHTTPError(http.StatusBadRequest, "coupon expired")
		}
	}

	return u.stores.Get(userID).ApplyCoupon(model.AppliedCoupon{
		Code:         coupon.Code,
		Description:  coupon.Description,
		DiscountType: coupon.DiscountType,
		Amount:       coupon.Amount,
	}), nil
}

func (u *CouponUsecase) RemoveCoupon(ctx context.Context, userID int64) (store.CartState, error) {
	if userID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.stores.Get(userID).RemoveCoupon(), nil
}
