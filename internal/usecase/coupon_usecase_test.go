package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/infra/woocommerce"
	"storefront/internal/store"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCouponUsecase_ApplyCoupon_NormalizesCode(t *testing.T) {
	ctx := context.Background()
	client := new(MockCouponClient)
	stores := store.NewManager()

	//大文字・空白はWooCommerceへ送る前に正規化される
	client.On("GetCouponByCode", mock.Anything, "save10").Return(woocommerce.Coupon{
		ID:           1,
		Code:         "save10",
		DiscountType: "percent",
		Amount:       "10",
	}, nil)

	u := usecase.NewCouponUsecase(stores, client)

	st, err := u.ApplyCoupon(ctx, 1, usecase.ApplyCouponInput{Code: "  SAVE10  "})
	assert.NoError(t, err)
	assert.NotNil(t, st.Coupon)
	assert.Equal(t, "save10", st.Coupon.Code)
	assert.Equal(t, "percent", st.Coupon.DiscountType)

	client.AssertExpectations(t)
}

func TestCouponUsecase_ApplyCoupon_UnknownCode(t *testing.T) {
	ctx := context.Background()
	client := new(MockCouponClient)

	client.On("GetCouponByCode", mock.Anything, "nope").Return(woocommerce.Coupon{}, woocommerce.ErrNotFound)

	u := usecase.NewCouponUsecase(store.NewManager(), client)

	_, err := u.ApplyCoupon(ctx, 1, usecase.ApplyCouponInput{Code: "nope"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestCouponUsecase_ApplyCoupon_Expired(t *testing.T) {
	ctx := context.Background()
	client := new(MockCouponClient)

	expired := time.Now().Add(-24 * time.Hour).Format("2006-01-02T15:04:05")
	client.On("GetCouponByCode", mock.Anything, "old").Return(woocommerce.Coupon{
		Code:        "old",
		Amount:      "10",
		DateExpires: expired,
	}, nil)

	u := usecase.NewCouponUsecase(store.NewManager(), client)

	_, err := u.ApplyCoupon(ctx, 1, usecase.ApplyCouponInput{Code: "old"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "coupon expired", he.Message)
}

func TestCouponUsecase_ApplyCoupon_EmptyCode(t *testing.T) {
	u := usecase.NewCouponUsecase(store.NewManager(), new(MockCouponClient))

	_, err := u.ApplyCoupon(context.Background(), 1, usecase.ApplyCouponInput{Code: "   "})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestCouponUsecase_ApplyCoupon_UpstreamDown(t *testing.T) {
	ctx := context.Background()
	client := new(MockCouponClient)

	client.On("GetCouponByCode", mock.Anything, "save10").Return(woocommerce.Coupon{}, errors.New("timeout"))

	u := usecase.NewCouponUsecase(store.NewManager(), client)

	_, err := u.ApplyCoupon(ctx, 1, usecase.ApplyCouponInput{Code: "save10"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 502, he.Status)
}

func TestCouponUsecase_RemoveCoupon(t *testing.T) {
	ctx := context.Background()
	stores := store.NewManager()
	stores.Get(1).ApplyCoupon(model.AppliedCoupon{Code: "save10"})

	u := usecase.NewCouponUsecase(stores, new(MockCouponClient))

	st, err := u.RemoveCoupon(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, st.Coupon)
}
