package store

import (
	"fmt"
	"testing"

	"storefront/internal/domain/model"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

func product(id int64, price string) model.CatalogProduct {
	return model.CatalogProduct{
		ID:    id,
		Name:  fmt.Sprintf("product-%d", id),
		Slug:  fmt.Sprintf("product-%d", id),
		Price: price,
	}
}

// =====================
// Cart
// =====================

func TestStore_AddToCart_MergesSameProduct(t *testing.T) {
	s := New()

	s.AddToCart(product(1, "100"), 2)
	st := s.AddToCart(product(1, "100"), 3)

	//同一商品は明細1行で数量加算
	assert.Len(t, st.Items, 1)
	assert.Equal(t, int64(5), st.Items[0].Quantity)
	assert.Equal(t, int64(5), st.Count)
	assert.Equal(t, 500.0, st.Total)
}

func TestStore_AddToCart_QuantityFloor(t *testing.T) {
	s := New()

	//0以下は1に切り上げ
	st := s.AddToCart(product(1, "50"), 0)
	assert.Equal(t, int64(1), st.Count)
	assert.Equal(t, 50.0, st.Total)
}

func TestStore_AddToCart_RegularPriceFallback(t *testing.T) {
	s := New()

	p := product(1, "")
	p.RegularPrice = "200"

	st := s.AddToCart(p, 1)
	assert.Equal(t, 200.0, st.Total)
}

func TestStore_AddToCart_UnparsablePriceIsZero(t *testing.T) {
	s := New()

	st := s.AddToCart(product(1, "abc"), 3)
	assert.Equal(t, 0.0, st.Total)
	assert.Equal(t, int64(3), st.Count)
}

func TestStore_UpdateQuantity_ZeroRemoves(t *testing.T) {
	s := New()
	s.AddToCart(product(1, "100"), 2)
	s.AddToCart(product(2, "30"), 1)

	st := s.UpdateQuantity(1, 0)

	//数量0は削除と同じ
	assert.Len(t, st.Items, 1)
	assert.Equal(t, int64(2), st.Items[0].ID)
	assert.Equal(t, 30.0, st.Total)
}

func TestStore_UpdateQuantity_Overwrites(t *testing.T) {
	s := New()
	s.AddToCart(product(1, "100"), 2)

	st := s.UpdateQuantity(1, 7)
	assert.Equal(t, int64(7), st.Count)
	assert.Equal(t, 700.0, st.Total)
}

func TestStore_RemoveFromCart(t *testing.T) {
	s := New()
	s.AddToCart(product(1, "100"), 1)
	s.AddToCart(product(2, "50"), 2)

	st := s.RemoveFromCart(1)
	assert.Len(t, st.Items, 1)
	assert.Equal(t, 100.0, st.Total)

	//存在しないIDは何も起きない
	st = s.RemoveFromCart(99)
	assert.Len(t, st.Items, 1)
}

func TestStore_ReplaceCart_DoesNotMerge(t *testing.T) {
	s := New()
	s.AddToCart(product(1, "100"), 5)

	//ロードは丸ごと置き換え（マージしない）
	st := s.ReplaceCart([]model.CartLine{
		{ID: 2, Price: "10", Quantity: 3},
	})

	assert.Len(t, st.Items, 1)
	assert.Equal(t, int64(2), st.Items[0].ID)
	assert.Equal(t, 30.0, st.Total)
	assert.Equal(t, int64(3), st.Count)
}

func TestStore_ReplaceCart_Nil(t *testing.T) {
	s := New()
	s.AddToCart(product(1, "100"), 1)

	st := s.ReplaceCart(nil)
	assert.Empty(t, st.Items)
	assert.Equal(t, 0.0, st.Total)
}

// =====================
// Buy Now / Restore
// =====================

func TestStore_BuyNow_BacksUpAndReplaces(t *testing.T) {
	s := New()
	s.AddToCart(product(1, "100"), 2)
	s.AddToCart(product(2, "50"), 1)

	st := s.BuyNow(product(3, "999"), 1)

	//カートは対象1点だけになる
	assert.Len(t, st.Items, 1)
	assert.Equal(t, int64(3), st.Items[0].ID)
	assert.Equal(t, 999.0, st.Total)
	assert.True(t, s.HasBackup())

	//restoreで元のカートに戻る
	restored := s.Restore()
	assert.Len(t, restored.Items, 2)
	assert.Equal(t, 250.0, restored.Total)
	assert.Equal(t, int64(3), restored.Count)

	//バックアップは1回で消費される
	assert.False(t, s.HasBackup())
}

func TestStore_BuyNow_EmptyCartMakesNoBackup(t *testing.T) {
	s := New()

	s.BuyNow(product(1, "100"), 2)
	assert.False(t, s.HasBackup())
}

func TestStore_Restore_NoBackupIsNoop(t *testing.T) {
	s := New()
	s.AddToCart(product(1, "100"), 1)

	st := s.Restore()
	assert.Len(t, st.Items, 1)
	assert.Equal(t, 100.0, st.Total)
}

func TestStore_BuyNow_OverwritesPreviousBackup(t *testing.T) {
	s := New()
	s.AddToCart(product(1, "100"), 1)

	s.BuyNow(product(2, "50"), 1)
	s.BuyNow(product(3, "20"), 1)

	//バックアップは直近のもの（product 2のカート）
	restored := s.Restore()
	assert.Len(t, restored.Items, 1)
	assert.Equal(t, int64(2), restored.Items[0].ID)
}

// =====================
// Wishlist
// =====================

func TestStore_AddToWishlist_Idempotent(t *testing.T) {
	s := New()

	s.AddToWishlist(product(1, "100"))
	entries := s.AddToWishlist(product(1, "100"))

	assert.Len(t, entries, 1)
}

func TestStore_RemoveFromWishlist(t *testing.T) {
	s := New()
	s.AddToWishlist(product(1, "100"))
	s.AddToWishlist(product(2, "50"))

	entries := s.RemoveFromWishlist(1)
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ID)
}

func TestStore_ReplaceWishlist_Dedupes(t *testing.T) {
	s := New()

	entries := s.ReplaceWishlist([]model.WishlistEntry{
		{ID: 1}, {ID: 2}, {ID: 1},
	})
	assert.Len(t, entries, 2)
}

// =====================
// Coupon
// =====================

func TestStore_ApplyCoupon_Replaces(t *testing.T) {
	s := New()
	s.AddToCart(product(1, "100"), 1)

	s.ApplyCoupon(model.AppliedCoupon{Code: "a", DiscountType: "percent", Amount: "10"})
	st := s.ApplyCoupon(model.AppliedCoupon{Code: "b", DiscountType: "fixed_cart", Amount: "20"})

	//同時に1枚だけ
	assert.NotNil(t, st.Coupon)
	assert.Equal(t, "b", st.Coupon.Code)

	st = s.RemoveCoupon()
	assert.Nil(t, st.Coupon)
}

// =====================
// 不変条件：どの操作列でも合計＝Σ(単価×数量)
// =====================

func TestStore_TotalInvariant_RandomOps(t *testing.T) {
	faker := gofakeit.New(1)
	s := New()

	products := make([]model.CatalogProduct, 10)
	for i := range products {
		products[i] = product(int64(i+1), fmt.Sprintf("%.2f", faker.Price(1, 500)))
	}

	for i := 0; i < 300; i++ {
		p := products[faker.IntRange(0, len(products)-1)]

		switch faker.IntRange(0, 4) {
		case 0:
			s.AddToCart(p, int64(faker.IntRange(1, 5)))
		case 1:
			s.RemoveFromCart(p.ID)
		case 2:
			s.UpdateQuantity(p.ID, int64(faker.IntRange(0, 5)))
		case 3:
			s.BuyNow(p, int64(faker.IntRange(1, 3)))
		case 4:
			s.Restore()
		}

		st := s.Cart()

		var wantTotal float64
		var wantCount int64
		for _, l := range st.Items {
			wantTotal += l.LineTotal()
			wantCount += l.Quantity
		}

		assert.InDelta(t, wantTotal, st.Total, 1e-9)
		assert.Equal(t, wantCount, st.Count)
	}
}

// =====================
// Manager
// =====================

func TestManager_GetIsolatesUsers(t *testing.T) {
	m := NewManager()

	m.Get(1).AddToCart(product(1, "100"), 1)

	assert.Equal(t, int64(1), m.Get(1).Cart().Count)
	assert.Equal(t, int64(0), m.Get(2).Cart().Count)

	//同じIDは同じStore
	assert.Same(t, m.Get(1), m.Get(1))
}

func TestManager_Dispose(t *testing.T) {
	m := NewManager()
	m.Get(1).AddToCart(product(1, "100"), 1)

	m.Dispose(1)

	//破棄後は空のStoreが新規に作られる
	assert.Equal(t, int64(0), m.Get(1).Cart().Count)
}
