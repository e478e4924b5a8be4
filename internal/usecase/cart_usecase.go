package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/infra/woocommerce"
	"storefront/internal/store"
)

// カート/お気に入りの永続化先（WordPressのカスタムエンドポイント）
type SyncClient interface {
	GetSavedJSON(ctx context.Context, kind string, userID int64) (json.RawMessage, error)
	SaveJSON(ctx context.Context, kind string, userID int64, payload any) error
}

const (
	syncKindCart     = "cart"
	syncKindWishlist = "wishlist"
)

// CartUsecase はカート操作とWordPress同期。
// 状態そのものはstore.Managerが持ち、ここは商品検証と同期だけを足す。
type CartUsecase struct {
	stores  *store.Manager
	catalog CatalogClient
	sync    SyncClient
}

func NewCartUsecase(stores *store.Manager, catalog CatalogClient, sync SyncClient) *CartUsecase {
	return &CartUsecase{
		stores:  stores,
		catalog: catalog,
		sync:    sync,
	}
}

type AddCartInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type UpdateCartItemInput struct {
	Quantity int64 `json:"quantity"`
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (store.CartState, error) {
	if userID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.stores.Get(userID).Cart(), nil
}

// AddToCart は商品を検証してから追加する（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (store.CartState, error) {
	if userID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return store.CartState{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.fetchPurchasable(ctx, in.ProductID)
	if err != nil {
		return store.CartState{}, err
	}

	return u.stores.Get(userID).AddToCart(p, in.Quantity), nil
}

// 数量変更。0以下は削除として扱う。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, productID int64, in UpdateCartItemInput) (store.CartState, error) {
	if userID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	return u.stores.Get(userID).UpdateQuantity(productID, in.Quantity), nil
}

func (u *CartUsecase) RemoveCartItem(ctx context.Context, userID int64, productID int64) (store.CartState, error) {
	if userID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	return u.stores.Get(userID).RemoveFromCart(productID), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (store.CartState, error) {
	if userID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.stores.Get(userID).Clear(), nil
}

// BuyNow は既存カートを退避して対象1点だけのカートにする。
// 退避→クリア→追加はstore側で1ロック内に行われる。
func (u *CartUsecase) BuyNow(ctx context.Context, userID int64, in AddCartInput) (store.CartState, error) {
	if userID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	p, err := u.fetchPurchasable(ctx, in.ProductID)
	if err != nil {
		return store.CartState{}, err
	}

	return u.stores.Get(userID).BuyNow(p, in.Quantity), nil
}

// RestoreCart はBuy Now前のカートへ戻す。退避が無ければ何もしない。
func (u *CartUsecase) RestoreCart(ctx context.Context, userID int64) (store.CartState, error) {
	if userID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.stores.Get(userID).Restore(), nil
}

// LoadCartFromWordPress は保存済みカートで丸ごと置き換える。
// 見つからなければ空、通信失敗ならローカルを触らずログだけ残す。
func (u *CartUsecase) LoadCartFromWordPress(ctx context.Context, userID int64) (store.CartState, error) {
	if userID <= 0 {
		return store.CartState{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	st := u.stores.Get(userID)

	raw, err := u.sync.GetSavedJSON(ctx, syncKindCart, userID)
	if err == woocommerce.ErrNotFound {
		return st.ReplaceCart(nil), nil
	}
	if err != nil {
		slog.Error("failed to load cart from wordpress", "user_id", userID, "error", err)
		return st.Cart(), nil
	}

	var lines []model.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		slog.Error("saved cart is malformed", "user_id", userID, "error", err)
		return st.Cart(), nil
	}

	return st.ReplaceCart(lines), nil
}

// SaveCartToWordPress はカート全体を送る。空カートは送らない。
// 失敗してもエラーは返さない（ログのみ）。
func (u *CartUsecase) SaveCartToWordPress(ctx context.Context, userID int64) (saved bool) {
	if userID <= 0 {
		return false
	}

	lines := u.stores.Get(userID).Lines()
	if len(lines) == 0 {
		return false
	}

	if err := u.sync.SaveJSON(ctx, syncKindCart, userID, lines); err != nil {
		slog.Error("failed to save cart to wordpress", "user_id", userID, "error", err)
		return false
	}

	slog.Info("cart saved to wordpress", "user_id", userID, "items", len(lines))
	return true
}

// セッション破棄（ログアウト時）
func (u *CartUsecase) DisposeSession(userID int64) {
	u.stores.Dispose(userID)
}

// 商品の存在と購入可否をWooCommerce側で確認する
func (u *CartUsecase) fetchPurchasable(ctx context.Context, productID int64) (model.CatalogProduct, error) {
	p, err := u.catalog.GetProduct(ctx, productID)
	if err == woocommerce.ErrNotFound {
		return model.CatalogProduct{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		slog.Error("failed to load product for cart", "product_id", productID, "error", err)
		return model.CatalogProduct{}, NewHTTPError(http.StatusBadGateway, "failed to load product")
	}
	if p.StockStatus == "outofstock" {
		return model.CatalogProduct{}, NewHTTPError(http.StatusBadRequest, "out of stock")
	}
	return p, nil
}
