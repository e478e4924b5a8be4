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

type WishlistUsecase struct {
	stores  *store.Manager
	catalog CatalogClient
	sync    SyncClient
}

func NewWishlistUsecase(stores *store.Manager, catalog CatalogClient, sync SyncClient) *WishlistUsecase {
	return &WishlistUsecase{
		stores:  stores,
		catalog: catalog,
		sync:    sync,
	}
}

type WishlistResponse struct {
	Items []model.WishlistEntry `json:"items"`
}

func (u *WishlistUsecase) GetWishlist(ctx context.Context, userID int64) (WishlistResponse, error) {
	if userID <= 0 {
		return WishlistResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return WishlistResponse{Items: u.stores.Get(userID).Wishlist()}, nil
}

// 追加は冪等（既にあれば何もしない）。
func (u *WishlistUsecase) AddToWishlist(ctx context.Context, userID int64, productID int64) (WishlistResponse, error) {
	if userID <= 0 {
		return WishlistResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return WishlistResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	p, err := u.catalog.GetProduct(ctx, productID)
	if err == woocommerce.ErrNotFound {
		return WishlistResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		slog.Error("failed to load product for wishlist", "product_id", productID, "error", err)
		return WishlistResponse{}, NewHTTPError(http.StatusBadGateway, "failed to load product")
	}

	return WishlistResponse{Items: u.stores.Get(userID).AddToWishlist(p)}, nil
}

func (u *WishlistUsecase) RemoveFromWishlist(ctx context.Context, userID int64, productID int64) (WishlistResponse, error) {
	if userID <= 0 {
		return WishlistResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return WishlistResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	return WishlistResponse{Items: u.stores.Get(userID).RemoveFromWishlist(productID)}, nil
}

// 保存済みお気に入りで丸ごと置き換える（カートと同じ方針）。
func (u *WishlistUsecase) LoadWishlistFromWordPress(ctx context.Context, userID int64) (WishlistResponse, error) {
	if userID <= 0 {
		return WishlistResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	st := u.stores.Get(userID)

	raw, err := u.sync.GetSavedJSON(ctx, syncKindWishlist, userID)
	if err == woocommerce.ErrNotFound {
		return WishlistResponse{Items: st.ReplaceWishlist(nil)}, nil
	}
	if err != nil {
		slog.Error("failed to load wishlist from wordpress", "user_id", userID, "error", err)
		return WishlistResponse{Items: st.Wishlist()}, nil
	}

	var entries []model.WishlistEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.Error("saved wishlist is malformed", "user_id", userID, "error", err)
		return WishlistResponse{Items: st.Wishlist()}, nil
	}

	return WishlistResponse{Items: st.ReplaceWishlist(entries)}, nil
}

// 空なら送らない。失敗はログのみ。
func (u *WishlistUsecase) SaveWishlistToWordPress(ctx context.Context, userID int64) (saved bool) {
	if userID <= 0 {
		return false
	}

	entries := u.stores.Get(userID).Wishlist()
	if len(entries) == 0 {
		return false
	}

	if err := u.sync.SaveJSON(ctx, syncKindWishlist, userID, entries); err != nil {
		slog.Error("failed to save wishlist to wordpress", "user_id", userID, "error", err)
		return false
	}

	slog.Info("wishlist saved to wordpress", "user_id", userID, "items", len(entries))
	return true
}
