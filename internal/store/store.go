// Package store はユーザーごとのカート・お気に入りのセッション状態。
// 合計・点数は常に明細から再計算し、別で持たない。
package store

import (
	"sync"

	"storefront/internal/domain/model"

	"github.com/samber/lo"
)

// カートのスナップショット（handlerがそのままJSONで返す）
type CartState struct {
	Items  []model.CartLine     `json:"items"`
	Total  float64              `json:"total"`
	Count  int64                `json:"count"`
	Coupon *model.AppliedCoupon `json:"coupon,omitempty"`
}

// Store は1ユーザー分の状態。全操作はロック下で行う。
type Store struct {
	mu       sync.Mutex
	lines    []model.CartLine
	wishlist []model.WishlistEntry
	backup   *model.CartBackup
	coupon   *model.AppliedCoupon
	total    float64
	count    int64
}

func New() *Store {
	return &Store{}
}

// AddToCart は同一商品なら数量を加算、無ければ明細を追加する。
func (s *Store) AddToCart(p model.CatalogProduct, qty int64) CartState {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.addLocked(p, qty)
	return s.snapshotLocked()
}

// RemoveFromCart は該当IDの明細を落とす。
func (s *Store) RemoveFromCart(productID int64) CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(productID)
	return s.snapshotLocked()
}

// UpdateQuantity は数量を上書きする。0以下は削除と同じ。
func (s *Store) UpdateQuantity(productID int64, qty int64) CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		s.removeLocked(productID)
		return s.snapshotLocked()
	}

	for i := range s.lines {
		if s.lines[i].ID == productID {
			s.lines[i].Quantity = qty
			break
		}
	}

	s.recomputeLocked()
	return s.snapshotLocked()
}

// Clear はカートを空にする。
func (s *Store) Clear() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	return s.snapshotLocked()
}

// ReplaceCart はWordPress側の保存内容で丸ごと置き換える（マージしない）。
func (s *Store) ReplaceCart(lines []model.CartLine) CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = append([]model.CartLine(nil), lines...)
	s.recomputeLocked()
	return s.snapshotLocked()
}

// Backup は現在のカートをスナップショットする。前のバックアップは上書き。
func (s *Store) Backup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.backupLocked()
}

// Restore はバックアップがあればカートを差し戻し、スロットを消費する。
// バックアップが無ければ何もしない。
func (s *Store) Restore() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backup != nil {
		s.lines = append([]model.CartLine(nil), s.backup.Lines...)
		s.backup = nil
		s.recomputeLocked()
	}

	return s.snapshotLocked()
}

// BuyNow は「バックアップ→クリア→1点追加」を1ロックで行う。
// 途中状態（クリア後にバックアップ等）は外から観測できない。
func (s *Store) BuyNow(p model.CatalogProduct, qty int64) CartState {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) > 0 {
		s.backupLocked()
	}
	s.clearLocked()
	s.addLocked(p, qty)

	return s.snapshotLocked()
}

func (s *Store) HasBackup() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backup != nil
}

// Cart は現在のスナップショットを返す。
func (s *Store) Cart() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Lines はWordPressへ保存する明細コピーを返す。
func (s *Store) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CartLine(nil), s.lines...)
}

// =====================
// Wishlist
// =====================

// AddToWishlist は重複追加を無視する（冪等）。
func (s *Store) AddToWishlist(p model.CatalogProduct) []model.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists := lo.ContainsBy(s.wishlist, func(e model.WishlistEntry) bool {
		return e.ID == p.ID
	})
	if !exists {
		s.wishlist = append(s.wishlist, model.NewWishlistEntry(p))
	}

	return s.wishlistLocked()
}

func (s *Store) RemoveFromWishlist(productID int64) []model.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlist = lo.Reject(s.wishlist, func(e model.WishlistEntry, _ int) bool {
		return e.ID == productID
	})

	return s.wishlistLocked()
}

// ReplaceWishlist もロード時の丸ごと置き換え。IDはユニークにする。
func (s *Store) ReplaceWishlist(entries []model.WishlistEntry) []model.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlist = lo.UniqBy(entries, func(e model.WishlistEntry) int64 { return e.ID })
	return s.wishlistLocked()
}

func (s *Store) Wishlist() []model.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlistLocked()
}

// =====================
// Coupon
// =====================

// ApplyCoupon は適用中クーポンを置き換える（同時に1枚）。
func (s *Store) ApplyCoupon(c model.AppliedCoupon) CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupon = &c
	return s.snapshotLocked()
}

func (s *Store) RemoveCoupon() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupon = nil
	return s.snapshotLocked()
}

func (s *Store) Coupon() *model.AppliedCoupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.coupon == nil {
		return nil
	}
	cp := *s.coupon
	return &cp
}

// =====================
// 内部（ロック保持前提）
// =====================

func (s *Store) addLocked(p model.CatalogProduct, qty int64) {
	for i := range s.lines {
		if s.lines[i].ID == p.ID {
			s.lines[i].Quantity += qty
			s.recomputeLocked()
			return
		}
	}

	s.lines = append(s.lines, model.NewCartLine(p, qty))
	s.recomputeLocked()
}

func (s *Store) removeLocked(productID int64) {
	s.lines = lo.Reject(s.lines, func(l model.CartLine, _ int) bool {
		return l.ID == productID
	})
	s.recomputeLocked()
}

func (s *Store) clearLocked() {
	s.lines = nil
	s.recomputeLocked()
}

func (s *Store) backupLocked() {
	s.backup = &model.CartBackup{
		Lines: append([]model.CartLine(nil), s.lines...),
		Total: s.total,
		Count: s.count,
	}
}

// 合計・点数を明細から再計算する。単価はprice→regular_priceの順で解決。
func (s *Store) recomputeLocked() {
	s.total = lo.SumBy(s.lines, func(l model.CartLine) float64 {
		return l.LineTotal()
	})
	s.count = lo.SumBy(s.lines, func(l model.CartLine) int64 {
		return l.Quantity
	})
}

func (s *Store) snapshotLocked() CartState {
	st := CartState{
		Items: append([]model.CartLine(nil), s.lines...),
		Total: s.total,
		Count: s.count,
	}
	if s.coupon != nil {
		cp := *s.coupon
		st.Coupon = &cp
	}
	return st
}

func (s *Store) wishlistLocked() []model.WishlistEntry {
	return append([]model.WishlistEntry(nil), s.wishlist...)
}
