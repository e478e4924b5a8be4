package model

import "strconv"

// カートの明細（商品＋数量）
type CartLine struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Price        string             `json:"price"`
	RegularPrice string             `json:"regular_price"`
	Quantity     int64              `json:"quantity"`
	Images       []ProductImage     `json:"images"`
	Attributes   []ProductAttribute `json:"attributes"`
}

// お気に入り（数量の概念なし）
type WishlistEntry struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Price        string             `json:"price"`
	RegularPrice string             `json:"regular_price"`
	Images       []ProductImage     `json:"images"`
	Attributes   []ProductAttribute `json:"attributes"`
}

// Buy Now前のカートスナップショット。restoreで1回だけ消費する。
type CartBackup struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
	Count int64      `json:"count"`
}

// 適用中クーポン。同時に1枚まで。
type AppliedCoupon struct {
	Code         string `json:"code"`
	Description  string `json:"description"`
	DiscountType string `json:"discount_type"` // percent / fixed_cart
	Amount       string `json:"amount"`
}

// 商品→カート明細
func NewCartLine(p CatalogProduct, qty int64) CartLine {
	return CartLine{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Price:        p.Price,
		RegularPrice: p.RegularPrice,
		Quantity:     qty,
		Images:       p.Images,
		Attributes:   p.Attributes,
	}
}

// 商品→お気に入り
func NewWishlistEntry(p CatalogProduct) WishlistEntry {
	return WishlistEntry{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Price:        p.Price,
		RegularPrice: p.RegularPrice,
		Images:       p.Images,
		Attributes:   p.Attributes,
	}
}

// 単価の解決。priceが空ならregular_priceへフォールバック、数値にできなければ0。
// カート合計・チェックアウト・請求書PDFはすべてここを通す。
func ResolveUnitPrice(price string, regularPrice string) float64 {
	candidate := price
	if candidate == "" {
		candidate = regularPrice
	}
	return ParsePrice(candidate)
}

// 数値にできない値は0として扱う
func ParsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func (l CartLine) UnitPrice() float64 {
	return ResolveUnitPrice(l.Price, l.RegularPrice)
}

func (l CartLine) LineTotal() float64 {
	return l.UnitPrice() * float64(l.Quantity)
}

// クーポン適用後の合計。percentは割合、それ以外は定額。0未満にはしない。
func (cp *AppliedCoupon) Apply(total float64) float64 {
	if cp == nil {
		return total
	}

	amount := ParsePrice(cp.Amount)

	var discounted float64
	if cp.DiscountType == "percent" {
		discounted = total - total*amount/100
	} else {
		discounted = total - amount
	}

	if discounted < 0 {
		return 0
	}
	return discounted
}
