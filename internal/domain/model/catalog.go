package model

// WooCommerce wc/v3 の商品レスポンスに合わせる。
// price系はWooCommerceが文字列で返すので文字列のまま持つ。
type CatalogProduct struct {
	ID               int64              `json:"id"`
	Name             string             `json:"name"`
	Slug             string             `json:"slug"`
	Description      string             `json:"description"`
	ShortDescription string             `json:"short_description"`
	Price            string             `json:"price"`
	RegularPrice     string             `json:"regular_price"`
	SalePrice        string             `json:"sale_price"`
	PriceHTML        string             `json:"price_html"`
	StockStatus      string             `json:"stock_status"`
	AverageRating    string             `json:"average_rating"`
	RatingCount      int64              `json:"rating_count"`
	Images           []ProductImage     `json:"images"`
	Attributes       []ProductAttribute `json:"attributes"`
	Categories       []CategoryRef      `json:"categories"`
}

type ProductImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type ProductAttribute struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// 商品一覧のカテゴリ（wc/v3/products/categories）
type Category struct {
	ID     int64         `json:"id"`
	Name   string        `json:"name"`
	Slug   string        `json:"slug"`
	Parent int64         `json:"parent"`
	Count  int64         `json:"count"`
	Image  *ProductImage `json:"image,omitempty"`
}

// 商品レビュー（wc/v3/products/reviews）
type Review struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Reviewer  string `json:"reviewer"`
	Email     string `json:"reviewer_email"`
	Rating    int    `json:"rating"`
	Review    string `json:"review"`
	CreatedAt string `json:"date_created"`
}
