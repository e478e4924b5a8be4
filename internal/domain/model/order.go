package model

// WooCommerce wc/v3 の注文レスポンス（使う項目だけ）
type Order struct {
	ID            int64           `json:"id"`
	Number        string          `json:"number"`
	Status        string          `json:"status"`
	Currency      string          `json:"currency"`
	Total         string          `json:"total"`
	DiscountTotal string          `json:"discount_total"`
	DateCreated   string          `json:"date_created"`
	CustomerID    int64           `json:"customer_id"`
	Billing       Address         `json:"billing"`
	Shipping      Address         `json:"shipping"`
	LineItems     []OrderLineItem `json:"line_items"`
	CouponLines   []OrderCoupon   `json:"coupon_lines"`
	PaymentMethod string          `json:"payment_method"`
}

type OrderLineItem struct {
	ID        int64  `json:"id,omitempty"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Quantity  int64  `json:"quantity"`
	Price     string `json:"price,omitempty"`
	Total     string `json:"total,omitempty"`
}

type OrderCoupon struct {
	Code     string `json:"code"`
	Discount string `json:"discount,omitempty"`
}

// 注文作成リクエスト（wc/v3/orders POST）
type OrderCreateRequest struct {
	CustomerID    int64           `json:"customer_id,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	PaymentTitle  string          `json:"payment_method_title"`
	SetPaid       bool            `json:"set_paid"`
	Billing       Address         `json:"billing"`
	Shipping      Address         `json:"shipping"`
	LineItems     []OrderLineItem `json:"line_items"`
	CouponLines   []OrderCoupon   `json:"coupon_lines,omitempty"`
}
