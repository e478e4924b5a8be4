package model

// WooCommerce customerのbilling/shippingに合わせる
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// 請求先・配送先のペア
type AddressPair struct {
	Billing  Address `json:"billing"`
	Shipping Address `json:"shipping"`
}

func (a Address) IsEmpty() bool {
	return a.Address1 == "" && a.City == "" && a.Postcode == ""
}

func (p AddressPair) IsEmpty() bool {
	return p.Billing.IsEmpty() && p.Shipping.IsEmpty()
}
