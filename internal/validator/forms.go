package validator

import "regexp"

var (
	phoneRe    = regexp.MustCompile(`^[0-9+\-() ]{7,20}$`)
	postcodeRe = regexp.MustCompile(`^[0-9A-Za-z\- ]{3,12}$`)
)

// ログイン
func SigninSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "email", Rules: []Rule{
			Required("Email is required"),
			Email("Invalid email address"),
		}},
		{Name: "password", Rules: []Rule{
			Required("Password is required"),
		}},
	}}
}

// 会員登録
func SignupSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "first_name", Rules: []Rule{
			Required("First name is required"),
			MaxLen(100, "First name is too long"),
		}},
		{Name: "last_name", Rules: []Rule{
			Required("Last name is required"),
			MaxLen(100, "Last name is too long"),
		}},
		{Name: "email", Rules: []Rule{
			Required("Email is required"),
			Email("Invalid email address"),
		}},
		{Name: "password", Rules: []Rule{
			Required("Password is required"),
			MinLen(8, "Password must be at least 8 characters"),
			MaxLen(72, "Password is too long"),
		}},
		{Name: "confirm_password", Rules: []Rule{
			Required("Please confirm your password"),
			EqualsField("password", "Passwords do not match"),
		}},
	}}
}

// 住所（billing/shipping共通のフラット形）
func AddressSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "first_name", Rules: []Rule{Required("First name is required")}},
		{Name: "last_name", Rules: []Rule{Required("Last name is required")}},
		{Name: "address_1", Rules: []Rule{Required("Address is required")}},
		{Name: "city", Rules: []Rule{Required("City is required")}},
		{Name: "state", Rules: []Rule{Required("State is required")}},
		{Name: "postcode", Rules: []Rule{
			Required("Postcode is required"),
			Pattern(postcodeRe, "Invalid postcode"),
		}},
		{Name: "country", Rules: []Rule{Required("Country is required")}},
		{Name: "phone", Rules: []Rule{Pattern(phoneRe, "Invalid phone number")}},
	}}
}

// チェックアウト。ship_to_different=true のときだけ配送先が必須になる。
func CheckoutSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "billing_first_name", Rules: []Rule{Required("First name is required")}},
		{Name: "billing_last_name", Rules: []Rule{Required("Last name is required")}},
		{Name: "billing_email", Rules: []Rule{
			Required("Email is required"),
			Email("Invalid email address"),
		}},
		{Name: "billing_phone", Rules: []Rule{
			Required("Phone is required"),
			Pattern(phoneRe, "Invalid phone number"),
		}},
		{Name: "billing_address_1", Rules: []Rule{Required("Address is required")}},
		{Name: "billing_city", Rules: []Rule{Required("City is required")}},
		{Name: "billing_state", Rules: []Rule{Required("State is required")}},
		{Name: "billing_postcode", Rules: []Rule{
			Required("Postcode is required"),
			Pattern(postcodeRe, "Invalid postcode"),
		}},
		{Name: "billing_country", Rules: []Rule{Required("Country is required")}},

		{Name: "ship_to_different", Rules: nil},
		{Name: "shipping_first_name", Rules: []Rule{RequiredIf("ship_to_different", "First name is required")}},
		{Name: "shipping_last_name", Rules: []Rule{RequiredIf("ship_to_different", "Last name is required")}},
		{Name: "shipping_address_1", Rules: []Rule{RequiredIf("ship_to_different", "Address is required")}},
		{Name: "shipping_city", Rules: []Rule{RequiredIf("ship_to_different", "City is required")}},
		{Name: "shipping_state", Rules: []Rule{RequiredIf("ship_to_different", "State is required")}},
		{Name: "shipping_postcode", Rules: []Rule{RequiredIf("ship_to_different", "Postcode is required")}},
		{Name: "shipping_country", Rules: []Rule{RequiredIf("ship_to_different", "Country is required")}},
	}}
}

// 商品レビュー
func ReviewSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "product_id", Rules: []Rule{Required("Product is required")}},
		{Name: "reviewer", Rules: []Rule{Required("Name is required")}},
		{Name: "reviewer_email", Rules: []Rule{
			Required("Email is required"),
			Email("Invalid email address"),
		}},
		{Name: "rating", Rules: []Rule{
			Required("Rating is required"),
			IntRange(1, 5, "Rating must be between 1 and 5"),
		}},
		{Name: "review", Rules: []Rule{
			Required("Review is required"),
			MinLen(10, "Review must be at least 10 characters"),
			MaxLen(2000, "Review is too long"),
		}},
	}}
}

// お問い合わせ
func ContactSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "name", Rules: []Rule{Required("Name is required")}},
		{Name: "email", Rules: []Rule{
			Required("Email is required"),
			Email("Invalid email address"),
		}},
		{Name: "subject", Rules: []Rule{MaxLen(200, "Subject is too long")}},
		{Name: "message", Rules: []Rule{
			Required("Message is required"),
			MinLen(10, "Message must be at least 10 characters"),
			MaxLen(5000, "Message is too long"),
		}},
		{Name: "recaptcha_token", Rules: nil},
	}}
}
