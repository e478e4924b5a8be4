package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/domain/model"
	"storefront/internal/infra/woocommerce"
	"storefront/internal/invoice"
	"storefront/internal/store"
	"storefront/internal/validator"
)

type OrderClient interface {
	CreateOrder(ctx context.Context, req model.OrderCreateRequest) (model.Order, error)
	GetOrder(ctx context.Context, orderID int64) (model.Order, error)
	ListOrders(ctx context.Context, customerID int64) ([]model.Order, error)
}

type OrderUsecase struct {
	stores *store.Manager
	client OrderClient
	sync   SyncClient
}

func NewOrderUsecase(stores *store.Manager, client OrderClient, sync SyncClient) *OrderUsecase {
	return &OrderUsecase{
		stores: stores,
		client: client,
		sync:   sync,
	}
}

type CheckoutInput struct {
	Billing         model.Address `json:"billing"`
	Shipping        model.Address `json:"shipping"`
	ShipToDifferent bool          `json:"ship_to_different"`
	PaymentMethod   string        `json:"payment_method"`
}

type CheckoutOutput struct {
	Order model.Order     `json:"order"`
	Cart  store.CartState `json:"cart"`
}

// Checkout はカート内容からWooCommerce注文を作る。
// 成功したらカートとクーポンを空にし、空の状態をWordPressへ反映する。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	res := validator.CheckoutSchema().SafeParse(checkoutForm(in))
	if !res.OK {
		return CheckoutOutput{}, NewValidationError(res.Errors)
	}

	st := u.stores.Get(userID)
	cart := st.Cart()
	if len(cart.Items) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	//明細。単価はprice→regular_priceの順で解決して合計を付ける。
	lineItems := make([]model.OrderLineItem, 0, len(cart.Items))
	for _, l := range cart.Items {
		lineItems = append(lineItems, model.OrderLineItem{
			ProductID: l.ID,
			Quantity:  l.Quantity,
			Total:     fmt.Sprintf("%.2f", l.LineTotal()),
		})
	}

	shipping := in.Billing
	if in.ShipToDifferent {
		shipping = in.Shipping
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cod"
	}

	req := model.OrderCreateRequest{
		CustomerID:    userID,
		PaymentMethod: paymentMethod,
		PaymentTitle:  paymentMethod,
		SetPaid:       false,
		Billing:       in.Billing,
		Shipping:      shipping,
		LineItems:     lineItems,
	}

	if cp := st.Coupon(); cp != nil {
		req.CouponLines = []model.OrderCoupon{{Code: cp.Code}}
	}

	order, err := u.client.CreateOrder(ctx, req)
	if err != nil {
		slog.Error("failed to create order", "user_id", userID, "error", err)
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "failed to create order")
	}

	//注文後はカートを空にしてWordPress側も上書きする
	st.RemoveCoupon()
	cleared := st.Clear()
	if err := u.sync.SaveJSON(ctx, syncKindCart, userID, []model.CartLine{}); err != nil {
		slog.Warn("failed to clear saved cart", "user_id", userID, "error", err)
	}

	return CheckoutOutput{Order: order, Cart: cleared}, nil
}

// 自分の注文一覧。上流が落ちていたら空で返す。
func (u *OrderUsecase) ListOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.client.ListOrders(ctx, userID)
	if err != nil {
		slog.Error("failed to load orders", "user_id", userID, "error", err)
		return []model.Order{}, nil
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// 他人の注文は見せない（404扱い）。
func (u *OrderUsecase) GetOrder(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := u.client.GetOrder(ctx, orderID)
	if err == woocommerce.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		slog.Error("failed to load order", "order_id", orderID, "error", err)
		return model.Order{}, NewHTTPError(http.StatusBadGateway, "failed to load order")
	}

	if order.CustomerID != userID {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return order, nil
}

// Invoice は注文の請求書PDFを生成する。
func (u *OrderUsecase) Invoice(ctx context.Context, userID int64, orderID int64) ([]byte, error) {
	order, err := u.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	pdf, err := invoice.Render(order)
	if err != nil {
		slog.Error("failed to render invoice", "order_id", orderID, "error", err)
		return nil, NewHTTPError(http.StatusInternalServerError, "failed to generate invoice")
	}

	return pdf, nil
}

// CheckoutInputをスキーマ入力に平坦化する
func checkoutForm(in CheckoutInput) map[string]string {
	return map[string]string{
		"billing_first_name": in.Billing.FirstName,
		"billing_last_name":  in.Billing.LastName,
		"billing_email":      in.Billing.Email,
		"billing_phone":      in.Billing.Phone,
		"billing_address_1":  in.Billing.Address1,
		"billing_city":       in.Billing.City,
		"billing_state":      in.Billing.State,
		"billing_postcode":   in.Billing.Postcode,
		"billing_country":    in.Billing.Country,

		"ship_to_different":   strconv.FormatBool(in.ShipToDifferent),
		"shipping_first_name": in.Shipping.FirstName,
		"shipping_last_name":  in.Shipping.LastName,
		"shipping_address_1":  in.Shipping.Address1,
		"shipping_city":       in.Shipping.City,
		"shipping_state":      in.Shipping.State,
		"shipping_postcode":   in.Shipping.Postcode,
		"shipping_country":    in.Shipping.Country,
	}
}
