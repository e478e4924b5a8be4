package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/infra/woocommerce"
	"storefront/internal/validator"
)

// 住所取得に使うWordPress側の操作
type AddressClient interface {
	GetCustomer(ctx context.Context, customerID int64) (woocommerce.Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, payload map[string]any) error
	GetWPUser(ctx context.Context, userID int64, editContext bool) (woocommerce.WPUser, error)
	GetSavedJSON(ctx context.Context, kind string, userID int64) (json.RawMessage, error)
}

// AddressStrategy は住所を1つの方法で取りに行く。
// 失敗やデータ無しは次の戦略に回すだけで、呼び出し元へは出さない。
type AddressStrategy interface {
	Name() string
	Attempt(ctx context.Context, userID int64) (model.AddressPair, error)
}

type AddressUsecase struct {
	client     AddressClient
	strategies []AddressStrategy
}

// 戦略は順序が契約：WooCommerce顧客→WPユーザーmeta→プラグイン→WP edit context。
func NewAddressUsecase(client AddressClient) *AddressUsecase {
	return &AddressUsecase{
		client: client,
		strategies: []AddressStrategy{
			&wcCustomerStrategy{client: client},
			&wpUserMetaStrategy{client: client},
			&pluginStrategy{client: client},
			&wpEditContextStrategy{client: client},
		},
	}
}

// GetAddresses は最初に住所を返せた戦略の結果を使う。
// 全滅ならデフォルト住所を返し、裏でWooCommerceへ同期を試みる（失敗は握りつぶす）。
func (u *AddressUsecase) GetAddresses(ctx context.Context, userID int64) (model.AddressPair, error) {
	if userID <= 0 {
		return model.AddressPair{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	for _, s := range u.strategies {
		pair, err := s.Attempt(ctx, userID)
		if err != nil {
			slog.Warn("address strategy failed", "strategy", s.Name(), "user_id", userID, "error", err)
			continue
		}
		if pair.IsEmpty() {
			continue
		}
		return pair, nil
	}

	//全戦略が失敗：デフォルト住所
	pair := defaultAddressPair()

	if err := u.client.UpdateCustomer(ctx, userID, map[string]any{
		"billing":  pair.Billing,
		"shipping": pair.Shipping,
	}); err != nil {
		slog.Warn("failed to sync default addresses", "user_id", userID, "error", err)
	}

	return pair, nil
}

type SaveAddressesInput struct {
	Billing  model.Address `json:"billing"`
	Shipping model.Address `json:"shipping"`
}

// SaveAddresses は検証してWooCommerce顧客へ保存する。
func (u *AddressUsecase) SaveAddresses(ctx context.Context, userID int64, in SaveAddressesInput) (model.AddressPair, error) {
	if userID <= 0 {
		return model.AddressPair{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	res := validator.AddressSchema().SafeParse(map[string]string{
		"first_name": in.Billing.FirstName,
		"last_name":  in.Billing.LastName,
		"address_1":  in.Billing.Address1,
		"city":       in.Billing.City,
		"state":      in.Billing.State,
		"postcode":   in.Billing.Postcode,
		"country":    in.Billing.Country,
		"phone":      in.Billing.Phone,
	})
	if !res.OK {
		return model.AddressPair{}, NewValidationError(res.Errors)
	}

	//配送先が空なら請求先を使う
	shipping := in.Shipping
	if shipping.IsEmpty() {
		shipping = in.Billing
	}

	if err := u.client.UpdateCustomer(ctx, userID, map[string]any{
		"billing":  in.Billing,
		"shipping": shipping,
	}); err != nil {
		slog.Error("failed to save addresses", "user_id", userID, "error", err)
		return model.AddressPair{}, NewHTTPError(http.StatusBadGateway, "failed to save addresses")
	}

	return model.AddressPair{Billing: in.Billing, Shipping: shipping}, nil
}

// DeleteAddresses は空の住所で上書きする。
func (u *AddressUsecase) DeleteAddresses(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.client.UpdateCustomer(ctx, userID, map[string]any{
		"billing":  model.Address{},
		"shipping": model.Address{},
	}); err != nil {
		slog.Error("failed to delete addresses", "user_id", userID, "error", err)
		return NewHTTPError(http.StatusBadGateway, "failed to delete addresses")
	}
	return nil
}

// 全戦略失敗時のデフォルト
func defaultAddressPair() model.AddressPair {
	addr := model.Address{
		FirstName: "Guest",
		LastName:  "Customer",
		Address1:  "123 Main Street",
		City:      "Mumbai",
		State:     "MH",
		Postcode:  "400001",
		Country:   "IN",
	}
	return model.AddressPair{Billing: addr, Shipping: addr}
}

// =====================
// 戦略1：WooCommerce顧客API
// =====================

type wcCustomerStrategy struct {
	client AddressClient
}

func (s *wcCustomerStrategy) Name() string { return "wc_customer" }

func (s *wcCustomerStrategy) Attempt(ctx context.Context, userID int64) (model.AddressPair, error) {
	cust, err := s.client.GetCustomer(ctx, userID)
	if err != nil {
		return model.AddressPair{}, err
	}
	return model.AddressPair{Billing: cust.Billing, Shipping: cust.Shipping}, nil
}

// =====================
// 戦略2：WPユーザーのmeta
// =====================

type wpUserMetaStrategy struct {
	client AddressClient
}

func (s *wpUserMetaStrategy) Name() string { return "wp_user_meta" }

func (s *wpUserMetaStrategy) Attempt(ctx context.Context, userID int64) (model.AddressPair, error) {
	user, err := s.client.GetWPUser(ctx, userID, false)
	if err != nil {
		return model.AddressPair{}, err
	}
	return pairFromMeta(user.Meta), nil
}

// =====================
// 戦略3：カスタムプラグイン
// =====================

type pluginStrategy struct {
	client AddressClient
}

func (s *pluginStrategy) Name() string { return "plugin" }

func (s *pluginStrategy) Attempt(ctx context.Context, userID int64) (model.AddressPair, error) {
	raw, err := s.client.GetSavedJSON(ctx, "addresses", userID)
	if err != nil {
		return model.AddressPair{}, err
	}

	var pair model.AddressPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return model.AddressPair{}, err
	}
	return pair, nil
}

// =====================
// 戦略4：WP REST（context=edit）
// =====================

type wpEditContextStrategy struct {
	client AddressClient
}

func (s *wpEditContextStrategy) Name() string { return "wp_edit_context" }

func (s *wpEditContextStrategy) Attempt(ctx context.Context, userID int64) (model.AddressPair, error) {
	user, err := s.client.GetWPUser(ctx, userID, true)
	if err != nil {
		return model.AddressPair{}, err
	}
	return pairFromMeta(user.Meta), nil
}

// metaのbilling_address/shipping_addressキーから組み立てる
func pairFromMeta(meta map[string]json.RawMessage) model.AddressPair {
	var pair model.AddressPair

	if raw, ok := meta["billing_address"]; ok {
		_ = json.Unmarshal(raw, &pair.Billing)
	}
	if raw, ok := meta["shipping_address"]; ok {
		_ = json.Unmarshal(raw, &pair.Shipping)
	}

	return pair
}
