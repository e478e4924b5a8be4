// Package woocommerce はWordPress/WooCommerce RESTのクライアント。
// wc/v3はconsumer key/secret、wp/v2とカスタムプラグインは
// アプリケーションパスワードのBasic認証で叩く。
package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"

	"github.com/hashicorp/go-retryablehttp"
)

var (
	// 404
	ErrNotFound = errors.New("not found")
	// 401はリトライせず呼び出し側がフォールバックする
	ErrUnauthorized = errors.New("upstream unauthorized")
)

// 2xx以外（401/404以外）のときのエラー
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

type authKind int

const (
	authWC authKind = iota // consumer key/secret
	authWP                 // アプリケーションパスワード
)

type Client struct {
	baseURL string
	ck      string
	cs      string
	wpUser  string
	wpPass  string
	http    *retryablehttp.Client
}

func NewClient(cfg config.Config) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2 // 合計3回
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Backoff = retryablehttp.LinearJitterBackoff
	rc.CheckRetry = checkRetry
	rc.Logger = nil
	rc.HTTPClient.Timeout = 15 * time.Second

	return &Client{
		baseURL: cfg.WordPressURL,
		ck:      cfg.ConsumerKey,
		cs:      cfg.ConsumerSecret,
		wpUser:  cfg.WordPressUser,
		wpPass:  cfg.WordPressPassword,
		http:    rc,
	}
}

// リトライは429と5xxだけ。401は即終了（フォールバック側の仕事）。
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil || resp == nil {
		return false, err
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return true, nil
	}
	return false, nil
}

func (c *Client) do(ctx context.Context, method string, path string, kind authKind, query url.Values, body any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u, bytes.NewReader(raw))
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	switch kind {
	case authWC:
		req.SetBasicAuth(c.ck, c.cs)
	case authWP:
		req.SetBasicAuth(c.wpUser, c.wpPass)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		slog.Warn("upstream error", "method", method, "path", path, "status", resp.StatusCode)
		return &StatusError{Status: resp.StatusCode, Body: string(data)}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// =====================
// 商品・カテゴリ
// =====================

type ProductQuery struct {
	Page     int
	PerPage  int
	Search   string
	Category string
	OrderBy  string
	Order    string
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]model.CatalogProduct, error) {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.OrderBy != "" {
		values.Set("orderby", q.OrderBy)
	}
	if q.Order != "" {
		values.Set("order", q.Order)
	}

	var items []model.CatalogProduct
	if err := c.do(ctx, http.MethodGet, "/wp-json/wc/v3/products", authWC, values, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (model.CatalogProduct, error) {
	var p model.CatalogProduct
	path := "/wp-json/wc/v3/products/" + strconv.FormatInt(productID, 10)
	if err := c.do(ctx, http.MethodGet, path, authWC, nil, nil, &p); err != nil {
		return model.CatalogProduct{}, err
	}
	return p, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	values := url.Values{}
	values.Set("per_page", "100")
	values.Set("hide_empty", "true")

	var cats []model.Category
	if err := c.do(ctx, http.MethodGet, "/wp-json/wc/v3/products/categories", authWC, values, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// =====================
// 顧客（住所の第1戦略・保存先）
// =====================

type Customer struct {
	ID        int64         `json:"id"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Billing   model.Address `json:"billing"`
	Shipping  model.Address `json:"shipping"`
}

func (c *Client) GetCustomer(ctx context.Context, customerID int64) (Customer, error) {
	var cust Customer
	path := "/wp-json/wc/v3/customers/" + strconv.FormatInt(customerID, 10)
	if err := c.do(ctx, http.MethodGet, path, authWC, nil, nil, &cust); err != nil {
		return Customer{}, err
	}
	return cust, nil
}

// UpdateCustomer は部分更新（住所の保存・デフォルト同期で使う）。
func (c *Client) UpdateCustomer(ctx context.Context, customerID int64, payload map[string]any) error {
	path := "/wp-json/wc/v3/customers/" + strconv.FormatInt(customerID, 10)
	return c.do(ctx, http.MethodPut, path, authWC, nil, payload, nil)
}

// =====================
// クーポン
// =====================

type Coupon struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Description  string `json:"description"`
	DiscountType string `json:"discount_type"`
	Amount       string `json:"amount"`
	DateExpires  string `json:"date_expires"`
}

// コード検索。wc/v3はcode一致でも配列で返す。
func (c *Client) GetCouponByCode(ctx context.Context, code string) (Coupon, error) {
	values := url.Values{}
	values.Set("code", code)

	var coupons []Coupon
	if err := c.do(ctx, http.MethodGet, "/wp-json/wc/v3/coupons", authWC, values, nil, &coupons); err != nil {
		return Coupon{}, err
	}
	if len(coupons) == 0 {
		return Coupon{}, ErrNotFound
	}
	return coupons[0], nil
}

// =====================
// 注文
// =====================

func (c *Client) CreateOrder(ctx context.Context, req model.OrderCreateRequest) (model.Order, error) {
	var o model.Order
	if err := c.do(ctx, http.MethodPost, "/wp-json/wc/v3/orders", authWC, nil, req, &o); err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	path := "/wp-json/wc/v3/orders/" + strconv.FormatInt(orderID, 10)
	if err := c.do(ctx, http.MethodGet, path, authWC, nil, nil, &o); err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (c *Client) ListOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	values := url.Values{}
	values.Set("customer", strconv.FormatInt(customerID, 10))
	values.Set("per_page", "50")

	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/wp-json/wc/v3/orders", authWC, values, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// =====================
// レビュー
// =====================

func (c *Client) ListReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	values := url.Values{}
	values.Set("product", strconv.FormatInt(productID, 10))

	var reviews []model.Review
	if err := c.do(ctx, http.MethodGet, "/wp-json/wc/v3/products/reviews", authWC, values, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, payload map[string]any) (model.Review, error) {
	var r model.Review
	if err := c.do(ctx, http.MethodPost, "/wp-json/wc/v3/products/reviews", authWC, nil, payload, &r); err != nil {
		return model.Review{}, err
	}
	return r, nil
}

// =====================
// WPユーザー（住所の第2・第4戦略）
// =====================

type WPUser struct {
	ID   int64                      `json:"id"`
	Name string                     `json:"name"`
	Meta map[string]json.RawMessage `json:"meta"`
}

// editContext=true で ?context=edit を付けてmetaまで取る。
func (c *Client) GetWPUser(ctx context.Context, userID int64, editContext bool) (WPUser, error) {
	values := url.Values{}
	if editContext {
		values.Set("context", "edit")
	}

	var u WPUser
	path := "/wp-json/wp/v2/users/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, http.MethodGet, path, authWP, values, nil, &u); err != nil {
		return WPUser{}, err
	}
	return u, nil
}

// =====================
// カスタムプラグイン（カート/お気に入りの永続化、住所の第3戦略）
// =====================

// GetSavedJSON はプラグインが保存したJSONを取り出す。kindはcart/wishlist/addresses。
func (c *Client) GetSavedJSON(ctx context.Context, kind string, userID int64) (json.RawMessage, error) {
	var raw json.RawMessage
	path := "/wp-json/headless/v1/" + kind + "/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, http.MethodGet, path, authWP, nil, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// SaveJSON はプラグインへJSONを丸ごと保存する。
func (c *Client) SaveJSON(ctx context.Context, kind string, userID int64, payload any) error {
	path := "/wp-json/headless/v1/" + kind + "/" + strconv.FormatInt(userID, 10)
	return c.do(ctx, http.MethodPost, path, authWP, nil, payload, nil)
}
