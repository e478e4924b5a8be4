package woocommerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"storefront/internal/config"

	"github.com/stretchr/testify/assert"
)

func newTestClient(url string) *Client {
	return NewClient(config.Config{
		WordPressURL:      url,
		ConsumerKey:       "ck_test",
		ConsumerSecret:    "cs_test",
		WordPressUser:     "admin",
		WordPressPassword: "app-password",
	})
}

func TestClient_GetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products/10", r.URL.Path)

		//wc/v3はconsumer key/secretのBasic認証
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ck_test", user)
		assert.Equal(t, "cs_test", pass)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    10,
			"name":  "test product",
			"price": "100",
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	p, err := c.GetProduct(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)
	assert.Equal(t, "100", p.Price)
}

// 5xxはリトライして成功まで持ち込む
func TestClient_RetriesOn5xx(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 10})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	p, err := c.GetProduct(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

// リトライは3回まで。それでもダメならStatusError
func TestClient_RetryExhausted(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.GetProduct(context.Background(), 10)
	assert.Error(t, err)

	var se *StatusError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

// 429もリトライ対象
func TestClient_RetriesOn429(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 10})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.GetProduct(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

// 401はリトライしない（即フォールバック側へ）
func TestClient_NoRetryOn401(t *testing.T) {
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.GetProduct(context.Background(), 10)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.GetProduct(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_GetCouponByCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "save10", r.URL.Query().Get("code"))

		//wc/v3はcode一致でも配列で返す
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "code": "save10", "discount_type": "percent", "amount": "10"},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	coupon, err := c.GetCouponByCode(context.Background(), "save10")
	assert.NoError(t, err)
	assert.Equal(t, "save10", coupon.Code)
}

// 該当コード無しの空配列はErrNotFound
func TestClient_GetCouponByCode_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.GetCouponByCode(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

// カスタムプラグインのエンドポイントはアプリケーションパスワードで叩く
func TestClient_SavedJSON_UsesWPAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/headless/v1/cart/7", r.URL.Path)

		user, pass, _ := r.BasicAuth()
		assert.Equal(t, "admin", user)
		assert.Equal(t, "app-password", pass)

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "quantity": 2}})
		case http.MethodPost:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	raw, err := c.GetSavedJSON(context.Background(), "cart", 7)
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	assert.NoError(t, c.SaveJSON(context.Background(), "cart", 7, []map[string]any{{"id": 1}}))
}

func TestClient_ListProducts_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "20", q.Get("per_page"))
		assert.Equal(t, "shirt", q.Get("search"))
		assert.Equal(t, "price", q.Get("orderby"))
		assert.Equal(t, "asc", q.Get("order"))

		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1}, {"id": 2}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	items, err := c.ListProducts(context.Background(), ProductQuery{
		Page:    2,
		PerPage: 20,
		Search:  "shirt",
		OrderBy: "price",
		Order:   "asc",
	})
	assert.NoError(t, err)
	assert.Len(t, items, 2)
}
