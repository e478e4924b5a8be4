package usecase_test

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/infra/woocommerce"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: CatalogClient
// =====================

type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) ListProducts(ctx context.Context, q woocommerce.ProductQuery) ([]model.CatalogProduct, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.CatalogProduct)
	return items, args.Error(1)
}

func (m *MockCatalogClient) GetProduct(ctx context.Context, productID int64) (model.CatalogProduct, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.CatalogProduct)
	return p, args.Error(1)
}

func (m *MockCatalogClient) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]model.Category)
	return cats, args.Error(1)
}

func (m *MockCatalogClient) ListReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	reviews, _ := args.Get(0).([]model.Review)
	return reviews, args.Error(1)
}

func (m *MockCatalogClient) CreateReview(ctx context.Context, payload map[string]any) (model.Review, error) {
	args := m.Called(ctx, payload)
	r, _ := args.Get(0).(model.Review)
	return r, args.Error(1)
}

// =====================
// Mock: SyncClient
// =====================

type MockSyncClient struct {
	mock.Mock
}

func (m *MockSyncClient) GetSavedJSON(ctx context.Context, kind string, userID int64) (json.RawMessage, error) {
	args := m.Called(ctx, kind, userID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *MockSyncClient) SaveJSON(ctx context.Context, kind string, userID int64, payload any) error {
	args := m.Called(ctx, kind, userID, payload)
	return args.Error(0)
}

// =====================
// Mock: CouponClient
// =====================

type MockCouponClient struct {
	mock.Mock
}

func (m *MockCouponClient) GetCouponByCode(ctx context.Context, code string) (woocommerce.Coupon, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(woocommerce.Coupon)
	return c, args.Error(1)
}

// =====================
// Mock: OrderClient
// =====================

type MockOrderClient struct {
	mock.Mock
}

func (m *MockOrderClient) CreateOrder(ctx context.Context, req model.OrderCreateRequest) (model.Order, error) {
	args := m.Called(ctx, req)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *MockOrderClient) GetOrder(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *MockOrderClient) ListOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

// =====================
// Mock: AddressClient
// =====================

type MockAddressClient struct {
	mock.Mock
}

func (m *MockAddressClient) GetCustomer(ctx context.Context, customerID int64) (woocommerce.Customer, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(woocommerce.Customer)
	return c, args.Error(1)
}

func (m *MockAddressClient) UpdateCustomer(ctx context.Context, customerID int64, payload map[string]any) error {
	args := m.Called(ctx, customerID, payload)
	return args.Error(0)
}

func (m *MockAddressClient) GetWPUser(ctx context.Context, userID int64, editContext bool) (woocommerce.WPUser, error) {
	args := m.Called(ctx, userID, editContext)
	u, _ := args.Get(0).(woocommerce.WPUser)
	return u, args.Error(1)
}

func (m *MockAddressClient) GetSavedJSON(ctx context.Context, kind string, userID int64) (json.RawMessage, error) {
	args := m.Called(ctx, kind, userID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementTokenVersion(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// =====================
// Mock: RefreshTokenRepository
// =====================

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *MockRefreshTokenRepository) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error {
	args := m.Called(ctx, tokenID, revokedAt)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteAllByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByID(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
