package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return s
}

func validClaims(userID int64, tv int) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub": userID,
		"tv":  tv,
		"iat": now.Unix(),
		"exp": now.Add(15 * time.Minute).Unix(),
	}
}

// ミドルウェアを通してcontextに入った値を返すだけのハンドラ
func runAuthJWT(t *testing.T, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.AuthJWT(config.Config{JWTSecret: testSecret})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)

	return rec, c
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims(7, 3))

	rec, c := runAuthJWT(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, 3, c.Get(middleware.CtxTokenVersionKey))
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _ := runAuthJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"unauthorized"}`, rec.Body.String())
}

func TestAuthJWT_MalformedHeader(t *testing.T) {
	rec, _ := runAuthJWT(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", validClaims(7, 0))

	rec, _ := runAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	claims := validClaims(7, 0)
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := signToken(t, testSecret, claims)

	rec, _ := runAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// alg none等のすり替えは拒否する
func TestAuthJWT_RejectsNonHS256(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims(7, 0))
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	rec, _ := runAuthJWT(t, "Bearer "+s)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// TokenVersionGuard
// =====================

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) IncrementTokenVersion(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func runGuard(t *testing.T, repo *mockUserRepo, userID int64, tv int) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserIDKey, userID)
	c.Set(middleware.CtxTokenVersionKey, tv)

	h := middleware.TokenVersionGuard(repo)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)

	return rec
}

func TestTokenVersionGuard_Match(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByID", mock.Anything, int64(7)).Return(&model.User{ID: 7, TokenVersion: 3, IsActive: true}, nil)

	rec := runGuard(t, repo, 7, 3)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// tvがズレていたら強制ログアウト扱い
func TestTokenVersionGuard_Mismatch(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByID", mock.Anything, int64(7)).Return(&model.User{ID: 7, TokenVersion: 4}, nil)

	rec := runGuard(t, repo, 7, 3)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenVersionGuard_UnknownUser(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByID", mock.Anything, int64(7)).Return((*model.User)(nil), nil)

	rec := runGuard(t, repo, 7, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
