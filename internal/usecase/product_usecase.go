package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/infra/woocommerce"
	"storefront/internal/validator"
)

// usecaseがWooCommerce側に求める操作（テストではモックを注入）
type CatalogClient interface {
	ListProducts(ctx context.Context, q woocommerce.ProductQuery) ([]model.CatalogProduct, error)
	GetProduct(ctx context.Context, productID int64) (model.CatalogProduct, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListReviews(ctx context.Context, productID int64) ([]model.Review, error)
	CreateReview(ctx context.Context, payload map[string]any) (model.Review, error)
}

type ProductUsecase struct {
	client CatalogClient
}

// DI
func NewProductUsecase(client CatalogClient) *ProductUsecase {
	return &ProductUsecase{client: client}
}

// GET /api/productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Sort     string
}

type ProductListOutput struct {
	Items []model.CatalogProduct `json:"items"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Search) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}

	q := woocommerce.ProductQuery{
		Page:     in.Page,
		PerPage:  in.Limit,
		Search:   strings.TrimSpace(in.Search),
		Category: strings.TrimSpace(in.Category),
	}

	switch in.Sort {
	case "":
	case "new":
		q.OrderBy = "date"
		q.Order = "desc"
	case "price_asc":
		q.OrderBy = "price"
		q.Order = "asc"
	case "price_desc":
		q.OrderBy = "price"
		q.Order = "desc"
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, err := u.client.ListProducts(ctx, q)
	if err != nil {
		//一覧は空リストに劣化して返す（画面を壊さない）
		slog.Error("failed to load products", "error", err)
		items = []model.CatalogProduct{}
	}
	if items == nil {
		items = []model.CatalogProduct{}
	}

	return ProductListOutput{
		Items: items,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.CatalogProduct, error) {
	if productID <= 0 {
		return model.CatalogProduct{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.client.GetProduct(ctx, productID)
	if err == woocommerce.ErrNotFound {
		return model.CatalogProduct{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		slog.Error("failed to load product", "product_id", productID, "error", err)
		return model.CatalogProduct{}, NewHTTPError(http.StatusBadGateway, "failed to load product")
	}

	return p, nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := u.client.ListCategories(ctx)
	if err != nil {
		slog.Error("failed to load categories", "error", err)
		return []model.Category{}, nil
	}
	if cats == nil {
		cats = []model.Category{}
	}
	return cats, nil
}

func (u *ProductUsecase) ListReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	reviews, err := u.client.ListReviews(ctx, productID)
	if err != nil {
		slog.Error("failed to load reviews", "product_id", productID, "error", err)
		return []model.Review{}, nil
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}

type CreateReviewInput struct {
	ProductID int64  `json:"product_id"`
	Reviewer  string `json:"reviewer"`
	Email     string `json:"reviewer_email"`
	Rating    int    `json:"rating"`
	Review    string `json:"review"`
}

func (u *ProductUsecase) CreateReview(ctx context.Context, in CreateReviewInput) (model.Review, error) {
	res := validator.ReviewSchema().SafeParse(map[string]string{
		"product_id":     strconv.FormatInt(in.ProductID, 10),
		"reviewer":       in.Reviewer,
		"reviewer_email": in.Email,
		"rating":         strconv.Itoa(in.Rating),
		"review":         in.Review,
	})
	if !res.OK {
		return model.Review{}, NewValidationError(res.Errors)
	}

	created, err := u.client.CreateReview(ctx, map[string]any{
		"product_id":     in.ProductID,
		"reviewer":       strings.TrimSpace(in.Reviewer),
		"reviewer_email": strings.TrimSpace(in.Email),
		"rating":         in.Rating,
		"review":         strings.TrimSpace(in.Review),
	})
	if err != nil {
		slog.Error("failed to create review", "product_id", in.ProductID, "error", err)
		return model.Review{}, NewHTTPError(http.StatusBadGateway, "failed to submit review")
	}

	return created, nil
}
