package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// ProductUsecase は /products の業務ロジックです。
type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Quantity    int64
}

// PATCHの部分更新用（nilは未指定）
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Quantity    *int64
}

type CategoryOutput struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if !in.Price.IsPositive() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be positive")
	}
	if in.Quantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	//値でもラベルでも受ける
	category, ok := model.FindCategory(in.Category)
	if !ok {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, model.InvalidCategoryMessage())
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    category,
		Quantity:    in.Quantity,
		InStock:     in.Quantity > 0,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.List(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	c, ok := model.FindCategory(category)
	if !ok {
		return []model.Product{}, NewHTTPError(http.StatusNotFound, model.InvalidCategoryMessage())
	}

	items, err := u.productRepo.ListByCategory(ctx, c)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) ListInStock(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListInStock(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID string) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 部分更新。quantityが来たらin_stockも同時に計算し直す。
func (u *ProductUsecase) Update(ctx context.Context, productID string, in UpdateProductInput) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "name is required")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be positive")
		}
		p.Price = *in.Price
	}
	if in.Category != nil {
		c, ok := model.FindCategory(*in.Category)
		if !ok {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, model.InvalidCategoryMessage())
		}
		p.Category = c
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
		}
		p.Quantity = *in.Quantity
		p.InStock = *in.Quantity > 0
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, productID string) error {
	if err := u.productRepo.Delete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// カテゴリの一覧（値とラベル）
func (u *ProductUsecase) Categories() []CategoryOutput {
	cs := model.Categories()
	out := make([]CategoryOutput, 0, len(cs))
	for _, c := range cs {
		out = append(out, CategoryOutput{Value: string(c), Label: c.Label()})
	}
	return out
}
