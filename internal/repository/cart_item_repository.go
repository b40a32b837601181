package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	FindByCartAndProduct(ctx context.Context, cartID string, productID string) (model.CartItem, error)
	// 同一商品はプラス（同時に入っても行は増えない）
	UpsertByCartAndProduct(ctx context.Context, cartID string, productID string, addQty int64) error
	UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error
	DeleteByID(ctx context.Context, cartItemID string) error
}
