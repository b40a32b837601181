package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	Create(ctx context.Context) (model.Cart, error)
	FindByID(ctx context.Context, cartID string) (model.Cart, error)

	// 明細を全削除（空でも成功）
	Clear(ctx context.Context, cartID string) error
}
