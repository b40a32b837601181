package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)

	// 作成日時の降順（新しい順）
	List(ctx context.Context) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (model.Order, error)
}
