package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ減算する。in_stockも同じUPDATEで再計算する。
	// 減らせなかったら false（行ロック競合や在庫切れ）。
	DecrementStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error)
}
