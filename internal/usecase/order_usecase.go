package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderUsecase はチェックアウトと注文の参照を持つ。
// カート側のチェックとは独立に、確定時の在庫で必ず再検証する。
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

// 読み出し時に引くProductの一部（保存はしない）
type OrderItemProduct struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OrderItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
	Product   OrderItemProduct `json:"product"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Items     []OrderItemResponse `json:"items"`
}

// Checkout はカートを注文に確定する。
// 全明細の検証 → 注文作成 → 明細作成（単価スナップショット）→ 在庫減算 →
// カートクリア → 作成済み注文の再読込、までを1トランザクションで行う。
// 途中で失敗したら全部ロールバック（部分的な注文・減算・クリアは残らない）。
func (u *OrderUsecase) Checkout(ctx context.Context, cartID string) (OrderResponse, error) {
	var out OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByID(ctx, cartID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		// まず全明細を検証してから書き始める（途中で弾かれて半端に残るのを防ぐ）
		products := make([]model.Product, len(cartItems))
		for i, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.InStock || p.Quantity < ci.Quantity {
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("%q insufficient stock: available %d, requested %d",
						p.Name, p.Quantity, ci.Quantity))
			}
			products[i] = p
		}

		// 合計と明細スナップショットは同じトランザクション内の読みから作る
		// （合計と明細単価がずれない）
		total := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		for i, ci := range cartItems {
			p := products[i]
			orderItems = append(orderItems, model.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				Price:     p.Price,
			})
			total = total.Add(p.Price.Mul(decimal.NewFromInt(ci.Quantity)))
		}

		order, err := r.Orders().Create(ctx, model.Order{Total: total})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 在庫減算。検証済みでもここで減らせないことはある
		// （同時の別チェックアウトが先に減らした）。その場合は409で全体を巻き戻す。
		for _, ci := range cartItems {
			ok, err := r.Inventory().DecrementStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, "stock changed, retry checkout")
			}
		}

		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 作った直後の注文を読み直す。ここで見えないのはストア側の不整合
		created, err := r.Orders().FindByID(ctx, order.ID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "order not found after creation")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		createdItems, err := r.OrderItems().ListByOrderID(ctx, created.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = buildOrderResponse(ctx, r.Products(), created, createdItems)
		return err
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

func (u *OrderUsecase) FindOrder(ctx context.Context, orderID string) (OrderResponse, error) {
	var out OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = buildOrderResponse(ctx, r.Products(), o, items)
		return err
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

// 作成日時の降順（新しい順）
func (u *OrderUsecase) FindAllOrders(ctx context.Context) ([]OrderResponse, error) {
	var outs []OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			resp, err := buildOrderResponse(ctx, r.Products(), o, items)
			if err != nil {
				return err
			}
			outs = append(outs, resp)
		}
		return nil
	})

	if err != nil {
		return []OrderResponse{}, err
	}
	return outs, nil
}

// 明細に商品名を引き当てる。商品が消えていたら名前は空のまま返す。
func buildOrderResponse(ctx context.Context, products repo.ProductRepository, o model.Order, items []model.OrderItem) (OrderResponse, error) {
	outItems := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		product := OrderItemProduct{ID: it.ProductID}
		p, err := products.FindByID(ctx, it.ProductID)
		if err == nil {
			product.Name = p.Name
		} else if err != repo.ErrNotFound {
			return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outItems = append(outItems, OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Product:   product,
		})
	}

	return OrderResponse{
		ID:        o.ID,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Items:     outItems,
	}, nil
}
