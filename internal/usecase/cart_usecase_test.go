package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartUsecase_CreateCart_Empty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, cart.ID)
	assert.Empty(t, cart.Items)
}

func TestCartUsecase_FindCart_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.CartUC.FindCart(context.Background(), "no-such-cart")
	requireHTTPError(t, err, http.StatusNotFound)
}

func TestCartUsecase_AddToCart_NewItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Smartphone", "1299.99", 10)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	out, err := env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{
		ProductID: p.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	item := out.Items[0]
	assert.Equal(t, p.ID, item.ProductID)
	assert.EqualValues(t, 2, item.Quantity)

	//商品スナップショットは現在値
	assert.Equal(t, p.ID, item.Product.ID)
	assert.Equal(t, "Smartphone", item.Product.Name)
	assert.True(t, item.Product.Price.Equal(decimal.RequireFromString("1299.99")))
	assert.True(t, item.Product.InStock)
	assert.EqualValues(t, 10, item.Product.Quantity)
}

// 同一商品の追加は行を増やさず数量加算になる
func TestCartUsecase_AddToCart_MergesQuantities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Beans", "10.00", 10)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	out, err := env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.EqualValues(t, 5, out.Items[0].Quantity)
}

// 在庫を超える追加は明細を一切作らない
func TestCartUsecase_AddToCart_InsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Beans", "10.00", 3)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: p.ID, Quantity: 5})
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Contains(t, he.Message, "available 3")

	out, err := env.CartUC.FindCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

// 加算後の合計が在庫を超えるときも更新しない
func TestCartUsecase_AddToCart_MergeExceedsStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Beans", "10.00", 5)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: p.ID, Quantity: 3})
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Contains(t, he.Message, "available 5")
	assert.Contains(t, he.Message, "requested 6")

	out, err := env.CartUC.FindCart(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.EqualValues(t, 3, out.Items[0].Quantity)
}

func TestCartUsecase_AddToCart_NotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Beans", "10.00", 5)

	_, err := env.CartUC.AddToCart(ctx, "no-such-cart", usecase.AddCartItemInput{ProductID: p.ID, Quantity: 1})
	requireHTTPError(t, err, http.StatusNotFound)

	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: "no-such-product", Quantity: 1})
	requireHTTPError(t, err, http.StatusNotFound)
}

// 数量変更は加算ではなく置き換え
func TestCartUsecase_UpdateCartItem_ReplacesQuantity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Beans", "10.00", 10)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	out, err := env.CartUC.UpdateCartItem(ctx, cart.ID, p.ID, 7)
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.EqualValues(t, 7, out.Items[0].Quantity)
}

func TestCartUsecase_UpdateCartItem_ExceedsStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Beans", "10.00", 5)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	_, err = env.CartUC.UpdateCartItem(ctx, cart.ID, p.ID, 6)
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Contains(t, he.Message, "available 5")

	out, err := env.CartUC.FindCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.Items[0].Quantity)
}

func TestCartUsecase_UpdateCartItem_ItemNotInCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Beans", "10.00", 5)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.UpdateCartItem(ctx, cart.ID, p.ID, 1)
	he := requireHTTPError(t, err, http.StatusNotFound)
	assert.Contains(t, he.Message, "item not found")
}

func TestCartUsecase_RemoveFromCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Beans", "10.00", 5)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, env.CartUC.RemoveFromCart(ctx, cart.ID, p.ID))

	out, err := env.CartUC.FindCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	//もう無いので404
	err = env.CartUC.RemoveFromCart(ctx, cart.ID, p.ID)
	requireHTTPError(t, err, http.StatusNotFound)
}

// クリアは空のカートに対しても成功する
func TestCartUsecase_ClearCart_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Beans", "10.00", 5)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, env.CartUC.ClearCart(ctx, cart.ID))
	require.NoError(t, env.CartUC.ClearCart(ctx, cart.ID))

	out, err := env.CartUC.FindCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestCartUsecase_GetCartTotal_EmptyIsZero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	out, err := env.CartUC.GetCartTotal(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, out.Total.IsZero(), "total = %s", out.Total)
}

// 消えた商品の明細だけが表示と合計から外れる
func TestCartUsecase_DeletedProductLineSkipped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	keep := env.createProduct(t, "Beans", "10.00", 5)
	gone := env.createProduct(t, "Rice", "20.00", 5)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: keep.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: gone.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, env.ProductUC.Delete(ctx, gone.ID))

	out, err := env.CartUC.FindCart(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, keep.ID, out.Items[0].ProductID)

	total, err := env.CartUC.GetCartTotal(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, total.Total.Equal(decimal.RequireFromString("20.00")), "total = %s", total.Total)
}

// 商品マスタの読み出し自体が失敗したら明細を黙って飛ばさず500にする
func TestCartUsecase_ProductReadFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Beans", "10.00", 5)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	//not foundではない読み出しエラーを起こす
	require.NoError(t, env.DB.Exec("DROP TABLE products").Error)

	_, err = env.CartUC.GetCartTotal(ctx, cart.ID)
	requireHTTPError(t, err, http.StatusInternalServerError)

	_, err = env.CartUC.FindCart(ctx, cart.ID)
	requireHTTPError(t, err, http.StatusInternalServerError)
}

func TestCartUsecase_GetCartTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProduct(t, "Smartphone", "1299.99", 10)
	cart, err := env.CartUC.CreateCart(ctx)
	require.NoError(t, err)

	_, err = env.CartUC.AddToCart(ctx, cart.ID, usecase.AddCartItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	out, err := env.CartUC.GetCartTotal(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("2599.98")), "total = %s", out.Total)
}
