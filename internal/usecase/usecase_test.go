package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	infraRepo "app/internal/infra/repository"
	"app/internal/usecase"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	DB        *gorm.DB
	ProductUC *usecase.ProductUsecase
	CartUC    *usecase.CartUsecase
	OrderUC   *usecase.OrderUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open in-memory db")

	// :memory: はコネクションごとに別DBになるので1本に固定する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	))

	productRepo := infraRepo.NewProductGormRepository(db)
	cartRepo := infraRepo.NewCartGormRepository(db)
	cartItemRepo := infraRepo.NewCartItemGormRepository(db)
	txManager := infraRepo.NewTxManagerGorm(db)

	return &testEnv{
		DB:        db,
		ProductUC: usecase.NewProductUsecase(productRepo),
		CartUC:    usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo),
		OrderUC:   usecase.NewOrderUsecase(txManager),
	}
}

func (env *testEnv) createProduct(t *testing.T, name string, price string, qty int64) model.Product {
	t.Helper()

	p, err := env.ProductUC.Create(context.Background(), usecase.CreateProductInput{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: string(model.CategoryEletronicos),
		Quantity: qty,
	})
	require.NoError(t, err)
	return p
}

func (env *testEnv) mustProduct(t *testing.T, id string) model.Product {
	t.Helper()

	var p model.Product
	require.NoError(t, env.DB.Where("id = ?", id).First(&p).Error)
	return p
}

func requireHTTPError(t *testing.T, err error, status int) *usecase.HTTPError {
	t.Helper()

	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, status, he.Status, "unexpected status: %s", he.Message)
	return he
}
