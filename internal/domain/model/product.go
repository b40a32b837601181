package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// in_stock は quantity>0 の導出値。
// quantityを書き換えるときは必ず同じUPDATEでin_stockも再計算する。
type Product struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    Category        `gorm:"type:varchar(30);not null;index" json:"category"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	InStock     bool            `gorm:"not null" json:"inStock"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
