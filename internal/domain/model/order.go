package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
