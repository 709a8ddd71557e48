package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoCombustible is immutable reference data: every ledger movement and every
// fuel sale line references one of these rows.
type TipoCombustible struct {
	ID     int64           `gorm:"primaryKey;autoIncrement"`
	Nombre string          `gorm:"uniqueIndex;not null"`
	Precio decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	CreatedAt time.Time
}

func (TipoCombustible) TableName() string { return "tipos_combustible" }
