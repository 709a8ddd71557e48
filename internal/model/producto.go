package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a store item sold alongside fuel (lubricants, additives, misc).
type Producto struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo   string          `gorm:"index;not null"`
	Nombre   string          `gorm:"index;not null"`
	Precio   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Cantidad int             `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Producto) TableName() string { return "productos" }
