package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VentaCombustible is a fuel sale. Each line item triggers one automatic
// InventarioCombustible row inside the same transaction: the sale and its
// ledger entries commit or roll back together.
type VentaCombustible struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Fecha         time.Time       `gorm:"type:date;not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago    string          `gorm:"type:varchar(30);not null;default:'Efectivo'"`
	Observaciones *string
	CreatedAt     time.Time

	Cliente  *Cliente                  `gorm:"foreignKey:ClienteID"`
	Detalles []DetalleVentaCombustible `gorm:"foreignKey:VentaCombustibleID"`
}

func (VentaCombustible) TableName() string { return "ventas_combustible" }

type DetalleVentaCombustible struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaCombustibleID uuid.UUID       `gorm:"type:uuid;not null;index"`
	TipoCombustibleID  int64           `gorm:"not null;index"`
	PrecioUnitario     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CantidadLitros     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoQuetzales     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	TipoCombustible *TipoCombustible `gorm:"foreignKey:TipoCombustibleID"`
}

func (DetalleVentaCombustible) TableName() string { return "detalle_venta_combustible" }
