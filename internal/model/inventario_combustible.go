package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventarioCombustible is one row of the fuel inventory ledger.
//
// Rows form a running-balance chain per fuel type: ordered by (fecha asc, id asc),
// each row's InventarioInicial equals the previous row's InventarioFinal (0 for the
// first), and InventarioFinal = InventarioInicial + Entrada - Salida always holds.
// Edits ripple forward through every later row of the same type (cascade).
//
// The primary key is a bigint sequence, not a uuid: same-day rows are ordered by id,
// so ids must be monotonically increasing.
type InventarioCombustible struct {
	ID                int64           `gorm:"primaryKey;autoIncrement"`
	TipoCombustibleID int64           `gorm:"not null;index:idx_inventario_tipo_fecha,priority:1"`
	InventarioInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Entrada           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Salida            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	InventarioFinal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Fecha is a calendar date (time portion always zero, UTC).
	Fecha time.Time `gorm:"type:date;not null;index:idx_inventario_tipo_fecha,priority:2"`
	// EsAutomatico marks rows generated by a fuel sale. They can never be edited
	// or deleted manually; only a cascade may rewrite their balances.
	EsAutomatico bool `gorm:"not null;default:false"`
	CreatedAt    time.Time

	TipoCombustible *TipoCombustible `gorm:"foreignKey:TipoCombustibleID"`
}

func (InventarioCombustible) TableName() string { return "inventario_combustible" }

// Precede reports whether m is strictly before other in ledger order (fecha, id).
func (m *InventarioCombustible) Precede(other *InventarioCombustible) bool {
	if m.Fecha.Equal(other.Fecha) {
		return m.ID < other.ID
	}
	return m.Fecha.Before(other.Fecha)
}
