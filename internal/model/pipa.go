package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pipa is a fuel delivery truck in the fleet registry.
// Estado: "activa" | "mantenimiento" | "inactiva"
type Pipa struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Placa                string          `gorm:"uniqueIndex;not null"`
	Capacidad            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TipoCombustibleID    int64           `gorm:"not null;index"`
	ConductorAsignado    *string
	Estado               string `gorm:"type:varchar(30);not null;default:'activa'"`
	UbicacionActual      *string
	UltimoMantenimiento  *time.Time `gorm:"type:date"`
	ProximoMantenimiento *time.Time `gorm:"type:date"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	TipoCombustible *TipoCombustible `gorm:"foreignKey:TipoCombustibleID"`
}

func (Pipa) TableName() string { return "pipas" }
