package dto

import "github.com/shopspring/decimal"

type CrearPipaRequest struct {
	Placa                string          `json:"placa"               validate:"required,max=20"`
	Capacidad            decimal.Decimal `json:"capacidad"           validate:"required"`
	TipoCombustibleID    int64           `json:"tipo_combustible_id" validate:"required"`
	ConductorAsignado    *string         `json:"conductor_asignado"`
	UbicacionActual      *string         `json:"ubicacion_actual"`
	Estado               string          `json:"estado" validate:"omitempty,oneof=activa mantenimiento inactiva"`
	UltimoMantenimiento  *string         `json:"ultimo_mantenimiento"`
	ProximoMantenimiento *string         `json:"proximo_mantenimiento"`
}

type ActualizarPipaRequest struct {
	Placa                *string          `json:"placa"     validate:"omitempty,max=20"`
	Capacidad            *decimal.Decimal `json:"capacidad"`
	TipoCombustibleID    *int64           `json:"tipo_combustible_id"`
	ConductorAsignado    *string          `json:"conductor_asignado"`
	UbicacionActual      *string          `json:"ubicacion_actual"`
	Estado               *string          `json:"estado" validate:"omitempty,oneof=activa mantenimiento inactiva"`
	UltimoMantenimiento  *string          `json:"ultimo_mantenimiento"`
	ProximoMantenimiento *string          `json:"proximo_mantenimiento"`
}

type PipaResponse struct {
	ID                   string          `json:"id"`
	Placa                string          `json:"placa"`
	Capacidad            decimal.Decimal `json:"capacidad"`
	TipoCombustibleID    int64           `json:"tipo_combustible_id"`
	TipoCombustible      string          `json:"tipo_combustible,omitempty"`
	ConductorAsignado    *string         `json:"conductor_asignado,omitempty"`
	UbicacionActual      *string         `json:"ubicacion_actual,omitempty"`
	Estado               string          `json:"estado"`
	UltimoMantenimiento  *string         `json:"ultimo_mantenimiento,omitempty"`
	ProximoMantenimiento *string         `json:"proximo_mantenimiento,omitempty"`
}
