package dto

import "github.com/shopspring/decimal"

// ─── Fuel sales ──────────────────────────────────────────────────────────────

// DetalleCombustibleRequest carries liters or an amount in quetzales; the
// missing side is derived from the pump price.
type DetalleCombustibleRequest struct {
	TipoCombustibleID int64           `json:"tipo_combustible_id" validate:"required"`
	CantidadLitros    decimal.Decimal `json:"cantidad_litros"     validate:"min=0"`
	MontoQuetzales    decimal.Decimal `json:"monto_quetzales"     validate:"min=0"`
}

type RegistrarVentaCombustibleRequest struct {
	ClienteID     string                      `json:"cliente_id"    validate:"required,uuid"`
	Fecha         string                      `json:"fecha"         validate:"required"`
	MetodoPago    string                      `json:"metodo_pago"   validate:"required"`
	Observaciones string                      `json:"observaciones"`
	Detalles      []DetalleCombustibleRequest `json:"detalles"      validate:"required,min=1,dive"`
}

type DetalleCombustibleResponse struct {
	TipoCombustible string          `json:"tipo_combustible"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario"`
	CantidadLitros  decimal.Decimal `json:"cantidad_litros"`
	MontoQuetzales  decimal.Decimal `json:"monto_quetzales"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

type VentaCombustibleResponse struct {
	ID            string                       `json:"id"`
	Cliente       string                       `json:"cliente"`
	Fecha         string                       `json:"fecha"`
	Total         decimal.Decimal              `json:"total"`
	MetodoPago    string                       `json:"metodo_pago"`
	Observaciones string                       `json:"observaciones,omitempty"`
	Detalles      []DetalleCombustibleResponse `json:"detalles"`
}

// VentaCombustibleFilter filters the paginated fuel-sale history.
type VentaCombustibleFilter struct {
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Fecha     string `form:"fecha"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=10" validate:"min=1,max=200"`
}

type VentaCombustibleListResponse struct {
	Data         []VentaCombustibleResponse `json:"data"`
	Total        int64                      `json:"total"`
	Page         int                        `json:"page"`
	TotalPaginas int                        `json:"total_paginas"`
}

// ─── Estadísticas ────────────────────────────────────────────────────────────

// EstadisticasFilter narrows chart aggregations; zero values mean "all history".
type EstadisticasFilter struct {
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Mes       int    `form:"mes"  validate:"omitempty,min=1,max=12"`
	Anio      int    `form:"anio" validate:"omitempty,min=2000"`
}

// VentaMensualCombustible is one bar of the monthly liters-per-fuel chart.
type VentaMensualCombustible struct {
	Mes             int             `json:"mes"`
	Anio            int             `json:"anio"`
	TipoCombustible string          `json:"tipo_combustible"`
	TotalLitros     decimal.Decimal `json:"total_litros"`
}

// ProductoVendido is one entry of the top-products chart.
type ProductoVendido struct {
	Nombre   string `json:"nombre"`
	Cantidad int64  `json:"cantidad"`
}

// DashboardResponse aggregates the home-screen indicators.
type DashboardResponse struct {
	VentasTotalesHoy      decimal.Decimal            `json:"ventas_totales_hoy"`
	LitrosDistribuidosHoy decimal.Decimal            `json:"litros_distribuidos_hoy"`
	ProductosVendidosHoy  int64                      `json:"productos_vendidos_hoy"`
	InventarioConsolidado map[string]decimal.Decimal `json:"inventario_consolidado"`
}

// TipoCombustibleResponse exposes the fuel reference data with price.
type TipoCombustibleResponse struct {
	ID     int64           `json:"id"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
}
