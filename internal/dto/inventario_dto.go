package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

// RegistrarMovimientoRequest creates a manual ledger row.
// Fecha is a calendar date, YYYY-MM-DD. Quantities must be non-negative;
// a salida larger than the current balance is accepted (the ledger does not
// reject negative resulting balances).
type RegistrarMovimientoRequest struct {
	TipoCombustibleID int64           `json:"tipo_combustible_id" validate:"required"`
	InventarioInicial decimal.Decimal `json:"inventario_inicial"  validate:"min=0"`
	Entrada           decimal.Decimal `json:"entrada"             validate:"min=0"`
	Salida            decimal.Decimal `json:"salida"              validate:"min=0"`
	Fecha             string          `json:"fecha"               validate:"required"`
}

// EditarMovimientoRequest rewrites a manual ledger row; the cascade recompute
// runs over every later row of the same fuel type.
type EditarMovimientoRequest struct {
	TipoCombustibleID int64           `json:"tipo_combustible_id" validate:"required"`
	InventarioInicial decimal.Decimal `json:"inventario_inicial"  validate:"min=0"`
	Entrada           decimal.Decimal `json:"entrada"             validate:"min=0"`
	Salida            decimal.Decimal `json:"salida"              validate:"min=0"`
	Fecha             string          `json:"fecha"               validate:"required"`
}

// MovimientoFilter is bound from the query string of GET /v1/inventario/movimientos.
type MovimientoFilter struct {
	Mes   int `form:"mes"   validate:"omitempty,min=1,max=12"`
	Anio  int `form:"anio"  validate:"omitempty,min=2000"`
	Page  int `form:"page,default=1"  validate:"min=1"`
	Limit int `form:"limit,default=10" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type MovimientoResponse struct {
	ID                int64           `json:"id"`
	TipoCombustibleID int64           `json:"tipo_combustible_id"`
	NombreTipo        string          `json:"nombre_tipo,omitempty"`
	InventarioInicial decimal.Decimal `json:"inventario_inicial"`
	Entrada           decimal.Decimal `json:"entrada"`
	Salida            decimal.Decimal `json:"salida"`
	InventarioFinal   decimal.Decimal `json:"inventario_final"`
	Fecha             string          `json:"fecha"`
	EsAutomatico      bool            `json:"es_automatico"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// SaldoResponse is the canonical running balance of one fuel type.
type SaldoResponse struct {
	TipoCombustibleID int64           `json:"tipo_combustible_id"`
	Nombre            string          `json:"nombre"`
	Saldo             decimal.Decimal `json:"saldo"`
}

// SaldosConsolidadosResponse is the diagnostic aggregate (sum of entradas minus
// salidas over all history) shown on dashboards. It is NOT the running balance.
type SaldosConsolidadosResponse struct {
	Saldos map[string]decimal.Decimal `json:"saldos"`
}
