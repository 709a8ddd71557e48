package dto

import "github.com/shopspring/decimal"

// ─── Carrito ─────────────────────────────────────────────────────────────────

type AgregarItemRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type ActualizarItemRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

// ActualizarCarritoRequest sets sale-level fields on the open cart; only
// non-nil fields are applied.
type ActualizarCarritoRequest struct {
	ClienteID     *string          `json:"cliente_id" validate:"omitempty,uuid"`
	MetodoPago    *string          `json:"metodo_pago"`
	Observaciones *string          `json:"observaciones"`
	Descuento     *decimal.Decimal `json:"descuento"`
}

type ItemCarritoResponse struct {
	ProductoID string          `json:"producto_id"`
	Codigo     string          `json:"codigo"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type CarritoResponse struct {
	Items         []ItemCarritoResponse `json:"items"`
	ClienteID     *string               `json:"cliente_id,omitempty"`
	MetodoPago    string                `json:"metodo_pago"`
	Observaciones string                `json:"observaciones,omitempty"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Descuento     decimal.Decimal       `json:"descuento"`
	IVA           decimal.Decimal       `json:"iva"`
	Total         decimal.Decimal       `json:"total"`
}

// ─── Ventas de productos ─────────────────────────────────────────────────────

type FinalizarVentaRequest struct {
	MetodoPago    string           `json:"metodo_pago" validate:"required"`
	Observaciones string           `json:"observaciones"`
	Descuento     *decimal.Decimal `json:"descuento"`
}

type DetalleVentaResponse struct {
	Producto string          `json:"producto"`
	Cantidad int             `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID            string                 `json:"id"`
	Cliente       string                 `json:"cliente,omitempty"`
	Fecha         string                 `json:"fecha"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	IVA           decimal.Decimal        `json:"iva"`
	Descuento     decimal.Decimal        `json:"descuento"`
	Total         decimal.Decimal        `json:"total"`
	MetodoPago    string                 `json:"metodo_pago"`
	Observaciones string                 `json:"observaciones,omitempty"`
	Detalles      []DetalleVentaResponse `json:"detalles"`
}

type VentaFilter struct {
	Fecha string `form:"fecha"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=10" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
