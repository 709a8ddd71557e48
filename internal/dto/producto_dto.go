package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Codigo   string          `json:"codigo"   validate:"required,max=50"`
	Nombre   string          `json:"nombre"   validate:"required,max=120"`
	Precio   decimal.Decimal `json:"precio"   validate:"required"`
	Cantidad int             `json:"cantidad" validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Codigo   *string          `json:"codigo"   validate:"omitempty,max=50"`
	Nombre   *string          `json:"nombre"   validate:"omitempty,max=120"`
	Precio   *decimal.Decimal `json:"precio"`
	Cantidad *int             `json:"cantidad" validate:"omitempty,min=0"`
}

// ProductoFilter supports the catalog search screen: free-text search over
// codigo and nombre, ordering by any exposed column, and pagination.
type ProductoFilter struct {
	Busqueda string `form:"busqueda"`
	OrdenPor string `form:"orden_por,default=nombre" validate:"omitempty,oneof=codigo nombre precio cantidad"`
	Orden    string `form:"orden,default=asc"        validate:"omitempty,oneof=asc desc"`
	Page     int    `form:"page,default=1"           validate:"min=1"`
	Limit    int    `form:"limit,default=10"         validate:"min=1,max=200"`
}

type ProductoResponse struct {
	ID       string          `json:"id"`
	Codigo   string          `json:"codigo"`
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"precio"`
	Cantidad int             `json:"cantidad"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
