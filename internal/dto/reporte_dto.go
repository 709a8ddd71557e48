package dto

// Report identifiers accepted by the report endpoints.
const (
	ReporteInventarioCombustible = "inventario_combustible"
	ReporteVentasCombustible     = "ventas_combustible"
	ReporteVentasProductos       = "ventas_productos"
	ReporteInventarioProductos   = "inventario_productos"
)

// ReporteFilter bounds a report by an inclusive calendar-date range.
type ReporteFilter struct {
	FechaInicio string `form:"fecha_inicio" validate:"required"`
	FechaFin    string `form:"fecha_fin"    validate:"required"`
}

// EnviarReporteRequest queues a report for generation and e-mail delivery.
type EnviarReporteRequest struct {
	Tipo        string `json:"tipo"         validate:"required,oneof=inventario_combustible ventas_combustible ventas_productos inventario_productos"`
	Formato     string `json:"formato"      validate:"required,oneof=pdf excel"`
	FechaInicio string `json:"fecha_inicio" validate:"required"`
	FechaFin    string `json:"fecha_fin"    validate:"required"`
	Email       string `json:"email"        validate:"required,email"`
}

type EnviarReporteResponse struct {
	Mensaje string `json:"mensaje"`
	JobID   string `json:"job_id"`
}
