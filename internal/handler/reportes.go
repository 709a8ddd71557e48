package handler

import (
	"net/http"

	"gasolinera/internal/apierror"
	"gasolinera/internal/dto"
	"gasolinera/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Descargar godoc
// @Summary      Descargar reporte
// @Description  Genera el reporte de forma síncrona y lo retorna como archivo PDF o Excel.
// @Tags         reportes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        tipo         path  string true "Tipo de reporte" Enums(inventario_combustible, ventas_combustible, ventas_productos, inventario_productos)
// @Param        formato      query string true "pdf o excel"
// @Param        fecha_inicio query string true "YYYY-MM-DD"
// @Param        fecha_fin    query string true "YYYY-MM-DD"
// @Success      200 {file} binary
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/{tipo} [get]
func (h *ReportesHandler) Descargar(c *gin.Context) {
	var filter dto.ReporteFilter
	if !bindQuery(c, &filter) {
		return
	}
	formato := c.Query("formato")
	if formato == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetro formato requerido (pdf o excel)"))
		return
	}

	archivo, err := h.svc.Generar(c.Request.Context(), c.Param("tipo"), formato, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+archivo.Nombre+`"`)
	c.Data(http.StatusOK, archivo.ContentType, archivo.Contenido)
}

// Enviar godoc
// @Summary      Enviar reporte por correo
// @Description  Encola la generación del reporte en el pool de workers; el archivo se envía como adjunto al correo indicado.
// @Tags         reportes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.EnviarReporteRequest true "Solicitud"
// @Success      202  {object} dto.EnviarReporteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reportes/enviar [post]
func (h *ReportesHandler) Enviar(c *gin.Context) {
	var req dto.EnviarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Encolar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
