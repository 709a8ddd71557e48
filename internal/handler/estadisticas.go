package handler

import (
	"net/http"
	"strconv"

	"gasolinera/internal/dto"
	"gasolinera/internal/service"

	"github.com/gin-gonic/gin"
)

type EstadisticasHandler struct{ svc service.EstadisticasService }

func NewEstadisticasHandler(svc service.EstadisticasService) *EstadisticasHandler {
	return &EstadisticasHandler{svc: svc}
}

// Dashboard godoc
// @Summary      Indicadores del día
// @Description  Ventas totales, litros distribuidos, unidades vendidas e inventario consolidado. Cacheado un minuto.
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.DashboardResponse
// @Router       /v1/estadisticas/dashboard [get]
func (h *EstadisticasHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VentasCombustible godoc
// @Summary      Litros vendidos por mes y combustible
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Param        cliente_id query string false "Filtrar por cliente"
// @Param        mes        query int    false "Mes (1-12)"
// @Param        anio       query int    false "Año"
// @Success      200  {array} dto.VentaMensualCombustible
// @Router       /v1/estadisticas/ventas-combustible [get]
func (h *EstadisticasHandler) VentasCombustible(c *gin.Context) {
	var filter dto.EstadisticasFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.VentasCombustiblePorMes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopProductos godoc
// @Summary      Productos más vendidos
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Cantidad de productos (máx 50)"
// @Success      200  {array} dto.ProductoVendido
// @Router       /v1/estadisticas/top-productos [get]
func (h *EstadisticasHandler) TopProductos(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	resp, err := h.svc.TopProductos(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
