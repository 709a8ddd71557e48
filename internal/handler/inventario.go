package handler

import (
	"net/http"
	"strconv"

	"gasolinera/internal/apierror"
	"gasolinera/internal/dto"
	"gasolinera/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

func movimientoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return id, true
}

// RegistrarMovimiento godoc
// @Summary      Registrar movimiento manual de inventario
// @Description  Inserta un movimiento de combustible y recalcula en cascada los saldos posteriores.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarMovimientoRequest true "Movimiento"
// @Success      201  {object} dto.MovimientoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/inventario/movimientos [post]
func (h *InventarioHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarManual(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EditarMovimiento godoc
// @Summary      Editar movimiento manual
// @Description  Reescribe un movimiento manual y propaga la corrección a todos los movimientos posteriores del mismo combustible. Los movimientos automáticos no se pueden editar.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "ID del movimiento"
// @Param        body body dto.EditarMovimientoRequest true "Nuevos valores"
// @Success      200  {object} dto.MovimientoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/inventario/movimientos/{id} [put]
func (h *InventarioHandler) EditarMovimiento(c *gin.Context) {
	id, ok := movimientoID(c)
	if !ok {
		return
	}
	var req dto.EditarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EditarManual(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarMovimiento godoc
// @Summary      Eliminar movimiento manual
// @Description  Elimina un movimiento manual y re-encadena los saldos posteriores. Los movimientos automáticos no se pueden eliminar.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID del movimiento"
// @Success      204
// @Failure      409  {object} apierror.APIError
// @Router       /v1/inventario/movimientos/{id} [delete]
func (h *InventarioHandler) EliminarMovimiento(c *gin.Context) {
	id, ok := movimientoID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarManual(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarMovimientos godoc
// @Summary      Listar movimientos de inventario
// @Description  Lista paginada filtrable por mes y año, ordenada de más reciente a más antiguo.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        mes   query int false "Mes (1-12)"
// @Param        anio  query int false "Año"
// @Param        page  query int false "Página"
// @Param        limit query int false "Tamaño de página"
// @Success      200  {object} dto.MovimientoListResponse
// @Router       /v1/inventario/movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaldoActual godoc
// @Summary      Saldo actual de un combustible
// @Description  Retorna el saldo canónico: el cierre del movimiento más reciente más el neto de filas posteriores fuera de orden.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        tipo_id path int true "ID del tipo de combustible"
// @Success      200  {object} dto.SaldoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/inventario/saldos/{tipo_id} [get]
func (h *InventarioHandler) SaldoActual(c *gin.Context) {
	tipoID, err := strconv.ParseInt(c.Param("tipo_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.SaldoActual(c.Request.Context(), tipoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaldosConsolidados godoc
// @Summary      Saldos consolidados por combustible
// @Description  Agregado diagnóstico: suma de entradas menos salidas por tipo. No es el saldo corriente.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.SaldosConsolidadosResponse
// @Router       /v1/inventario/saldos [get]
func (h *InventarioHandler) SaldosConsolidados(c *gin.Context) {
	resp, err := h.svc.SaldosConsolidados(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
