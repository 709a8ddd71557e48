package handler

import (
	"net/http"

	"gasolinera/internal/apierror"
	"gasolinera/internal/dto"
	"gasolinera/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasCombustibleHandler struct{ svc service.VentaCombustibleService }

func NewVentasCombustibleHandler(svc service.VentaCombustibleService) *VentasCombustibleHandler {
	return &VentasCombustibleHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar venta de combustible
// @Description  Crea la venta y un movimiento automático de inventario por cada línea, todo en una transacción: si falla cualquier escritura no persiste nada.
// @Tags         ventas-combustible
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVentaCombustibleRequest true "Venta"
// @Success      201  {object} dto.VentaCombustibleResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ventas-combustible [post]
func (h *VentasCombustibleHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaCombustibleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary      Obtener venta de combustible
// @Tags         ventas-combustible
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200  {object} dto.VentaCombustibleResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/ventas-combustible/{id} [get]
func (h *VentasCombustibleHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar ventas de combustible
// @Tags         ventas-combustible
// @Produce      json
// @Security     BearerAuth
// @Param        cliente_id query string false "Filtrar por cliente"
// @Param        fecha      query string false "Fecha exacta YYYY-MM-DD"
// @Param        page       query int    false "Página"
// @Param        limit      query int    false "Tamaño de página"
// @Success      200  {object} dto.VentaCombustibleListResponse
// @Router       /v1/ventas-combustible [get]
func (h *VentasCombustibleHandler) Listar(c *gin.Context) {
	var filter dto.VentaCombustibleFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
