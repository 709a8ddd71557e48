package handler

import (
	"net/http"

	"gasolinera/internal/apierror"
	"gasolinera/internal/dto"
	"gasolinera/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VentasHandler serves the session cart and product sales.
type VentasHandler struct {
	carrito service.CarritoService
	ventas  service.VentaService
}

func NewVentasHandler(carrito service.CarritoService, ventas service.VentaService) *VentasHandler {
	return &VentasHandler{carrito: carrito, ventas: ventas}
}

// VerCarrito godoc
// @Summary      Ver carrito
// @Description  Retorna el carrito de la sesión con subtotal, descuento, IVA y total.
// @Tags         carrito
// @Produce      json
// @Security     BearerAuth
// @Param        X-Session-ID header string true "ID de sesión"
// @Success      200  {object} dto.CarritoResponse
// @Router       /v1/carrito [get]
func (h *VentasHandler) VerCarrito(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	resp, err := h.carrito.Ver(c.Request.Context(), sid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarItem godoc
// @Summary      Agregar producto al carrito
// @Description  Agrega una línea; si el producto ya está en el carrito las cantidades se suman.
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Session-ID header string true "ID de sesión"
// @Param        body body dto.AgregarItemRequest true "Línea"
// @Success      200  {object} dto.CarritoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/carrito/items [post]
func (h *VentasHandler) AgregarItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.carrito.AgregarItem(c.Request.Context(), sid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarItem godoc
// @Summary      Cambiar cantidad de un producto del carrito
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Session-ID header string true "ID de sesión"
// @Param        producto_id  path   string true "UUID del producto"
// @Param        body body dto.ActualizarItemRequest true "Nueva cantidad"
// @Success      200  {object} dto.CarritoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/carrito/items/{producto_id} [put]
func (h *VentasHandler) ActualizarItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.ActualizarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.carrito.ActualizarItem(c.Request.Context(), sid, c.Param("producto_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuitarItem godoc
// @Summary      Quitar producto del carrito
// @Tags         carrito
// @Produce      json
// @Security     BearerAuth
// @Param        X-Session-ID header string true "ID de sesión"
// @Param        producto_id  path   string true "UUID del producto"
// @Success      200  {object} dto.CarritoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/carrito/items/{producto_id} [delete]
func (h *VentasHandler) QuitarItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	resp, err := h.carrito.QuitarItem(c.Request.Context(), sid, c.Param("producto_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCarrito godoc
// @Summary      Actualizar datos de la venta en curso
// @Description  Asigna cliente, método de pago, observaciones o descuento al carrito.
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Session-ID header string true "ID de sesión"
// @Param        body body dto.ActualizarCarritoRequest true "Campos"
// @Success      200  {object} dto.CarritoResponse
// @Router       /v1/carrito [put]
func (h *VentasHandler) ActualizarCarrito(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.ActualizarCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.carrito.Actualizar(c.Request.Context(), sid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelarCarrito godoc
// @Summary      Cancelar carrito
// @Description  Vacía el carrito de la sesión.
// @Tags         carrito
// @Security     BearerAuth
// @Param        X-Session-ID header string true "ID de sesión"
// @Success      204
// @Router       /v1/carrito [delete]
func (h *VentasHandler) CancelarCarrito(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.carrito.Cancelar(c.Request.Context(), sid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// FinalizarVenta godoc
// @Summary      Finalizar venta de productos
// @Description  Convierte el carrito en una venta persistida descontando stock en la misma transacción.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Session-ID header string true "ID de sesión"
// @Param        body body dto.FinalizarVentaRequest true "Método de pago y ajustes finales"
// @Success      201  {object} dto.VentaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) FinalizarVenta(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	var req dto.FinalizarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ventas.Finalizar(c.Request.Context(), sid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerVenta godoc
// @Summary      Obtener venta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200  {object} dto.VentaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/ventas/{id} [get]
func (h *VentasHandler) ObtenerVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.ventas.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarVentas godoc
// @Summary      Listar ventas de productos
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        fecha query string false "Fecha exacta YYYY-MM-DD"
// @Param        page  query int    false "Página"
// @Param        limit query int    false "Tamaño de página"
// @Success      200  {object} dto.VentaListResponse
// @Router       /v1/ventas [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.ventas.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
