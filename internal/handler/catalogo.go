package handler

import (
	"net/http"

	"gasolinera/internal/dto"
	"gasolinera/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// ListarTiposCombustible godoc
// @Summary      Listar tipos de combustible
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.TipoCombustibleResponse
// @Router       /v1/tipos-combustible [get]
func (h *CatalogoHandler) ListarTiposCombustible(c *gin.Context) {
	resp, err := h.svc.ListarTiposCombustible(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarClientes godoc
// @Summary      Listar clientes
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.ClienteResponse
// @Router       /v1/clientes [get]
func (h *CatalogoHandler) ListarClientes(c *gin.Context) {
	resp, err := h.svc.ListarClientes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearCliente godoc
// @Summary      Crear cliente
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearClienteRequest true "Cliente"
// @Success      201  {object} dto.ClienteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/clientes [post]
func (h *CatalogoHandler) CrearCliente(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCliente(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
