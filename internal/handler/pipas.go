package handler

import (
	"net/http"

	"gasolinera/internal/apierror"
	"gasolinera/internal/dto"
	"gasolinera/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PipasHandler struct{ svc service.PipaService }

func NewPipasHandler(svc service.PipaService) *PipasHandler { return &PipasHandler{svc: svc} }

// Crear godoc
// @Summary      Registrar pipa
// @Description  Alta de un camión cisterna con su combustible asignado.
// @Tags         pipas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPipaRequest true "Pipa"
// @Success      201  {object} dto.PipaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/pipas [post]
func (h *PipasHandler) Crear(c *gin.Context) {
	var req dto.CrearPipaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary      Obtener pipa
// @Tags         pipas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la pipa"
// @Success      200  {object} dto.PipaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/pipas/{id} [get]
func (h *PipasHandler) Obtener(c *gin.Context) {
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

// Actualizar godoc
// @Summary      Actualizar pipa
// @Tags         pipas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la pipa"
// @Param        body body dto.ActualizarPipaRequest true "Campos a actualizar"
// @Success      200  {object} dto.PipaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/pipas/{id} [put]
func (h *PipasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarPipaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar pipa
// @Tags         pipas
// @Security     BearerAuth
// @Param        id path string true "UUID de la pipa"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/pipas/{id} [delete]
func (h *PipasHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Listar godoc
// @Summary      Listar pipas
// @Tags         pipas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.PipaResponse
// @Router       /v1/pipas [get]
func (h *PipasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
