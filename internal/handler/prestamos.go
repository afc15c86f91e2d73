package handler

import (
	"net/http"

	"cobranza/internal/apierror"
	"cobranza/internal/dto"
	"cobranza/internal/middleware"
	"cobranza/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PrestamosHandler struct {
	svc        service.PrestamoService
	disponible service.DisponibleService
}

func NewPrestamosHandler(svc service.PrestamoService, disponible service.DisponibleService) *PrestamosHandler {
	return &PrestamosHandler{svc: svc, disponible: disponible}
}

// Crear godoc
// @Summary Entrega un préstamo: registra la venta del día y emite el evento de disponibilidad
// @Tags prestamos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPrestamoRequest true "Préstamo"
// @Success 201 {object} dto.PrestamoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/prestamos [post]
func (h *PrestamosHandler) Crear(c *gin.Context) {
	var req dto.CrearPrestamoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actx := middleware.GetAuthCtx(c)

	resp, err := h.svc.Crear(c.Request.Context(), actx, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Eliminar godoc
// @Summary Elimina un préstamo y emite el evento de disponibilidad
// @Tags prestamos
// @Security BearerAuth
// @Param id path string true "ID de préstamo"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/prestamos/{id} [delete]
func (h *PrestamosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	actx := middleware.GetAuthCtx(c)
	if err := h.svc.Eliminar(c.Request.Context(), actx, id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Disponible godoc
// @Summary Consulta el índice de disponibilidad de un cliente
// @Tags prestamos
// @Produce json
// @Security BearerAuth
// @Param cliente_id path string true "ID de cliente"
// @Success 200 {object} dto.ClienteDisponibleResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{cliente_id}/disponible [get]
func (h *PrestamosHandler) Disponible(c *gin.Context) {
	clienteID, err := uuid.Parse(c.Param("cliente_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	cd, err := h.disponible.Consultar(c.Request.Context(), clienteID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("cliente sin índice de disponibilidad"))
		return
	}
	c.JSON(http.StatusOK, dto.ClienteDisponibleResponse{
		ClienteID:            cd.ClienteID.String(),
		Nombre:               cd.Nombre,
		ActivePrestamosCount: cd.ActivePrestamosCount,
		Disponible:           cd.Disponible,
	})
}
