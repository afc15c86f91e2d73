package handler

import (
	"net/http"

	"cobranza/internal/apierror"
	"cobranza/internal/dto"
	"cobranza/internal/fecha"
	"cobranza/internal/middleware"
	"cobranza/internal/model"
	"cobranza/internal/service"

	"github.com/gin-gonic/gin"
)

type MovimientosHandler struct {
	svc       service.MovimientoService
	tzDefecto string
}

func NewMovimientosHandler(svc service.MovimientoService, tzDefecto string) *MovimientosHandler {
	return &MovimientosHandler{svc: svc, tzDefecto: tzDefecto}
}

// Registrar godoc
// @Summary Registra un movimiento del día (ingreso, retiro, gasto, pago, venta)
// @Tags movimientos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarMovimientoRequest true "Movimiento"
// @Success 201 {object} dto.MovimientoCreadoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/movimientos [post]
func (h *MovimientosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actx := middleware.GetAuthCtx(c)

	resp, err := h.svc.Registrar(c.Request.Context(), actx, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Reporte godoc
// @Summary Movimientos de un día filtrados por tipo canónico, con total
// @Tags movimientos
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha operacional YYYY-MM-DD (defecto hoy)"
// @Param tipo query string true "Tipo canónico o etiqueta legada"
// @Param tz query string false "Zona horaria IANA"
// @Success 200 {object} dto.ReporteMovimientosResponse
// @Router /v1/movimientos [get]
func (h *MovimientosHandler) Reporte(c *gin.Context) {
	actx := middleware.GetAuthCtx(c)
	tz := fecha.Resolver(c.Query("tz"), h.tzDefecto)

	fechaOp := c.Query("fecha")
	if fechaOp == "" {
		fechaOp = fecha.HoyEn(tz)
	} else {
		fechaOp = fecha.NormalizarFechaSola(fechaOp, tz)
	}
	tipo := model.CanonizarTipo(c.Query("tipo"))

	resp, err := h.svc.ReportePorTipo(c.Request.Context(), actx, actx.Admin, fechaOp, tipo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary Totales del día por tipo canónico
// @Tags movimientos
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha operacional YYYY-MM-DD (defecto hoy)"
// @Param tz query string false "Zona horaria IANA"
// @Success 200 {object} dto.ResumenDiaResponse
// @Router /v1/movimientos/resumen [get]
func (h *MovimientosHandler) Resumen(c *gin.Context) {
	actx := middleware.GetAuthCtx(c)
	tz := fecha.Resolver(c.Query("tz"), h.tzDefecto)

	fechaOp := c.Query("fecha")
	if fechaOp == "" {
		fechaOp = fecha.HoyEn(tz)
	} else {
		fechaOp = fecha.NormalizarFechaSola(fechaOp, tz)
	}

	resp, err := h.svc.ResumenDia(c.Request.Context(), actx, actx.Admin, fechaOp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
