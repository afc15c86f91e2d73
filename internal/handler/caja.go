package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cobranza/internal/apierror"
	"cobranza/internal/dto"
	"cobranza/internal/fecha"
	"cobranza/internal/middleware"
	"cobranza/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct {
	svc       service.CajaService
	tzDefecto string
}

func NewCajaHandler(svc service.CajaService, tzDefecto string) *CajaHandler {
	return &CajaHandler{svc: svc, tzDefecto: tzDefecto}
}

// Abrir godoc
// @Summary Registra la apertura manual de caja del día
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} dto.AbrirCajaResponse
// @Success 200 {object} dto.AbrirCajaResponse "ya registrada"
// @Failure 400 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actx := middleware.GetAuthCtx(c)

	resp, err := h.svc.AbrirCaja(c.Request.Context(), actx, req)
	if err != nil {
		if errors.Is(err, service.ErrMontoInvalido) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	// Duplicate day is informational, not an error: 200 with ya_registrada.
	if resp.YaRegistrada {
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Estado godoc
// @Summary Consulta el estado de la caja de hoy
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param tz query string false "Zona horaria IANA"
// @Success 200 {object} dto.EstadoCajaResponse
// @Router /v1/caja/estado [get]
func (h *CajaHandler) Estado(c *gin.Context) {
	actx := middleware.GetAuthCtx(c)
	resp, err := h.svc.EstadoDeHoy(c.Request.Context(), actx, c.Query("tz"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reconciliar godoc
// @Summary Cierra los días pendientes dentro de la ventana de revisión
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param lookback query int false "Días hacia atrás (defecto configurado)"
// @Param tz query string false "Zona horaria IANA"
// @Success 200 {object} dto.ReconciliacionResponse
// @Failure 500 {object} apierror.APIError
// @Router /v1/caja/reconciliar [post]
func (h *CajaHandler) Reconciliar(c *gin.Context) {
	actx := middleware.GetAuthCtx(c)
	lookback, _ := strconv.Atoi(c.DefaultQuery("lookback", "0"))

	tz := fecha.Resolver(c.Query("tz"), h.tzDefecto)
	hoy := fecha.HoyEn(tz)

	resp, err := h.svc.CerrarDiasPendientes(c.Request.Context(), actx, actx.Admin, hoy, tz, lookback)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
