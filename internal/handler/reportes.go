package handler

import (
	"net/http"

	"cobranza/internal/apierror"
	"cobranza/internal/fecha"
	"cobranza/internal/infra"
	"cobranza/internal/middleware"
	"cobranza/internal/model"
	"cobranza/internal/repository"
	"cobranza/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ReporteHandler struct {
	movSvc      service.MovimientoService
	cajaRepo    repository.CajaRepository
	tzDefecto   string
	storagePath string
}

func NewReporteHandler(movSvc service.MovimientoService, cajaRepo repository.CajaRepository, tzDefecto, storagePath string) *ReporteHandler {
	return &ReporteHandler{movSvc: movSvc, cajaRepo: cajaRepo, tzDefecto: tzDefecto, storagePath: storagePath}
}

// CajaPDF godoc
// @Summary Genera el reporte diario de caja en PDF
// @Tags reportes
// @Produce application/pdf
// @Security BearerAuth
// @Param fecha query string false "Fecha operacional YYYY-MM-DD (defecto hoy)"
// @Param tz query string false "Zona horaria IANA"
// @Success 200 {file} binary
// @Failure 400 {object} apierror.APIError
// @Failure 500 {object} apierror.APIError
// @Router /v1/reportes/caja/pdf [get]
func (h *ReporteHandler) CajaPDF(c *gin.Context) {
	actx := middleware.GetAuthCtx(c)
	tz := fecha.Resolver(c.Query("tz"), h.tzDefecto)

	dia := fecha.HoyEn(tz)
	if f := c.Query("fecha"); f != "" {
		dia = fecha.NormalizarFechaSola(f, tz)
	}

	resumen, err := h.movSvc.ResumenDia(c.Request.Context(), actx, actx.Admin, dia)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}

	apertura := h.montoDoc(c, model.CajaTipoApertura, actx.Admin, dia)
	cierre, ok := h.montoCierre(c, actx.Admin, dia)
	if !ok {
		// Day not yet closed: derive the running balance instead.
		cierre = apertura.Add(resumen.Entradas).Sub(resumen.Salidas)
	}

	path, err := infra.GenerateReporteDiarioPDF(resumen, apertura, cierre, h.storagePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, "reporte_"+actx.Admin+"_"+dia+".pdf")
}

func (h *ReporteHandler) montoDoc(c *gin.Context, tipo, admin, dia string) decimal.Decimal {
	doc, err := h.cajaRepo.FindByDocID(c.Request.Context(), model.CajaDocID(tipo, admin, dia))
	if err != nil || doc == nil {
		return decimal.Zero
	}
	return doc.Monto
}

func (h *ReporteHandler) montoCierre(c *gin.Context, admin, dia string) (decimal.Decimal, bool) {
	doc, err := h.cajaRepo.FindByDocID(c.Request.Context(), model.CajaDocID(model.CajaTipoCierre, admin, dia))
	if err != nil || doc == nil {
		return decimal.Zero, false
	}
	return doc.Monto, true
}
