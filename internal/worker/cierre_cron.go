package worker

// cierre_cron.go
// Background goroutine that periodically sweeps every active admin's last
// days and persists any missing cierres. Each day's closing is independently
// idempotent, so a tick interrupted halfway simply resumes on the next one.

import (
	"context"
	"fmt"
	"time"

	"cobranza/internal/authctx"
	"cobranza/internal/config"
	"cobranza/internal/fecha"
	"cobranza/internal/infra"
	"cobranza/internal/repository"
	"cobranza/internal/service"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CierreCronConfig holds all dependencies for the sweep goroutine.
type CierreCronConfig struct {
	UsuarioRepo repository.UsuarioRepository
	CajaSvc     service.CajaService
	MovSvc      service.MovimientoService
	Dispatcher  *Dispatcher
	Cfg         *config.Config
}

// StartCierreCron launches the sweep goroutine. It respects the context for
// graceful shutdown.
func StartCierreCron(ctx context.Context, cc CierreCronConfig) {
	interval := time.Duration(cc.Cfg.CierreCronMinutos) * time.Minute
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("cierre_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("cierre_cron: shutting down")
				return
			case <-ticker.C:
				processSweep(ctx, cc)
			}
		}
	}()
}

func processSweep(ctx context.Context, cc CierreCronConfig) {
	admins, err := cc.UsuarioRepo.ListAdminsActivos(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cierre_cron: failed to list admins")
		return
	}

	tz := cc.Cfg.TimezoneDefecto
	hoy := fecha.HoyEn(tz)

	for _, admin := range admins {
		// System sweep runs unscoped: no tenant/route restriction applies.
		actx := authctx.Ctx{UserID: "system", Admin: admin, Rol: authctx.RolSuperadmin}

		resp, err := cc.CajaSvc.CerrarDiasPendientes(ctx, actx, admin, hoy, tz, cc.Cfg.CajaLookbackDias)
		if err != nil {
			log.Error().Err(err).Str("admin", admin).Msg("cierre_cron: sweep failed")
			continue
		}

		for _, cierre := range resp.Cierres {
			if !cierre.Creado {
				continue
			}
			log.Info().
				Str("admin", admin).
				Str("fecha", cierre.FechaOperacional).
				Str("cierre", cierre.Cierre.String()).
				Msg("cierre_cron: day closed")
			notificarCierre(ctx, cc, actx, admin, cierre.FechaOperacional, cierre.Apertura, cierre.Cierre)
		}
	}
}

// notificarCierre renders the day's report PDF and enqueues the summary mail.
// Best effort: reporting failures never block the sweep.
func notificarCierre(ctx context.Context, cc CierreCronConfig, actx authctx.Ctx, admin, dia string, apertura, cierre decimal.Decimal) {
	if cc.Cfg.ResumenEmail == "" {
		return
	}

	resumen, err := cc.MovSvc.ResumenDia(ctx, actx, admin, dia)
	if err != nil {
		log.Error().Err(err).Str("admin", admin).Str("fecha", dia).Msg("cierre_cron: resumen failed")
		return
	}

	pdfPath, err := infra.GenerateReporteDiarioPDF(resumen, apertura, cierre, cc.Cfg.PDFStoragePath)
	if err != nil {
		log.Error().Err(err).Str("admin", admin).Str("fecha", dia).Msg("cierre_cron: pdf failed")
		pdfPath = ""
	}

	payload := EmailJobPayload{
		ToEmail: cc.Cfg.ResumenEmail,
		Subject: fmt.Sprintf("Cierre de caja %s - %s", admin, dia),
		Body: fmt.Sprintf("Cierre del día %s para %s.\nApertura: $%s\nEntradas: $%s\nSalidas: $%s\nCierre: $%s\n",
			dia, admin, apertura.StringFixed(2), resumen.Entradas.StringFixed(2),
			resumen.Salidas.StringFixed(2), cierre.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := cc.Dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Str("admin", admin).Msg("cierre_cron: enqueue email failed")
	}
}
