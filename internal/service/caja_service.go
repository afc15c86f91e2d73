package service

import (
	"context"
	"errors"
	"time"

	"cobranza/internal/authctx"
	"cobranza/internal/config"
	"cobranza/internal/dto"
	"cobranza/internal/fecha"
	"cobranza/internal/model"
	"cobranza/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrMontoInvalido rejects an apertura below the configured minimum.
var ErrMontoInvalido = errors.New("monto de apertura inválido")

type CajaService interface {
	// AbrirCaja records today's manual apertura. Idempotent per admin/day:
	// a repeat call reports YaRegistrada and leaves the stored monto intact.
	AbrirCaja(ctx context.Context, actx authctx.Ctx, req dto.AbrirCajaRequest) (*dto.AbrirCajaResponse, error)
	// EstadoDeHoy reports whether today's apertura exists. It only seeds a
	// zero-monto apertura when CAJA_AUTO_APERTURA is enabled.
	EstadoDeHoy(ctx context.Context, actx authctx.Ctx, tzOverride string) (*dto.EstadoCajaResponse, error)
	// CerrarDiasPendientes derives and persists a cierre for each day in the
	// lookback window that is still missing one. Idempotent per day, safe to
	// re-run after a partial failure.
	CerrarDiasPendientes(ctx context.Context, actx authctx.Ctx, admin, hoy, tz string, lookbackDias int) (*dto.ReconciliacionResponse, error)
}

type cajaService struct {
	repo    repository.CajaRepository
	movRepo repository.MovimientoRepository
	audit   AuditService
	cfg     *config.Config
}

func NewCajaService(repo repository.CajaRepository, movRepo repository.MovimientoRepository, audit AuditService, cfg *config.Config) CajaService {
	return &cajaService{repo: repo, movRepo: movRepo, audit: audit, cfg: cfg}
}

// ── AbrirCaja ─────────────────────────────────────────────────────────────────

func (s *cajaService) AbrirCaja(ctx context.Context, actx authctx.Ctx, req dto.AbrirCajaRequest) (*dto.AbrirCajaResponse, error) {
	monto := RedondearMonto(req.Monto)
	min := decimal.NewFromFloat(s.cfg.CajaMinApertura)
	if monto.LessThan(min) {
		return nil, ErrMontoInvalido
	}

	tz := fecha.Resolver(req.TZ, s.cfg.TimezoneDefecto)
	hoy := fecha.HoyEn(tz)
	docID := model.CajaDocID(model.CajaTipoApertura, actx.Admin, hoy)

	// Guarded write, deliberately not a transaction: opening is a single-user
	// single-device action. The deterministic primary key closes the residual
	// double-submit window — a racing insert comes back as ErrCajaDuplicada
	// and resolves to the same "ya registrada" outcome.
	if existing, err := s.repo.FindByDocID(ctx, docID); err == nil {
		return aperturaResponse(existing, true), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	registro := &model.CajaDiaria{
		DocID:            docID,
		Tipo:             model.CajaTipoApertura,
		Admin:            actx.Admin,
		Monto:            monto,
		FechaOperacional: hoy,
		TZ:               tz,
		Nota:             req.Nota,
		Source:           model.CajaSourceManual,
		TenantID:         actx.TenantID,
		RutaID:           actx.RutaID,
		CreatedAtMs:      time.Now().UnixMilli(),
	}
	if err := s.repo.Create(ctx, registro); err != nil {
		if errors.Is(err, repository.ErrCajaDuplicada) {
			if existing, ferr := s.repo.FindByDocID(ctx, docID); ferr == nil {
				return aperturaResponse(existing, true), nil
			}
		}
		return nil, err
	}

	s.audit.Registrar(ctx, AuditEntry{
		UserID:   actx.UserID,
		Accion:   model.AccionCajaAperturaManual,
		Ref:      docID,
		After:    registro,
		TenantID: actx.TenantID,
	})

	return aperturaResponse(registro, false), nil
}

// ── EstadoDeHoy ───────────────────────────────────────────────────────────────

func (s *cajaService) EstadoDeHoy(ctx context.Context, actx authctx.Ctx, tzOverride string) (*dto.EstadoCajaResponse, error) {
	tz := fecha.Resolver(tzOverride, s.cfg.TimezoneDefecto)
	hoy := fecha.HoyEn(tz)
	docID := model.CajaDocID(model.CajaTipoApertura, actx.Admin, hoy)

	existing, err := s.repo.FindByDocID(ctx, docID)
	if err == nil {
		return estadoResponse(hoy, tz, existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !s.cfg.CajaAutoApertura {
		return &dto.EstadoCajaResponse{FechaOperacional: hoy, TZ: tz}, nil
	}

	// Policy-driven seeding: a zero apertura marks the day as opened so the
	// evening cierre has a base amount.
	registro := &model.CajaDiaria{
		DocID:            docID,
		Tipo:             model.CajaTipoApertura,
		Admin:            actx.Admin,
		Monto:            decimal.Zero,
		FechaOperacional: hoy,
		TZ:               tz,
		Source:           model.CajaSourceAuto,
		TenantID:         actx.TenantID,
		RutaID:           actx.RutaID,
		CreatedAtMs:      time.Now().UnixMilli(),
	}
	if err := s.repo.Create(ctx, registro); err != nil && !errors.Is(err, repository.ErrCajaDuplicada) {
		return nil, err
	}
	s.audit.Registrar(ctx, AuditEntry{
		UserID:   actx.UserID,
		Accion:   model.AccionCajaAperturaAuto,
		Ref:      docID,
		After:    registro,
		TenantID: actx.TenantID,
	})
	return estadoResponse(hoy, tz, registro), nil
}

// ── CerrarDiasPendientes ──────────────────────────────────────────────────────

func (s *cajaService) CerrarDiasPendientes(ctx context.Context, actx authctx.Ctx, admin, hoy, tz string, lookbackDias int) (*dto.ReconciliacionResponse, error) {
	if lookbackDias <= 0 {
		lookbackDias = s.cfg.CajaLookbackDias
	}

	resp := &dto.ReconciliacionResponse{
		Admin:        admin,
		Hoy:          hoy,
		LookbackDias: lookbackDias,
		Cierres:      []dto.CierreDiaResponse{},
		Omitidos:     []string{},
	}

	// Each day is independently idempotent: an interrupted sweep resumes on
	// the next run without a cross-day transaction.
	for i := 1; i <= lookbackDias; i++ {
		dia := fecha.DiaAnterior(hoy, i)

		cierre, err := s.cerrarDia(ctx, actx, admin, dia, tz)
		if err != nil {
			return nil, err
		}
		if cierre == nil {
			resp.Omitidos = append(resp.Omitidos, dia)
			continue
		}
		resp.Cierres = append(resp.Cierres, *cierre)
	}
	return resp, nil
}

// cerrarDia computes one day's closing. Returns nil when the day had neither
// apertura nor movements: absent days never transition straight to cerrada.
func (s *cajaService) cerrarDia(ctx context.Context, actx authctx.Ctx, admin, dia, tz string) (*dto.CierreDiaResponse, error) {
	apertura := decimal.Zero
	aperturaExiste := false
	if ap, err := s.repo.FindByDocID(ctx, model.CajaDocID(model.CajaTipoApertura, admin, dia)); err == nil {
		apertura = ap.Monto
		aperturaExiste = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	movs, err := s.movRepo.ListDia(ctx, actx, admin, dia)
	if err != nil {
		return nil, err
	}
	if !aperturaExiste && len(movs) == 0 {
		return nil, nil
	}

	entradas, salidas := decimal.Zero, decimal.Zero
	for _, m := range movs {
		monto := model.ParseMonto(m.Monto)
		if model.CanonizarTipo(m.Tipo).EsEntrada() {
			entradas = entradas.Add(monto)
		} else {
			salidas = salidas.Add(monto)
		}
	}
	entradas = RedondearMonto(entradas)
	salidas = RedondearMonto(salidas)
	saldo := RedondearMonto(apertura.Add(entradas).Sub(salidas))

	docID := model.CajaDocID(model.CajaTipoCierre, admin, dia)
	if existing, err := s.repo.FindByDocID(ctx, docID); err == nil {
		// Already reconciled — report the stored value, never alter it.
		return &dto.CierreDiaResponse{
			FechaOperacional: dia,
			Apertura:         apertura,
			Entradas:         entradas,
			Salidas:          salidas,
			Cierre:           existing.Monto,
			Creado:           false,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	registro := &model.CajaDiaria{
		DocID:            docID,
		Tipo:             model.CajaTipoCierre,
		Admin:            admin,
		Monto:            saldo,
		FechaOperacional: dia,
		TZ:               tz,
		Source:           model.CajaSourceAuto,
		TenantID:         actx.TenantID,
		RutaID:           actx.RutaID,
		CreatedAtMs:      time.Now().UnixMilli(),
	}
	if err := s.repo.Create(ctx, registro); err != nil {
		if errors.Is(err, repository.ErrCajaDuplicada) {
			// Concurrent sweep won the insert; same outcome.
			if existing, ferr := s.repo.FindByDocID(ctx, docID); ferr == nil {
				return &dto.CierreDiaResponse{
					FechaOperacional: dia,
					Apertura:         apertura,
					Entradas:         entradas,
					Salidas:          salidas,
					Cierre:           existing.Monto,
					Creado:           false,
				}, nil
			}
		}
		return nil, err
	}

	s.audit.Registrar(ctx, AuditEntry{
		UserID:   actx.UserID,
		Accion:   model.AccionCajaCierreAuto,
		Ref:      docID,
		After:    registro,
		TenantID: actx.TenantID,
	})

	return &dto.CierreDiaResponse{
		FechaOperacional: dia,
		Apertura:         apertura,
		Entradas:         entradas,
		Salidas:          salidas,
		Cierre:           saldo,
		Creado:           true,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// umbralCero: magnitudes below half a cent collapse to exactly zero before
// rounding, so float artifacts like -0.0049 never persist as -0.00.
var umbralCero = decimal.NewFromFloat(0.005)

// RedondearMonto normalizes a monetary amount to cents.
func RedondearMonto(d decimal.Decimal) decimal.Decimal {
	if d.Abs().LessThan(umbralCero) {
		return decimal.Zero
	}
	return d.Round(2)
}

func aperturaResponse(c *model.CajaDiaria, yaRegistrada bool) *dto.AbrirCajaResponse {
	return &dto.AbrirCajaResponse{
		DocID:            c.DocID,
		Admin:            c.Admin,
		Monto:            c.Monto,
		FechaOperacional: c.FechaOperacional,
		TZ:               c.TZ,
		YaRegistrada:     yaRegistrada,
	}
}

func estadoResponse(hoy, tz string, c *model.CajaDiaria) *dto.EstadoCajaResponse {
	monto := c.Monto
	source := c.Source
	return &dto.EstadoCajaResponse{
		FechaOperacional: hoy,
		TZ:               tz,
		AperturaExiste:   true,
		Monto:            &monto,
		Source:           &source,
	}
}
