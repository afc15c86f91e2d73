package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"cobranza/internal/authctx"
	"cobranza/internal/config"
	"cobranza/internal/dto"
	"cobranza/internal/fecha"
	"cobranza/internal/model"
	"cobranza/internal/repository"

	"github.com/shopspring/decimal"
)

type MovimientoService interface {
	// Registrar persists a new movement stamped with its operational date.
	Registrar(ctx context.Context, actx authctx.Ctx, req dto.RegistrarMovimientoRequest) (*dto.MovimientoCreadoResponse, error)
	// ReportePorTipo aggregates one admin/day/canonical-type slice into
	// display items plus a total. Every call is a fresh read snapshot.
	ReportePorTipo(ctx context.Context, actx authctx.Ctx, admin, fechaOp string, tipo model.Tipo) (*dto.ReporteMovimientosResponse, error)
	// ResumenDia totals every canonical type for one admin/day.
	ResumenDia(ctx context.Context, actx authctx.Ctx, admin, fechaOp string) (*dto.ResumenDiaResponse, error)
}

type movimientoService struct {
	repo  repository.MovimientoRepository
	audit AuditService
	cfg   *config.Config
}

func NewMovimientoService(repo repository.MovimientoRepository, audit AuditService, cfg *config.Config) MovimientoService {
	return &movimientoService{repo: repo, audit: audit, cfg: cfg}
}

// ── Registrar ─────────────────────────────────────────────────────────────────

func (s *movimientoService) Registrar(ctx context.Context, actx authctx.Ctx, req dto.RegistrarMovimientoRequest) (*dto.MovimientoCreadoResponse, error) {
	monto := RedondearMonto(req.Monto)
	if monto.IsNegative() {
		return nil, ErrMontoInvalido
	}

	tz := fecha.Resolver(req.TZ, s.cfg.TimezoneDefecto)
	instante := time.Now()
	createdMs := req.CreatedAtMs
	if createdMs > 0 {
		// Operational date is derived from the event's real-world instant,
		// not from whenever the row reached the server.
		instante = time.UnixMilli(createdMs)
	} else {
		createdMs = instante.UnixMilli()
	}
	fechaOp := fecha.Normalizar(instante, tz)

	canonico := model.CanonizarTipo(req.Tipo)
	mov := &model.Movimiento{
		Admin:            actx.Admin,
		Tipo:             string(canonico),
		Monto:            monto.StringFixed(2),
		FechaOperacional: fechaOp,
		TZ:               tz,
		Nota:             req.Nota,
		Categoria:        req.Categoria,
		TenantID:         actx.TenantID,
		RutaID:           actx.RutaID,
		CreatedAtMs:      createdMs,
	}
	if err := s.repo.Create(ctx, mov); err != nil {
		return nil, err
	}

	accion := model.AccionMovimientoRegistrado
	if canonico == model.TipoGastoAdmin {
		accion = model.AccionCajaGastoAdmin
	}
	s.audit.Registrar(ctx, AuditEntry{
		UserID:   actx.UserID,
		Accion:   accion,
		Ref:      mov.ID.String(),
		After:    mov,
		TenantID: actx.TenantID,
	})

	return &dto.MovimientoCreadoResponse{
		ID:               mov.ID.String(),
		Tipo:             string(canonico),
		Monto:            monto,
		FechaOperacional: fechaOp,
		TZ:               tz,
	}, nil
}

// ── ReportePorTipo ────────────────────────────────────────────────────────────

func (s *movimientoService) ReportePorTipo(ctx context.Context, actx authctx.Ctx, admin, fechaOp string, tipo model.Tipo) (*dto.ReporteMovimientosResponse, error) {
	movs, err := s.repo.ListPorDia(ctx, actx, admin, fechaOp, tipo)
	if err != nil {
		return nil, err
	}

	// The store returns rows unordered; sort stably so equal timestamps keep
	// a deterministic relative order across reloads.
	sort.SliceStable(movs, func(i, j int) bool {
		if movs[i].CreatedAtMs != movs[j].CreatedAtMs {
			return movs[i].CreatedAtMs < movs[j].CreatedAtMs
		}
		return movs[i].ID.String() < movs[j].ID.String()
	})

	items := make([]dto.MovimientoItem, 0, len(movs))
	total := decimal.Zero
	for _, m := range movs {
		monto := model.ParseMonto(m.Monto)
		total = total.Add(monto)
		items = append(items, dto.MovimientoItem{
			ID:        m.ID.String(),
			Titulo:    tituloMovimiento(m),
			Hora:      horaMovimiento(m, s.cfg.TimezoneDefecto),
			Monto:     monto,
			Nota:      m.Nota,
			Categoria: m.Categoria,
		})
	}

	return &dto.ReporteMovimientosResponse{
		Admin:            admin,
		FechaOperacional: fechaOp,
		Tipo:             string(tipo),
		Items:            items,
		Total:            RedondearMonto(total),
	}, nil
}

// ── ResumenDia ────────────────────────────────────────────────────────────────

func (s *movimientoService) ResumenDia(ctx context.Context, actx authctx.Ctx, admin, fechaOp string) (*dto.ResumenDiaResponse, error) {
	movs, err := s.repo.ListDia(ctx, actx, admin, fechaOp)
	if err != nil {
		return nil, err
	}

	totales := make(map[string]decimal.Decimal, len(model.TiposCanonicos))
	for _, t := range model.TiposCanonicos {
		totales[string(t)] = decimal.Zero
	}
	entradas, salidas := decimal.Zero, decimal.Zero
	for _, m := range movs {
		t := model.CanonizarTipo(m.Tipo)
		monto := model.ParseMonto(m.Monto)
		totales[string(t)] = totales[string(t)].Add(monto)
		if t.EsEntrada() {
			entradas = entradas.Add(monto)
		} else {
			salidas = salidas.Add(monto)
		}
	}
	for k, v := range totales {
		totales[k] = RedondearMonto(v)
	}

	return &dto.ResumenDiaResponse{
		Admin:            admin,
		FechaOperacional: fechaOp,
		Totales:          totales,
		Entradas:         RedondearMonto(entradas),
		Salidas:          RedondearMonto(salidas),
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

var titulosPorTipo = map[model.Tipo]string{
	model.TipoIngreso:       "Ingreso a caja",
	model.TipoRetiro:        "Retiro de caja",
	model.TipoGastoAdmin:    "Gasto administrativo",
	model.TipoGastoCobrador: "Gasto de cobrador",
	model.TipoPago:          "Pago recibido",
	model.TipoVenta:         "Préstamo entregado",
}

func tituloMovimiento(m model.Movimiento) string {
	titulo := titulosPorTipo[model.CanonizarTipo(m.Tipo)]
	if m.Categoria != nil && strings.TrimSpace(*m.Categoria) != "" {
		return titulo + " · " + strings.TrimSpace(*m.Categoria)
	}
	return titulo
}

// horaMovimiento formats the capture time in the record's own timezone,
// falling back to the configured default.
func horaMovimiento(m model.Movimiento, tzDefecto string) string {
	instante := m.CreatedAt
	if m.CreatedAtMs > 0 {
		instante = time.UnixMilli(m.CreatedAtMs)
	}
	return fecha.HoraEn(instante, fecha.Resolver(m.TZ, tzDefecto))
}
