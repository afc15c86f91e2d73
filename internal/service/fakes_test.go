package service_test

import (
	"context"
	"sync"

	"cobranza/internal/authctx"
	"cobranza/internal/model"
	"cobranza/internal/repository"
	"cobranza/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory CajaRepository ─────────────────────────────────────────────────

type fakeCajaRepo struct {
	mu   sync.Mutex
	docs map[string]*model.CajaDiaria
}

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{docs: make(map[string]*model.CajaDiaria)}
}

func (r *fakeCajaRepo) Create(_ context.Context, c *model.CajaDiaria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[c.DocID]; ok {
		return repository.ErrCajaDuplicada
	}
	copia := *c
	r.docs[c.DocID] = &copia
	return nil
}

func (r *fakeCajaRepo) FindByDocID(_ context.Context, docID string) (*model.CajaDiaria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.docs[docID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

// ── In-memory MovimientoRepository ───────────────────────────────────────────

type fakeMovRepo struct {
	mu   sync.Mutex
	movs []model.Movimiento
}

func (r *fakeMovRepo) Create(_ context.Context, m *model.Movimiento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movs = append(r.movs, *m)
	return nil
}

func (r *fakeMovRepo) ListDia(_ context.Context, _ authctx.Ctx, admin, fecha string) ([]model.Movimiento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Movimiento
	for _, m := range r.movs {
		if m.Admin == admin && m.FechaOperacional == fecha {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovRepo) ListPorDia(ctx context.Context, actx authctx.Ctx, admin, fecha string, tipo model.Tipo) ([]model.Movimiento, error) {
	dia, err := r.ListDia(ctx, actx, admin, fecha)
	if err != nil {
		return nil, err
	}
	out := make([]model.Movimiento, 0, len(dia))
	for _, m := range dia {
		if model.CanonizarTipo(m.Tipo) == tipo {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.MovimientoRepository = (*fakeMovRepo)(nil)

// ── In-memory ClienteRepository ──────────────────────────────────────────────

type fakeClienteRepo struct {
	mu          sync.Mutex
	clientes    map[uuid.UUID]*model.Cliente
	disponibles map[uuid.UUID]*model.ClienteDisponible
}

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{
		clientes:    make(map[uuid.UUID]*model.Cliente),
		disponibles: make(map[uuid.UUID]*model.ClienteDisponible),
	}
}

func (r *fakeClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

func (r *fakeClienteRepo) FindDisponible(_ context.Context, clienteID uuid.UUID) (*model.ClienteDisponible, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cd, ok := r.disponibles[clienteID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *cd
	return &copia, nil
}

func (r *fakeClienteRepo) AjustarDisponible(_ context.Context, clienteID uuid.UUID, delta int) (*model.ClienteDisponible, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cd, ok := r.disponibles[clienteID]
	if !ok {
		cd = &model.ClienteDisponible{ClienteID: clienteID, Disponible: true}
		if cli, ok := r.clientes[clienteID]; ok {
			cd.Nombre = cli.Nombre
			cd.TenantID = cli.TenantID
		}
		r.disponibles[clienteID] = cd
	}
	cd.Aplicar(delta)
	copia := *cd
	return &copia, nil
}

var _ repository.ClienteRepository = (*fakeClienteRepo)(nil)

// ── Recording AuditService ───────────────────────────────────────────────────

type fakeAudit struct {
	mu      sync.Mutex
	entries []service.AuditEntry
}

func (a *fakeAudit) Registrar(_ context.Context, entry service.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *fakeAudit) acciones() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Accion)
	}
	return out
}

var _ service.AuditService = (*fakeAudit)(nil)
