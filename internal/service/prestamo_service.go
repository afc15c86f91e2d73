package service

import (
	"context"
	"errors"

	"cobranza/internal/authctx"
	"cobranza/internal/dto"
	"cobranza/internal/model"
	"cobranza/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PrestamoEventos is the async boundary for loan lifecycle events. The Redis
// dispatcher implements it; the availability worker consumes the far end.
type PrestamoEventos interface {
	EnqueuePrestamoCreado(ctx context.Context, clienteID, prestamoID string) error
	EnqueuePrestamoEliminado(ctx context.Context, clienteID, prestamoID string) error
}

type PrestamoService interface {
	Crear(ctx context.Context, actx authctx.Ctx, req dto.CrearPrestamoRequest) (*dto.PrestamoResponse, error)
	Eliminar(ctx context.Context, actx authctx.Ctx, id uuid.UUID) error
}

type prestamoService struct {
	repo        repository.PrestamoRepository
	clienteRepo repository.ClienteRepository
	movimientos MovimientoService
	eventos     PrestamoEventos
}

func NewPrestamoService(repo repository.PrestamoRepository, clienteRepo repository.ClienteRepository, movimientos MovimientoService, eventos PrestamoEventos) PrestamoService {
	return &prestamoService{repo: repo, clienteRepo: clienteRepo, movimientos: movimientos, eventos: eventos}
}

func (s *prestamoService) Crear(ctx context.Context, actx authctx.Ctx, req dto.CrearPrestamoRequest) (*dto.PrestamoResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, errors.New("cliente_id inválido")
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, errors.New("cliente no encontrado")
	}

	monto := RedondearMonto(req.Monto)
	if !monto.IsPositive() {
		return nil, ErrMontoInvalido
	}

	prestamo := &model.Prestamo{
		ClienteID: clienteID,
		Admin:     actx.Admin,
		Monto:     monto,
		Estado:    "activo",
		TenantID:  actx.TenantID,
		RutaID:    actx.RutaID,
	}
	if err := s.repo.Create(ctx, prestamo); err != nil {
		return nil, err
	}

	// The disbursement is a venta movement on the day's ledger.
	nota := "Préstamo " + prestamo.ID.String()
	if _, err := s.movimientos.Registrar(ctx, actx, dto.RegistrarMovimientoRequest{
		Tipo:  string(model.TipoVenta),
		Monto: monto,
		Nota:  &nota,
		TZ:    req.TZ,
	}); err != nil {
		return nil, err
	}

	// Fire-and-forget: the index catches up via at-least-once redelivery.
	if err := s.eventos.EnqueuePrestamoCreado(ctx, clienteID.String(), prestamo.ID.String()); err != nil {
		log.Error().Err(err).Str("prestamo_id", prestamo.ID.String()).Msg("prestamo: enqueue created event failed")
	}

	return &dto.PrestamoResponse{
		ID:        prestamo.ID.String(),
		ClienteID: clienteID.String(),
		Admin:     prestamo.Admin,
		Monto:     prestamo.Monto,
		Estado:    prestamo.Estado,
	}, nil
}

func (s *prestamoService) Eliminar(ctx context.Context, actx authctx.Ctx, id uuid.UUID) error {
	prestamo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("préstamo no encontrado")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.eventos.EnqueuePrestamoEliminado(ctx, prestamo.ClienteID.String(), id.String()); err != nil {
		log.Error().Err(err).Str("prestamo_id", id.String()).Msg("prestamo: enqueue deleted event failed")
	}
	return nil
}
