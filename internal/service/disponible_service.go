package service

import (
	"context"

	"cobranza/internal/model"
	"cobranza/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DisponibleService keeps the denormalized client-availability index in step
// with loan lifecycle events. Events arrive at-least-once (Redis redelivery),
// so the ensure-index step is idempotent; counter adjustment and disponible
// recomputation happen inside one row-locked transaction in the repository.
type DisponibleService interface {
	OnPrestamoCreado(ctx context.Context, clienteID uuid.UUID, prestamoID string) error
	OnPrestamoEliminado(ctx context.Context, clienteID uuid.UUID, prestamoID string) error
	Consultar(ctx context.Context, clienteID uuid.UUID) (*model.ClienteDisponible, error)
}

type disponibleService struct {
	repo  repository.ClienteRepository
	audit AuditService
}

func NewDisponibleService(repo repository.ClienteRepository, audit AuditService) DisponibleService {
	return &disponibleService{repo: repo, audit: audit}
}

func (s *disponibleService) OnPrestamoCreado(ctx context.Context, clienteID uuid.UUID, prestamoID string) error {
	return s.ajustar(ctx, clienteID, prestamoID, +1)
}

func (s *disponibleService) OnPrestamoEliminado(ctx context.Context, clienteID uuid.UUID, prestamoID string) error {
	return s.ajustar(ctx, clienteID, prestamoID, -1)
}

func (s *disponibleService) Consultar(ctx context.Context, clienteID uuid.UUID) (*model.ClienteDisponible, error) {
	return s.repo.FindDisponible(ctx, clienteID)
}

func (s *disponibleService) ajustar(ctx context.Context, clienteID uuid.UUID, prestamoID string, delta int) error {
	antes, err := s.repo.FindDisponible(ctx, clienteID)
	if err != nil {
		antes = nil // first event for this client
	}

	despues, err := s.repo.AjustarDisponible(ctx, clienteID, delta)
	if err != nil {
		return err
	}

	log.Info().
		Str("cliente_id", clienteID.String()).
		Str("prestamo_id", prestamoID).
		Int("delta", delta).
		Int("count", despues.ActivePrestamosCount).
		Bool("disponible", despues.Disponible).
		Msg("disponible: index updated")

	s.audit.Registrar(ctx, AuditEntry{
		UserID:   "system",
		Accion:   model.AccionDisponibleActualizado,
		Ref:      clienteID.String(),
		Before:   antes,
		After:    despues,
		TenantID: despues.TenantID,
	})
	return nil
}
