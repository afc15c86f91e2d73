package service

import (
	"context"
	"encoding/json"

	"cobranza/internal/model"
	"cobranza/internal/repository"

	"github.com/rs/zerolog/log"
)

// AuditEntry describes one state-changing action. Before/After may be any
// JSON-marshalable snapshot; nil serializes as JSON null.
type AuditEntry struct {
	UserID   string
	Accion   string
	Ref      string
	Before   any
	After    any
	TenantID *string
}

type AuditService interface {
	// Registrar appends an immutable audit record. Fire-and-forget: a failed
	// audit write is logged but never fails the business operation.
	Registrar(ctx context.Context, entry AuditEntry)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Registrar(ctx context.Context, entry AuditEntry) {
	row := &model.AuditLog{
		UserID:   entry.UserID,
		Accion:   entry.Accion,
		Ref:      entry.Ref,
		Before:   marshalSnapshot(entry.Before),
		After:    marshalSnapshot(entry.After),
		TenantID: entry.TenantID,
	}
	if err := s.repo.Append(ctx, row); err != nil {
		log.Error().Err(err).
			Str("accion", entry.Accion).
			Str("ref", entry.Ref).
			Msg("audit: append failed")
	}
}

// jsonb columns reject the empty string — absent snapshots are JSON null.
func marshalSnapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
