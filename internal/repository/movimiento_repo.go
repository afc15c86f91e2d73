package repository

import (
	"context"

	"cobranza/internal/authctx"
	"cobranza/internal/model"

	"gorm.io/gorm"
)

type MovimientoRepository interface {
	Create(ctx context.Context, m *model.Movimiento) error
	// ListPorDia returns every movement for one admin/operational date whose
	// raw tipo canonicalizes to tipo, scoped by the session's tenant/route.
	// The store gives no ordering guarantee; callers sort.
	ListPorDia(ctx context.Context, actx authctx.Ctx, admin, fecha string, tipo model.Tipo) ([]model.Movimiento, error)
	// ListDia returns the whole day regardless of tipo (cierre computation).
	ListDia(ctx context.Context, actx authctx.Ctx, admin, fecha string) ([]model.Movimiento, error)
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository { return &movimientoRepo{db: db} }

func (r *movimientoRepo) Create(ctx context.Context, m *model.Movimiento) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimientoRepo) ListPorDia(ctx context.Context, actx authctx.Ctx, admin, fecha string, tipo model.Tipo) ([]model.Movimiento, error) {
	// The tipo column holds raw legacy labels, so the canonical filter cannot
	// be pushed into SQL; fetch the day and filter through the canonicalizer.
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

func (r *movimientoRepo) ListDia(ctx context.Context, actx authctx.Ctx, admin, fecha string) ([]model.Movimiento, error) {
	var movs []model.Movimiento
	q := r.db.WithContext(ctx).
		Where("admin = ?", admin).
		Where("fecha_operacional = ?", fecha)
	err := authctx.Scope(q, actx).Find(&movs).Error
	return movs, err
}
