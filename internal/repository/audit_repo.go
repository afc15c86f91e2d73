package repository

import (
	"context"

	"cobranza/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Append(ctx context.Context, entry *model.AuditLog) error
	ListPorRef(ctx context.Context, ref string, limit int) ([]model.AuditLog, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) Append(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepo) ListPorRef(ctx context.Context, ref string, limit int) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).Where("ref = ?", ref).
		Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
