package repository

import (
	"context"
	"errors"

	"cobranza/internal/model"

	"gorm.io/gorm"
)

// ErrCajaDuplicada signals that a record with the same deterministic DocID
// already exists. The primary key on caja_diaria.doc_id is the real unique
// constraint behind the {tipo}_{admin}_{fecha} key convention.
var ErrCajaDuplicada = errors.New("registro de caja duplicado")

type CajaRepository interface {
	// Create inserts a caja record; a DocID collision maps to ErrCajaDuplicada.
	Create(ctx context.Context, c *model.CajaDiaria) error
	FindByDocID(ctx context.Context, docID string) (*model.CajaDiaria, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) Create(ctx context.Context, c *model.CajaDiaria) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrCajaDuplicada
	}
	return err
}

func (r *cajaRepo) FindByDocID(ctx context.Context, docID string) (*model.CajaDiaria, error) {
	var c model.CajaDiaria
	err := r.db.WithContext(ctx).First(&c, "doc_id = ?", docID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
