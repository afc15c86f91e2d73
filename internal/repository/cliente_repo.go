package repository

import (
	"context"
	"errors"

	"cobranza/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClienteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindDisponible(ctx context.Context, clienteID uuid.UUID) (*model.ClienteDisponible, error)
	// AjustarDisponible applies delta to the client's active-loan counter and
	// recomputes the disponible flag, all inside ONE transaction with the
	// index row locked. Concurrent events for the same client serialize on
	// the row lock. The row is created lazily on first event.
	AjustarDisponible(ctx context.Context, clienteID uuid.UUID, delta int) (*model.ClienteDisponible, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindDisponible(ctx context.Context, clienteID uuid.UUID) (*model.ClienteDisponible, error) {
	var cd model.ClienteDisponible
	if err := r.db.WithContext(ctx).First(&cd, "cliente_id = ?", clienteID).Error; err != nil {
		return nil, err
	}
	return &cd, nil
}

func (r *clienteRepo) AjustarDisponible(ctx context.Context, clienteID uuid.UUID, delta int) (*model.ClienteDisponible, error) {
	var cd model.ClienteDisponible
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&cd, "cliente_id = ?", clienteID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lazy ensure-index: seed denormalized fields from the cliente.
			// Events are at-least-once, so a concurrent insert is possible;
			// the PK collision retries as a locked read on the second pass.
			cd = model.ClienteDisponible{ClienteID: clienteID, Disponible: true}
			var cli model.Cliente
			if err := tx.First(&cli, "id = ?", clienteID).Error; err == nil {
				cd.Nombre = cli.Nombre
				cd.TenantID = cli.TenantID
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cd).Error; err != nil {
				return err
			}
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&cd, "cliente_id = ?", clienteID).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		cd.Aplicar(delta)
		return tx.Model(&model.ClienteDisponible{ClienteID: clienteID}).
			Updates(map[string]interface{}{
				"active_prestamos_count": cd.ActivePrestamosCount,
				"disponible":             cd.Disponible,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &cd, nil
}
