package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is the master client record kept by the collection operation.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Telefono  *string   `gorm:"type:varchar(30)"`
	Direccion *string
	TenantID  *string `gorm:"type:varchar(60);index"`
	RutaID    *string `gorm:"type:varchar(60);index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClienteDisponible is the denormalized availability index: one row per
// client tracking how many loans are active and whether the client can take
// a new one.
//
// Invariant: Disponible == (ActivePrestamosCount <= 0). Both fields are only
// ever written together inside one transaction (see DisponibleService) —
// never independently.
type ClienteDisponible struct {
	ClienteID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Nombre is seeded from Cliente on first event so listings don't need a join.
	Nombre               string `gorm:"not null"`
	ActivePrestamosCount int    `gorm:"not null;default:0"`
	Disponible           bool   `gorm:"not null;default:true"`
	TenantID             *string `gorm:"type:varchar(60);index"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Aplicar adjusts the active-loan counter by delta (floored at 0) and
// recomputes Disponible from the new count. Every write path goes through
// this method so the two fields can never disagree.
func (cd *ClienteDisponible) Aplicar(delta int) {
	cd.ActivePrestamosCount += delta
	if cd.ActivePrestamosCount < 0 {
		cd.ActivePrestamosCount = 0
	}
	cd.Disponible = cd.ActivePrestamosCount <= 0
}

// TableName overrides GORM's default pluralization.
func (ClienteDisponible) TableName() string { return "clientes_disponibles" }
