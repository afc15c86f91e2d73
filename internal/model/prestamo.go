package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prestamo is an outstanding loan handed out on a route. Creating or deleting
// one emits an event that the availability-index worker consumes; the ledger
// side of a disbursement is a separate "venta" movement.
type Prestamo struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Admin     string          `gorm:"not null;index"`
	Monto     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Estado    string          `gorm:"type:varchar(20);not null;default:'activo'"`
	TenantID  *string         `gorm:"type:varchar(60);index"`
	RutaID    *string         `gorm:"type:varchar(60);index"`
	CreatedAt time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}
