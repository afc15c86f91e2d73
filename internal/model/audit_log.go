package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit action names written by the services in this repo.
const (
	AccionCajaAperturaManual    = "caja_apertura_manual"
	AccionCajaAperturaAuto      = "caja_apertura_auto"
	AccionCajaCierreAuto        = "caja_cierre_auto"
	AccionCajaGastoAdmin        = "caja_gasto_admin"
	AccionMovimientoRegistrado  = "movimiento_registrado"
	AccionDisponibleActualizado = "cliente_disponible_actualizado"
)

// AuditLog is an append-only record of every state-changing action, with
// before/after JSON snapshots. Rows are never updated or deleted by the
// application.
type AuditLog struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID string    `gorm:"not null;index"`
	Accion string    `gorm:"type:varchar(60);not null;index"`
	// Ref identifies the affected document (e.g. a caja DocID or movimiento id).
	Ref       string  `gorm:"not null"`
	Before    string  `gorm:"type:jsonb;not null;default:'null'"`
	After     string  `gorm:"type:jsonb;not null;default:'null'"`
	TenantID  *string `gorm:"type:varchar(60);index"`
	CreatedAt time.Time
}

// TableName overrides GORM's default pluralization.
func (AuditLog) TableName() string { return "audit_logs" }
