package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Caja record types and sources.
const (
	CajaTipoApertura = "apertura"
	CajaTipoCierre   = "cierre"

	CajaSourceManual = "manual"
	CajaSourceAuto   = "auto"
)

// CajaDiaria is the daily cash-register record: one apertura and at most one
// derived cierre per admin per operational day.
//
// DocID is the deterministic composite key {tipo}_{admin}_{fecha}. The
// primary key doubles as the idempotency guarantee: re-running an apertura or
// a cierre sweep for the same admin/day can never create a duplicate row.
type CajaDiaria struct {
	DocID            string          `gorm:"type:varchar(160);primaryKey"`
	Tipo             string          `gorm:"type:varchar(10);not null"`
	Admin            string          `gorm:"not null;index"`
	Monto            decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	FechaOperacional string          `gorm:"type:varchar(10);not null;index"`
	TZ               string          `gorm:"type:varchar(50);not null"`
	Nota             *string
	// Source: "manual" (explicit user action) | "auto" (reconciliation sweep
	// or policy-driven seeding)
	Source    string  `gorm:"type:varchar(10);not null;default:'manual'"`
	TenantID  *string `gorm:"type:varchar(60);index"`
	RutaID    *string `gorm:"type:varchar(60)"`
	CreatedAt time.Time
	// CreatedAtMs mirrors the client capture instant, epoch milliseconds.
	CreatedAtMs int64 `gorm:"not null;default:0"`
}

// CajaDocID builds the deterministic document key for an apertura or cierre.
func CajaDocID(tipo, admin, fechaOperacional string) string {
	return fmt.Sprintf("%s_%s_%s", tipo, admin, fechaOperacional)
}

// TableName keeps the Spanish table naming used across the schema.
func (CajaDiaria) TableName() string { return "caja_diaria" }
