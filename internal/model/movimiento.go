package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movimiento is an immutable financial event attributed to one admin on one
// operational date. Movements are NEVER modified or deleted — corrections
// create inverse entries.
//
// Monto is stored as text: rows sync from mobile clients and historical
// imports, and older clients occasionally shipped malformed values. Parsing
// is deferred to aggregation time (ParseMonto) so one bad row cannot poison
// a whole day's report. Server-side writes always persist a clean rendering
// rounded to cents.
type Movimiento struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Admin string    `gorm:"not null;index:idx_movimientos_dia,priority:1"`
	// Tipo holds the raw label as received; read through CanonizarTipo.
	Tipo             string `gorm:"type:varchar(30);not null;index:idx_movimientos_dia,priority:3"`
	Monto            string `gorm:"type:varchar(32);not null"`
	FechaOperacional string `gorm:"type:varchar(10);not null;index:idx_movimientos_dia,priority:2"`
	TZ               string `gorm:"type:varchar(50);not null"`
	Nota             *string
	Categoria        *string `gorm:"type:varchar(50)"`
	TenantID         *string `gorm:"type:varchar(60);index"`
	RutaID           *string `gorm:"type:varchar(60);index"`
	CreatedAt        time.Time
	// CreatedAtMs is the client-side capture instant in epoch milliseconds,
	// kept as a fallback ordering key when server clocks and device clocks
	// disagree.
	CreatedAtMs int64 `gorm:"not null;default:0"`
}

// ParseMonto coerces a stored monto into a decimal. Malformed or non-finite
// values count as zero — a data-quality problem must not abort aggregation.
func ParseMonto(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// TableName overrides GORM's default pluralization.
func (Movimiento) TableName() string { return "movimientos" }
