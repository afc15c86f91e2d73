package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarMovimientoRequest struct {
	Tipo      string          `json:"tipo"      validate:"required,min=3,max=30"`
	Monto     decimal.Decimal `json:"monto"     validate:"required"`
	Nota      *string         `json:"nota"      validate:"omitempty,max=500"`
	Categoria *string         `json:"categoria" validate:"omitempty,max=50"`
	// TZ overrides the configured default timezone for the operational date.
	TZ string `json:"tz" validate:"omitempty,max=50"`
	// CreatedAtMs is the client-side capture instant (epoch ms); 0 = server now.
	CreatedAtMs int64 `json:"created_at_ms" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// MovimientoItem is one display-ready row of a daily report.
type MovimientoItem struct {
	ID     string `json:"id"`
	Titulo string `json:"titulo"`
	// Hora is the time of day formatted in the record's own timezone.
	Hora      string          `json:"hora"`
	Monto     decimal.Decimal `json:"monto"`
	Nota      *string         `json:"nota,omitempty"`
	Categoria *string         `json:"categoria,omitempty"`
}

type ReporteMovimientosResponse struct {
	Admin            string           `json:"admin"`
	FechaOperacional string           `json:"fecha_operacional"`
	Tipo             string           `json:"tipo"`
	Items            []MovimientoItem `json:"items"`
	Total            decimal.Decimal  `json:"total"`
}

// ResumenDiaResponse aggregates every canonical type for one day.
type ResumenDiaResponse struct {
	Admin            string                     `json:"admin"`
	FechaOperacional string                     `json:"fecha_operacional"`
	Totales          map[string]decimal.Decimal `json:"totales"`
	Entradas         decimal.Decimal            `json:"entradas"`
	Salidas          decimal.Decimal            `json:"salidas"`
}

type MovimientoCreadoResponse struct {
	ID               string          `json:"id"`
	Tipo             string          `json:"tipo"`
	Monto            decimal.Decimal `json:"monto"`
	FechaOperacional string          `json:"fecha_operacional"`
	TZ               string          `json:"tz"`
}
