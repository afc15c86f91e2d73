package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	Monto decimal.Decimal `json:"monto" validate:"required"`
	// TZ overrides the configured default timezone for the operational date.
	TZ   string  `json:"tz"   validate:"omitempty,max=50"`
	Nota *string `json:"nota"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AbrirCajaResponse struct {
	DocID            string          `json:"doc_id"`
	Admin            string          `json:"admin"`
	Monto            decimal.Decimal `json:"monto"`
	FechaOperacional string          `json:"fecha_operacional"`
	TZ               string          `json:"tz"`
	// YaRegistrada: true when an apertura for this admin/day already existed;
	// the stored record is returned untouched.
	YaRegistrada bool `json:"ya_registrada"`
}

type EstadoCajaResponse struct {
	FechaOperacional string           `json:"fecha_operacional"`
	TZ               string           `json:"tz"`
	AperturaExiste   bool             `json:"apertura_existe"`
	Monto            *decimal.Decimal `json:"monto,omitempty"`
	Source           *string          `json:"source,omitempty"`
}

type CierreDiaResponse struct {
	FechaOperacional string          `json:"fecha_operacional"`
	Apertura         decimal.Decimal `json:"apertura"`
	Entradas         decimal.Decimal `json:"entradas"`
	Salidas          decimal.Decimal `json:"salidas"`
	Cierre           decimal.Decimal `json:"cierre"`
	// Creado: false when the cierre already existed and was left untouched.
	Creado bool `json:"creado"`
}

type ReconciliacionResponse struct {
	Admin        string              `json:"admin"`
	Hoy          string              `json:"hoy"`
	LookbackDias int                 `json:"lookback_dias"`
	Cierres      []CierreDiaResponse `json:"cierres"`
	// Omitidos lists window days skipped because they had neither apertura
	// nor movements.
	Omitidos []string `json:"omitidos"`
}
