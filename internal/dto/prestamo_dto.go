package dto

import "github.com/shopspring/decimal"

type CrearPrestamoRequest struct {
	ClienteID string          `json:"cliente_id" validate:"required,uuid"`
	Monto     decimal.Decimal `json:"monto"      validate:"required"`
	// TZ overrides the configured default timezone for the venta stamp.
	TZ string `json:"tz" validate:"omitempty,max=50"`
}

type PrestamoResponse struct {
	ID        string          `json:"id"`
	ClienteID string          `json:"cliente_id"`
	Admin     string          `json:"admin"`
	Monto     decimal.Decimal `json:"monto"`
	Estado    string          `json:"estado"`
}

type ClienteDisponibleResponse struct {
	ClienteID            string `json:"cliente_id"`
	Nombre               string `json:"nombre"`
	ActivePrestamosCount int    `json:"active_prestamos_count"`
	Disponible           bool   `json:"disponible"`
}
