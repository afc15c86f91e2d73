package model

import "strings"

// Tipo is the canonical movement-type identifier. Historical records synced
// from the mobile clients carry free-form labels (snake case, camel case,
// abbreviations); everything internal works on this fixed set.
type Tipo string

const (
	TipoIngreso       Tipo = "ingreso"
	TipoRetiro        Tipo = "retiro"
	TipoGastoAdmin    Tipo = "gastoAdmin"
	TipoGastoCobrador Tipo = "gastoCobrador"
	TipoPago          Tipo = "pago"
	TipoVenta         Tipo = "venta"
)

// TiposCanonicos lists every canonical type, in report order.
var TiposCanonicos = []Tipo{
	TipoIngreso, TipoRetiro, TipoGastoAdmin, TipoGastoCobrador, TipoPago, TipoVenta,
}

// legacy labels observed in synced data, lowercased and stripped of "_"/"-"
var tipoAliases = map[string]Tipo{
	"ingreso":        TipoIngreso,
	"ingresocaja":    TipoIngreso,
	"apertura":       TipoIngreso,
	"retiro":         TipoRetiro,
	"retirocaja":     TipoRetiro,
	"egreso":         TipoRetiro,
	"gastoadmin":     TipoGastoAdmin,
	"gasto":          TipoGastoAdmin,
	"gastos":         TipoGastoAdmin,
	"gastocobrador":  TipoGastoCobrador,
	"gastoruta":      TipoGastoCobrador,
	"pago":           TipoPago,
	"abono":          TipoPago,
	"cobro":          TipoPago,
	"venta":          TipoVenta,
	"prestamo":       TipoVenta,
	"ventaprestamo":  TipoVenta,
	"nuevoprestamo":  TipoVenta,
}

// CanonizarTipo maps any raw/legacy type label to exactly one canonical Tipo.
// Total: unrecognized labels land in the gastoAdmin bucket so that no
// historical record ever vanishes from the daily ledger.
func CanonizarTipo(raw string) Tipo {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, " ", "")
	if t, ok := tipoAliases[key]; ok {
		return t
	}
	return TipoGastoAdmin
}

// EsEntrada reports whether the type adds cash to the day's caja.
// Entradas: ingreso, pago, venta. Salidas: retiro, gastoAdmin, gastoCobrador.
func (t Tipo) EsEntrada() bool {
	switch t {
	case TipoIngreso, TipoPago, TipoVenta:
		return true
	default:
		return false
	}
}
