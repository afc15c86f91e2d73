package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanonizarTipoAliases(t *testing.T) {
	cases := map[string]Tipo{
		"ingreso":        TipoIngreso,
		"Ingreso_Caja":   TipoIngreso,
		"APERTURA":       TipoIngreso,
		"retiro":         TipoRetiro,
		"retiro-caja":    TipoRetiro,
		"egreso":         TipoRetiro,
		"gastoAdmin":     TipoGastoAdmin,
		"gasto_admin":    TipoGastoAdmin,
		"gastos":         TipoGastoAdmin,
		"gasto_cobrador": TipoGastoCobrador,
		"gastoRuta":      TipoGastoCobrador,
		"pago":           TipoPago,
		"Abono":          TipoPago,
		"cobro":          TipoPago,
		"venta":          TipoVenta,
		"prestamo":       TipoVenta,
		"venta_prestamo": TipoVenta,
		"nuevoPrestamo":  TipoVenta,
		" pago ":         TipoPago, // surrounding whitespace
	}
	for raw, want := range cases {
		assert.Equal(t, want, CanonizarTipo(raw), raw)
	}
}

func TestCanonizarTipoEsTotal(t *testing.T) {
	// Unknown labels must land somewhere, never be dropped
	for _, raw := range []string{"", "???", "transferencia", "tipo_nuevo_del_cliente"} {
		assert.Equal(t, TipoGastoAdmin, CanonizarTipo(raw), raw)
	}
	// Canonical values are fixed points
	for _, tipo := range TiposCanonicos {
		assert.Equal(t, tipo, CanonizarTipo(string(tipo)))
	}
}

func TestEsEntrada(t *testing.T) {
	entradas := map[Tipo]bool{
		TipoIngreso:       true,
		TipoPago:          true,
		TipoVenta:         true,
		TipoRetiro:        false,
		TipoGastoAdmin:    false,
		TipoGastoCobrador: false,
	}
	for tipo, want := range entradas {
		assert.Equal(t, want, tipo.EsEntrada(), string(tipo))
	}
}

func TestParseMontoTolerante(t *testing.T) {
	assert.True(t, ParseMonto("10.00").Equal(decimal.NewFromInt(10)))
	assert.True(t, ParseMonto("5.505").Equal(decimal.RequireFromString("5.505")))
	// Malformed legacy values coerce to zero instead of aborting a report
	assert.True(t, ParseMonto("bad").IsZero())
	assert.True(t, ParseMonto("").IsZero())
	assert.True(t, ParseMonto("12,50").IsZero())
}

func TestClienteDisponibleAplicar(t *testing.T) {
	cd := ClienteDisponible{Disponible: true}

	cd.Aplicar(+1)
	assert.Equal(t, 1, cd.ActivePrestamosCount)
	assert.False(t, cd.Disponible)

	cd.Aplicar(-1)
	assert.Equal(t, 0, cd.ActivePrestamosCount)
	assert.True(t, cd.Disponible)

	// Redeliveries can over-decrement; the counter floors at zero
	cd.Aplicar(-1)
	assert.Equal(t, 0, cd.ActivePrestamosCount)
	assert.True(t, cd.Disponible)
}
