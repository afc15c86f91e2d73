package fecha

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolver(t *testing.T) {
	assert.Equal(t, "America/Sao_Paulo", Resolver("America/Sao_Paulo", "UTC"))
	assert.Equal(t, "America/Bogota", Resolver("", "America/Bogota"))
	// Unloadable explicit zone falls through to the fallback
	assert.Equal(t, "America/Bogota", Resolver("Marte/Olympus", "America/Bogota"))
	assert.Equal(t, "UTC", Resolver("Marte/Olympus", "Tatooine/MosEisley"))
	assert.Equal(t, "UTC", Resolver("", ""))
}

func TestNormalizarCruceDeDia(t *testing.T) {
	// 01:30 UTC of March 2nd is still March 1st in São Paulo (UTC-3)
	instante := time.Date(2024, 3, 2, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01", Normalizar(instante, "America/Sao_Paulo"))
	assert.Equal(t, "2024-03-02", Normalizar(instante, "UTC"))
	// Unloadable zone degrades to UTC instead of failing
	assert.Equal(t, "2024-03-02", Normalizar(instante, "Marte/Olympus"))
}

func TestNormalizarFechaSolaEstable(t *testing.T) {
	// A date-only input must come back unchanged in any zone up to ±12h
	for _, tz := range []string{"UTC", "America/Sao_Paulo", "America/Bogota", "Asia/Tokyo", "Pacific/Auckland"} {
		assert.Equal(t, "2024-03-01", NormalizarFechaSola("2024-03-01", tz), tz)
	}
	// Unparseable input passes through untouched
	assert.Equal(t, "no-es-fecha", NormalizarFechaSola("no-es-fecha", "UTC"))
}

func TestHoraEn(t *testing.T) {
	instante := time.Date(2024, 3, 2, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "22:30", HoraEn(instante, "America/Sao_Paulo"))
	assert.Equal(t, "01:30", HoraEn(instante, "UTC"))
}

func TestDiaAnterior(t *testing.T) {
	assert.Equal(t, "2024-02-29", DiaAnterior("2024-03-01", 1)) // leap year
	assert.Equal(t, "2024-02-23", DiaAnterior("2024-03-01", 7))
	assert.Equal(t, "2023-12-31", DiaAnterior("2024-01-01", 1))
	// Garbage input comes back unchanged
	assert.Equal(t, "xx", DiaAnterior("xx", 1))
}

func TestHoyEnConsistente(t *testing.T) {
	hoy := HoyEn("UTC")
	parsed, err := time.Parse(FormatoFecha, hoy)
	assert.NoError(t, err)
	assert.False(t, parsed.IsZero())
}
