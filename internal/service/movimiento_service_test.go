package service_test

import (
	"context"
	"testing"

	"cobranza/internal/dto"
	"cobranza/internal/fecha"
	"cobranza/internal/model"
	"cobranza/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrarMovimiento(t *testing.T) {
	repo := &fakeMovRepo{}
	audit := &fakeAudit{}
	svc := service.NewMovimientoService(repo, audit, testConfig())

	nota := "cuota semanal"
	resp, err := svc.Registrar(context.Background(), testCtx(), dto.RegistrarMovimientoRequest{
		Tipo:  "abono", // legacy label
		Monto: decimal.RequireFromString("150.00"),
		Nota:  &nota,
	})
	require.NoError(t, err)
	assert.Equal(t, "pago", resp.Tipo)
	assert.Equal(t, fecha.HoyEn("America/Sao_Paulo"), resp.FechaOperacional)
	assert.Equal(t, "America/Sao_Paulo", resp.TZ)

	require.Len(t, repo.movs, 1)
	assert.Equal(t, "pago", repo.movs[0].Tipo) // stored canonical
	assert.Equal(t, "150.00", repo.movs[0].Monto)
	assert.Equal(t, []string{model.AccionMovimientoRegistrado}, audit.acciones())
}

func TestRegistrarMovimientoFechaDelInstante(t *testing.T) {
	repo := &fakeMovRepo{}
	svc := service.NewMovimientoService(repo, &fakeAudit{}, testConfig())

	// 2024-03-02 01:30 UTC is still 2024-03-01 in São Paulo
	instanteMs := int64(1709343000000)
	resp, err := svc.Registrar(context.Background(), testCtx(), dto.RegistrarMovimientoRequest{
		Tipo:        "pago",
		Monto:       decimal.RequireFromString("20.00"),
		CreatedAtMs: instanteMs,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", resp.FechaOperacional)
	assert.Equal(t, instanteMs, repo.movs[0].CreatedAtMs)
}

func TestRegistrarMovimientoNegativo(t *testing.T) {
	svc := service.NewMovimientoService(&fakeMovRepo{}, &fakeAudit{}, testConfig())

	_, err := svc.Registrar(context.Background(), testCtx(), dto.RegistrarMovimientoRequest{
		Tipo:  "pago",
		Monto: decimal.RequireFromString("-10"),
	})
	assert.ErrorIs(t, err, service.ErrMontoInvalido)
}

func TestRegistrarGastoAdminAudita(t *testing.T) {
	audit := &fakeAudit{}
	svc := service.NewMovimientoService(&fakeMovRepo{}, audit, testConfig())

	_, err := svc.Registrar(context.Background(), testCtx(), dto.RegistrarMovimientoRequest{
		Tipo:  "gasto",
		Monto: decimal.RequireFromString("30.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{model.AccionCajaGastoAdmin}, audit.acciones())
}

func TestReportePorTipo(t *testing.T) {
	repo := &fakeMovRepo{}
	svc := service.NewMovimientoService(repo, &fakeAudit{}, testConfig())
	dia := "2024-03-01"

	// Inserted out of order, one with a malformed legacy monto
	seed := func(tipo, monto string, ms int64) {
		require.NoError(t, repo.Create(context.Background(), &model.Movimiento{
			Admin: "A1", Tipo: tipo, Monto: monto,
			FechaOperacional: dia, TZ: "America/Sao_Paulo", CreatedAtMs: ms,
		}))
	}
	seed("pago", "5.505", 300)
	seed("abono", "10.00", 100)
	seed("cobro", "bad", 200)
	seed("retiro", "999.00", 150) // other type, excluded

	resp, err := svc.ReportePorTipo(context.Background(), testCtx(), "A1", dia, model.TipoPago)
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)

	// Sorted by capture instant
	assert.Equal(t, "10", resp.Items[0].Monto.String())
	assert.Equal(t, "0", resp.Items[1].Monto.String())
	assert.Equal(t, "5.505", resp.Items[2].Monto.String())
	assert.Equal(t, "Pago recibido", resp.Items[0].Titulo)

	// 10 + 0 + 5.505 rounded to cents
	assert.Equal(t, "15.51", resp.Total.String())
}

func TestReportePorTipoVacio(t *testing.T) {
	svc := service.NewMovimientoService(&fakeMovRepo{}, &fakeAudit{}, testConfig())

	resp, err := svc.ReportePorTipo(context.Background(), testCtx(), "A1", "2024-03-01", model.TipoVenta)
	require.NoError(t, err)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())
}

func TestResumenDia(t *testing.T) {
	repo := &fakeMovRepo{}
	svc := service.NewMovimientoService(repo, &fakeAudit{}, testConfig())
	dia := "2024-03-01"

	seed := func(tipo, monto string) {
		require.NoError(t, repo.Create(context.Background(), &model.Movimiento{
			Admin: "A1", Tipo: tipo, Monto: monto,
			FechaOperacional: dia, TZ: "America/Sao_Paulo",
		}))
	}
	seed("pago", "100.00")
	seed("abono", "50.00")     // same canonical bucket as pago
	seed("gasto_ruta", "8.00") // gastoCobrador
	seed("retiro", "20.00")
	seed("tipo_desconocido", "2.00") // lands in gastoAdmin

	resp, err := svc.ResumenDia(context.Background(), testCtx(), "A1", dia)
	require.NoError(t, err)

	// Every canonical bucket is present even when empty
	assert.Len(t, resp.Totales, len(model.TiposCanonicos))
	assert.Equal(t, "150", resp.Totales["pago"].String())
	assert.Equal(t, "8", resp.Totales["gastoCobrador"].String())
	assert.Equal(t, "20", resp.Totales["retiro"].String())
	assert.Equal(t, "2", resp.Totales["gastoAdmin"].String())
	assert.Equal(t, "0", resp.Totales["venta"].String())

	assert.Equal(t, "150", resp.Entradas.String())
	assert.Equal(t, "30", resp.Salidas.String())
}
