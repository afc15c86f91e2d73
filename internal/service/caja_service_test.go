package service_test

import (
	"context"
	"testing"

	"cobranza/internal/authctx"
	"cobranza/internal/config"
	"cobranza/internal/dto"
	"cobranza/internal/fecha"
	"cobranza/internal/model"
	"cobranza/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		TimezoneDefecto:  "America/Sao_Paulo",
		CajaMinApertura:  0.01,
		CajaLookbackDias: 7,
	}
}

func testCtx() authctx.Ctx {
	return authctx.Ctx{UserID: "u1", Admin: "A1", Rol: authctx.RolAdmin}
}

func TestAbrirCajaIdempotente(t *testing.T) {
	repo := newFakeCajaRepo()
	audit := &fakeAudit{}
	svc := service.NewCajaService(repo, &fakeMovRepo{}, audit, testConfig())
	actx := testCtx()

	resp, err := svc.AbrirCaja(context.Background(), actx, dto.AbrirCajaRequest{
		Monto: decimal.RequireFromString("100.00"),
		TZ:    "America/Sao_Paulo",
	})
	require.NoError(t, err)
	assert.False(t, resp.YaRegistrada)
	assert.Equal(t, "100", resp.Monto.String())

	hoy := fecha.HoyEn("America/Sao_Paulo")
	assert.Equal(t, "apertura_A1_"+hoy, resp.DocID)
	assert.Equal(t, hoy, resp.FechaOperacional)

	// Second open of the same day: same doc, stored monto untouched
	resp2, err := svc.AbrirCaja(context.Background(), actx, dto.AbrirCajaRequest{
		Monto: decimal.RequireFromString("999.99"),
		TZ:    "America/Sao_Paulo",
	})
	require.NoError(t, err)
	assert.True(t, resp2.YaRegistrada)
	assert.Equal(t, resp.DocID, resp2.DocID)
	assert.Equal(t, "100", resp2.Monto.String())

	// Only the first call audits
	assert.Equal(t, []string{model.AccionCajaAperturaManual}, audit.acciones())
}

func TestAbrirCajaMontoInvalido(t *testing.T) {
	svc := service.NewCajaService(newFakeCajaRepo(), &fakeMovRepo{}, &fakeAudit{}, testConfig())

	_, err := svc.AbrirCaja(context.Background(), testCtx(), dto.AbrirCajaRequest{
		Monto: decimal.Zero,
	})
	assert.ErrorIs(t, err, service.ErrMontoInvalido)

	_, err = svc.AbrirCaja(context.Background(), testCtx(), dto.AbrirCajaRequest{
		Monto: decimal.RequireFromString("-5"),
	})
	assert.ErrorIs(t, err, service.ErrMontoInvalido)
}

func TestEstadoDeHoySinAutoApertura(t *testing.T) {
	repo := newFakeCajaRepo()
	svc := service.NewCajaService(repo, &fakeMovRepo{}, &fakeAudit{}, testConfig())

	resp, err := svc.EstadoDeHoy(context.Background(), testCtx(), "")
	require.NoError(t, err)
	assert.False(t, resp.AperturaExiste)
	assert.Nil(t, resp.Monto)
	// Consultation must not have written anything
	assert.Empty(t, repo.docs)
}

func TestEstadoDeHoyConAutoApertura(t *testing.T) {
	cfg := testConfig()
	cfg.CajaAutoApertura = true
	repo := newFakeCajaRepo()
	audit := &fakeAudit{}
	svc := service.NewCajaService(repo, &fakeMovRepo{}, audit, cfg)

	resp, err := svc.EstadoDeHoy(context.Background(), testCtx(), "")
	require.NoError(t, err)
	assert.True(t, resp.AperturaExiste)
	require.NotNil(t, resp.Monto)
	assert.True(t, resp.Monto.IsZero())
	require.NotNil(t, resp.Source)
	assert.Equal(t, model.CajaSourceAuto, *resp.Source)
	assert.Equal(t, []string{model.AccionCajaAperturaAuto}, audit.acciones())

	// Second consultation reuses the seeded doc
	resp2, err := svc.EstadoDeHoy(context.Background(), testCtx(), "")
	require.NoError(t, err)
	assert.True(t, resp2.AperturaExiste)
	assert.Len(t, repo.docs, 1)
}

func TestRedondearMonto(t *testing.T) {
	cases := map[string]string{
		"10":      "10",
		"5.505":   "5.51", // half rounds away from zero
		"5.504":   "5.5",
		"0.004":   "0",
		"-0.0049": "0", // sub-cent noise collapses to exact zero
		"-3.335":  "-3.34",
		"15.505":  "15.51",
	}
	for in, want := range cases {
		got := service.RedondearMonto(decimal.RequireFromString(in))
		assert.Equal(t, want, got.String(), in)
	}
}

func seedMovimiento(t *testing.T, repo *fakeMovRepo, admin, dia, tipo, monto string) {
	t.Helper()
	err := repo.Create(context.Background(), &model.Movimiento{
		Admin:            admin,
		Tipo:             tipo,
		Monto:            monto,
		FechaOperacional: dia,
		TZ:               "America/Sao_Paulo",
	})
	require.NoError(t, err)
}

func TestCerrarDiasPendientes(t *testing.T) {
	cajaRepo := newFakeCajaRepo()
	movRepo := &fakeMovRepo{}
	audit := &fakeAudit{}
	svc := service.NewCajaService(cajaRepo, movRepo, audit, testConfig())
	actx := testCtx()

	tz := "America/Sao_Paulo"
	hoy := fecha.HoyEn(tz)
	ayer := fecha.DiaAnterior(hoy, 1)
	antier := fecha.DiaAnterior(hoy, 2)

	// Yesterday: apertura 100, pago 10, gasto 4 → cierre 106
	require.NoError(t, cajaRepo.Create(context.Background(), &model.CajaDiaria{
		DocID: model.CajaDocID(model.CajaTipoApertura, "A1", ayer),
		Tipo:  model.CajaTipoApertura, Admin: "A1",
		Monto: decimal.RequireFromString("100.00"), FechaOperacional: ayer, TZ: tz,
	}))
	seedMovimiento(t, movRepo, "A1", ayer, "pago", "10.00")
	seedMovimiento(t, movRepo, "A1", ayer, "gasto_admin", "4.00")

	// Two days ago: movements but no apertura → closes from a zero base
	seedMovimiento(t, movRepo, "A1", antier, "ingreso_caja", "50.00")

	resp, err := svc.CerrarDiasPendientes(context.Background(), actx, "A1", hoy, tz, 3)
	require.NoError(t, err)
	require.Len(t, resp.Cierres, 2)

	c1 := resp.Cierres[0]
	assert.Equal(t, ayer, c1.FechaOperacional)
	assert.True(t, c1.Creado)
	assert.Equal(t, "10", c1.Entradas.String())
	assert.Equal(t, "4", c1.Salidas.String())
	assert.Equal(t, "106", c1.Cierre.String())

	c2 := resp.Cierres[1]
	assert.Equal(t, antier, c2.FechaOperacional)
	assert.Equal(t, "50", c2.Cierre.String())

	// The fully-absent third day is skipped, not closed at zero
	assert.Equal(t, []string{fecha.DiaAnterior(hoy, 3)}, resp.Omitidos)
}

func TestCerrarDiasPendientesIdempotente(t *testing.T) {
	cajaRepo := newFakeCajaRepo()
	movRepo := &fakeMovRepo{}
	svc := service.NewCajaService(cajaRepo, movRepo, &fakeAudit{}, testConfig())
	actx := testCtx()

	tz := "America/Sao_Paulo"
	hoy := fecha.HoyEn(tz)
	ayer := fecha.DiaAnterior(hoy, 1)
	seedMovimiento(t, movRepo, "A1", ayer, "pago", "25.00")

	resp1, err := svc.CerrarDiasPendientes(context.Background(), actx, "A1", hoy, tz, 1)
	require.NoError(t, err)
	require.Len(t, resp1.Cierres, 1)
	assert.True(t, resp1.Cierres[0].Creado)

	// New movement lands after the day was reconciled; the stored cierre
	// must not silently change on re-run.
	seedMovimiento(t, movRepo, "A1", ayer, "pago", "1000.00")

	resp2, err := svc.CerrarDiasPendientes(context.Background(), actx, "A1", hoy, tz, 1)
	require.NoError(t, err)
	require.Len(t, resp2.Cierres, 1)
	assert.False(t, resp2.Cierres[0].Creado)
	assert.Equal(t, resp1.Cierres[0].Cierre.String(), resp2.Cierres[0].Cierre.String())
}

func TestCerrarDiaMontoMalformado(t *testing.T) {
	cajaRepo := newFakeCajaRepo()
	movRepo := &fakeMovRepo{}
	svc := service.NewCajaService(cajaRepo, movRepo, &fakeAudit{}, testConfig())
	actx := testCtx()

	tz := "America/Sao_Paulo"
	hoy := fecha.HoyEn(tz)
	ayer := fecha.DiaAnterior(hoy, 1)

	seedMovimiento(t, movRepo, "A1", ayer, "pago", "10.00")
	seedMovimiento(t, movRepo, "A1", ayer, "pago", "5.505")
	seedMovimiento(t, movRepo, "A1", ayer, "pago", "bad") // coerces to zero

	resp, err := svc.CerrarDiasPendientes(context.Background(), actx, "A1", hoy, tz, 1)
	require.NoError(t, err)
	require.Len(t, resp.Cierres, 1)
	assert.Equal(t, "15.51", resp.Cierres[0].Entradas.String())
	assert.Equal(t, "15.51", resp.Cierres[0].Cierre.String())
}
