package service_test

import (
	"context"
	"testing"

	"cobranza/internal/model"
	"cobranza/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisponibleCicloDeVida(t *testing.T) {
	repo := newFakeClienteRepo()
	audit := &fakeAudit{}
	svc := service.NewDisponibleService(repo, audit)

	clienteID := uuid.New()
	repo.clientes[clienteID] = &model.Cliente{ID: clienteID, Nombre: "María"}

	// First loan: the index row is created lazily and flips to unavailable
	require.NoError(t, svc.OnPrestamoCreado(context.Background(), clienteID, "p1"))
	cd, err := svc.Consultar(context.Background(), clienteID)
	require.NoError(t, err)
	assert.Equal(t, 1, cd.ActivePrestamosCount)
	assert.False(t, cd.Disponible)
	assert.Equal(t, "María", cd.Nombre)

	require.NoError(t, svc.OnPrestamoCreado(context.Background(), clienteID, "p2"))
	cd, _ = svc.Consultar(context.Background(), clienteID)
	assert.Equal(t, 2, cd.ActivePrestamosCount)
	assert.False(t, cd.Disponible)

	require.NoError(t, svc.OnPrestamoEliminado(context.Background(), clienteID, "p1"))
	cd, _ = svc.Consultar(context.Background(), clienteID)
	assert.Equal(t, 1, cd.ActivePrestamosCount)
	assert.False(t, cd.Disponible)

	require.NoError(t, svc.OnPrestamoEliminado(context.Background(), clienteID, "p2"))
	cd, _ = svc.Consultar(context.Background(), clienteID)
	assert.Equal(t, 0, cd.ActivePrestamosCount)
	assert.True(t, cd.Disponible)
}

func TestDisponiblePisoEnCero(t *testing.T) {
	repo := newFakeClienteRepo()
	svc := service.NewDisponibleService(repo, &fakeAudit{})
	clienteID := uuid.New()

	// A redelivered delete for a client with no counted loans must not go
	// negative; availability stays true.
	require.NoError(t, svc.OnPrestamoEliminado(context.Background(), clienteID, "p9"))
	cd, err := svc.Consultar(context.Background(), clienteID)
	require.NoError(t, err)
	assert.Equal(t, 0, cd.ActivePrestamosCount)
	assert.True(t, cd.Disponible)
}

func TestDisponibleAuditaCambios(t *testing.T) {
	repo := newFakeClienteRepo()
	audit := &fakeAudit{}
	svc := service.NewDisponibleService(repo, audit)
	clienteID := uuid.New()

	require.NoError(t, svc.OnPrestamoCreado(context.Background(), clienteID, "p1"))

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, model.AccionDisponibleActualizado, entry.Accion)
	assert.Equal(t, "system", entry.UserID)
	assert.Equal(t, clienteID.String(), entry.Ref)
	assert.Nil(t, entry.Before) // first event for this client
	assert.NotNil(t, entry.After)
}
