package worker

import (
	"context"
	"encoding/json"
	"testing"

	"cobranza/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventoAplicado struct {
	evento     string
	clienteID  uuid.UUID
	prestamoID string
}

type fakeDisponible struct {
	aplicados []eventoAplicado
}

func (f *fakeDisponible) OnPrestamoCreado(_ context.Context, clienteID uuid.UUID, prestamoID string) error {
	f.aplicados = append(f.aplicados, eventoAplicado{"created", clienteID, prestamoID})
	return nil
}

func (f *fakeDisponible) OnPrestamoEliminado(_ context.Context, clienteID uuid.UUID, prestamoID string) error {
	f.aplicados = append(f.aplicados, eventoAplicado{"deleted", clienteID, prestamoID})
	return nil
}

func (f *fakeDisponible) Consultar(_ context.Context, _ uuid.UUID) (*model.ClienteDisponible, error) {
	return nil, nil
}

func TestPrestamoWorkerAplicaEventos(t *testing.T) {
	disponible := &fakeDisponible{}
	w := NewPrestamoWorker(disponible, nil)

	clienteID := uuid.New()
	for _, evento := range []string{"created", "deleted"} {
		payload, err := json.Marshal(PrestamoEventPayload{
			Evento: evento, ClienteID: clienteID.String(), PrestamoID: "p1",
		})
		require.NoError(t, err)
		w.Process(context.Background(), payload)
	}

	require.Len(t, disponible.aplicados, 2)
	assert.Equal(t, "created", disponible.aplicados[0].evento)
	assert.Equal(t, "deleted", disponible.aplicados[1].evento)
	assert.Equal(t, clienteID, disponible.aplicados[0].clienteID)
	assert.Equal(t, "p1", disponible.aplicados[0].prestamoID)
}

func TestJobEnvelopeRoundTrip(t *testing.T) {
	payload, err := json.Marshal(PrestamoEventPayload{
		Evento: "created", ClienteID: uuid.NewString(), PrestamoID: "p2",
	})
	require.NoError(t, err)

	encoded, err := json.Marshal(Job{Type: "prestamo_evento", Payload: payload})
	require.NoError(t, err)

	var decoded Job
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, "prestamo_evento", decoded.Type)

	var event PrestamoEventPayload
	require.NoError(t, json.Unmarshal(decoded.Payload, &event))
	assert.Equal(t, "created", event.Evento)
	assert.Equal(t, "p2", event.PrestamoID)
}
