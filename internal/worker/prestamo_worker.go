package worker

// prestamo_worker.go
// Consumes loan lifecycle events from QueuePrestamos and keeps the
// client-availability index reconciled. Invocations are stateless and may
// run concurrently; per-client serialization happens on the index row lock
// inside the repository transaction, not here.

import (
	"context"
	"encoding/json"

	"cobranza/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxPrestamoAttempts = 3

// PrestamoWorker processes loan created/deleted events.
type PrestamoWorker struct {
	disponible service.DisponibleService
	rdb        *redis.Client
}

func NewPrestamoWorker(disponible service.DisponibleService, rdb *redis.Client) *PrestamoWorker {
	return &PrestamoWorker{disponible: disponible, rdb: rdb}
}

// Process handles one event. A transient failure requeues the job (bounded by
// maxPrestamoAttempts via the _attempts field); a poisoned payload goes
// straight to the DLQ.
func (w *PrestamoWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload struct {
		PrestamoEventPayload
		Attempts int `json:"_attempts,omitempty"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("prestamo_worker: invalid payload")
		SendToDLQ(ctx, w.rdb, QueuePrestamos, "prestamo_evento", raw, "invalid payload", 0)
		return
	}

	clienteID, err := uuid.Parse(payload.ClienteID)
	if err != nil {
		log.Error().Str("cliente_id", payload.ClienteID).Msg("prestamo_worker: invalid cliente_id")
		SendToDLQ(ctx, w.rdb, QueuePrestamos, "prestamo_evento", raw, "invalid cliente_id", 0)
		return
	}

	switch payload.Evento {
	case "created":
		err = w.disponible.OnPrestamoCreado(ctx, clienteID, payload.PrestamoID)
	case "deleted":
		err = w.disponible.OnPrestamoEliminado(ctx, clienteID, payload.PrestamoID)
	default:
		log.Error().Str("evento", payload.Evento).Msg("prestamo_worker: unknown event")
		SendToDLQ(ctx, w.rdb, QueuePrestamos, "prestamo_evento", raw, "unknown event", 0)
		return
	}

	if err == nil {
		log.Info().
			Str("evento", payload.Evento).
			Str("cliente_id", payload.ClienteID).
			Str("prestamo_id", payload.PrestamoID).
			Msg("prestamo_worker: event applied")
		return
	}

	// Transient failure: requeue with an attempt count, then DLQ.
	payload.Attempts++
	if payload.Attempts >= maxPrestamoAttempts {
		SendToDLQ(ctx, w.rdb, QueuePrestamos, "prestamo_evento", raw, err.Error(), payload.Attempts)
		return
	}
	requeued, merr := json.Marshal(payload)
	if merr != nil {
		SendToDLQ(ctx, w.rdb, QueuePrestamos, "prestamo_evento", raw, "requeue marshal failed", payload.Attempts)
		return
	}
	job, _ := json.Marshal(Job{Type: "prestamo_evento", Payload: requeued})
	if rerr := w.rdb.LPush(ctx, QueuePrestamos, job).Err(); rerr != nil {
		log.Error().Err(rerr).Msg("prestamo_worker: requeue failed")
	}
	log.Warn().Err(err).
		Int("attempt", payload.Attempts).
		Str("cliente_id", payload.ClienteID).
		Msg("prestamo_worker: transient failure, requeued")
}
