// Package common holds middleware shared by the event handlers.
package common

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/amirasaad/famledger/pkg/eventbus"
	"golang.org/x/sync/singleflight"
)

// KeyExtractor derives an idempotency key from an event. An empty key
// disables the check for that event.
type KeyExtractor func(events.Event) string

// IdempotencyTracker remembers which keys were handled successfully.
type IdempotencyTracker struct {
	processed sync.Map
	inflight  singleflight.Group
}

// NewIdempotencyTracker creates an empty tracker.
func NewIdempotencyTracker() *IdempotencyTracker {
	return &IdempotencyTracker{}
}

// Store marks key as processed.
func (t *IdempotencyTracker) Store(key string) {
	t.processed.Store(key, struct{}{})
}

// Delete forgets key.
func (t *IdempotencyTracker) Delete(key string) {
	t.processed.Delete(key)
}

// Seen reports whether key was processed.
func (t *IdempotencyTracker) Seen(key string) bool {
	_, ok := t.processed.Load(key)
	return ok
}

// EventKey keys the four family events on their type and the entity they
// describe, so a redelivered message maps to the same key.
func EventKey(e events.Event) string {
	var id string
	switch v := e.(type) {
	case events.TaskCompleted:
		id = v.TaskID.String()
	case *events.TaskCompleted:
		id = v.TaskID.String()
	case events.TaskSettled:
		id = v.EntryID.String()
	case *events.TaskSettled:
		id = v.EntryID.String()
	case events.GoalCompleted:
		id = v.GoalID.String()
	case *events.GoalCompleted:
		id = v.GoalID.String()
	case events.TransferCreated:
		id = v.TransferID.String()
	case *events.TransferCreated:
		id = v.TransferID.String()
	default:
		return ""
	}
	return e.Type() + ":" + id
}

// WithIdempotency wraps handler so each key runs to success at most once.
// Concurrent deliveries of the same key share one execution and its result.
func WithIdempotency(
	handler eventbus.HandlerFunc,
	tracker *IdempotencyTracker,
	keyExtractor KeyExtractor,
	handlerName string,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, e events.Event) error {
		key := keyExtractor(e)
		if key == "" {
			return handler(ctx, e)
		}
		log := logger.With(
			"handler", handlerName,
			"event_type", e.Type(),
			"idempotency_key", key,
		)
		if tracker.Seen(key) {
			log.Info("🔁 [SKIP] Event already processed")
			return nil
		}

		_, err, _ := tracker.inflight.Do(key, func() (any, error) {
			if tracker.Seen(key) {
				return nil, nil
			}
			if err := handler(ctx, e); err != nil {
				return nil, err
			}
			tracker.Store(key)
			return nil, nil
		})
		if err != nil {
			tracker.Delete(key)
			return err
		}
		return nil
	}
}
