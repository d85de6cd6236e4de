// Package eventbus defines the transport-agnostic contract for publishing
// domain events.
package eventbus

import (
	"context"
	"log/slog"

	"github.com/amirasaad/famledger/pkg/domain/events"
)

// HandlerFunc handles one event.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Bus publishes events and dispatches them to registered handlers.
type Bus interface {
	Emit(ctx context.Context, event events.Event) error
	Register(eventType string, handler HandlerFunc)
}

// EmitAll emits evs in order on bus. The state behind the events is already
// committed, so failures are logged and never returned.
func EmitAll(ctx context.Context, bus Bus, logger *slog.Logger, evs ...events.Event) {
	if bus == nil {
		return
	}
	for _, ev := range evs {
		if err := bus.Emit(ctx, ev); err != nil {
			logger.Error("failed to emit event", "type", ev.Type(), "error", err)
		}
	}
}
