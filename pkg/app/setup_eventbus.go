package app

import (
	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/amirasaad/famledger/pkg/eventbus"
	"github.com/amirasaad/famledger/pkg/handler/activity"
	"github.com/amirasaad/famledger/pkg/handler/common"
)

// setupEventBus registers the activity handlers on the configured bus.
// Broker drivers deliver at least once, so every handler is keyed on the
// entity its event describes.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	uow := a.Deps.Uow
	logger := a.Deps.Logger
	tracker := common.NewIdempotencyTracker()

	register := func(t events.EventType, name string, h eventbus.HandlerFunc) {
		bus.Register(t.String(), common.WithIdempotency(h, tracker, common.EventKey, name, logger))
	}
	register(events.EventTypeTaskCompleted, "activity.HandleTaskCompleted", activity.HandleTaskCompleted(logger))
	register(events.EventTypeTaskSettled, "activity.HandleTaskSettled", activity.HandleTaskSettled(uow, logger))
	register(events.EventTypeGoalCompleted, "activity.HandleGoalCompleted", activity.HandleGoalCompleted(logger))
	register(events.EventTypeTransferCreated, "activity.HandleTransferCreated", activity.HandleTransferCreated(uow, logger))
}
