package eventbus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/famledger/internal/fixtures/mocks"
	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/amirasaad/famledger/pkg/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func TestEmitAllContinuesAfterFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := mocks.NewMockBus(t)
	bus.EXPECT().Emit(mock.Anything, mock.AnythingOfType("events.TaskCompleted")).Return(errors.New("broker down")).Once()
	bus.EXPECT().Emit(mock.Anything, mock.AnythingOfType("events.TaskSettled")).Return(nil).Once()

	eventbus.EmitAll(context.Background(), bus, logger,
		events.TaskCompleted{TaskID: uuid.New()},
		events.TaskSettled{TaskID: uuid.New()},
	)
}

func TestEmitAllNilBus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eventbus.EmitAll(context.Background(), nil, logger, events.TaskCompleted{})
}
