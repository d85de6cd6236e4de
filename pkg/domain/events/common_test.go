package events_test

import (
	"encoding/json"
	"testing"

	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlowEvent(t *testing.T) {
	familyID, userID := uuid.New(), uuid.New()
	e := events.NewFlowEvent(familyID, userID)
	assert.Equal(t, familyID, e.FamilyID)
	assert.Equal(t, userID, e.UserID)
	assert.False(t, e.OccurredAt.IsZero())
}

func TestFactories_DecodeEveryType(t *testing.T) {
	all := []events.Event{
		events.TaskCompleted{FlowEvent: events.NewFlowEvent(uuid.New(), uuid.New()), TaskID: uuid.New(), Title: "x"},
		events.TaskSettled{TaskID: uuid.New(), EntryID: uuid.New(), Amount: decimal.NewFromInt(75)},
		events.GoalCompleted{GoalID: uuid.New(), TargetAmount: decimal.NewFromInt(100)},
		events.TransferCreated{TransferID: uuid.New(), Amount: decimal.NewFromInt(30)},
	}
	factories := events.Factories()
	require.Len(t, factories, len(all))
	for _, evt := range all {
		newEvt, ok := factories[evt.Type()]
		require.True(t, ok, evt.Type())
		data, err := json.Marshal(evt)
		require.NoError(t, err)
		decoded := newEvt()
		require.NoError(t, json.Unmarshal(data, decoded))
		assert.Equal(t, evt.Type(), decoded.Type())
	}
}

func TestTaskSettled_PayloadKeepsDecimal(t *testing.T) {
	data, err := json.Marshal(events.TaskSettled{Amount: decimal.RequireFromString("75.50")})
	require.NoError(t, err)
	var decoded events.TaskSettled
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decimal.RequireFromString("75.5").Equal(decoded.Amount))
}
