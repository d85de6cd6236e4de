package eventbus

import (
	"testing"

	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	in := events.GoalCompleted{
		FlowEvent:     events.NewFlowEvent(uuid.New(), uuid.New()),
		GoalID:        uuid.New(),
		Name:          "Reserva",
		TargetAmount:  decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(110),
	}
	raw, err := encode(in)
	require.NoError(t, err)

	out, err := decode(raw, events.Factories())
	require.NoError(t, err)
	got, ok := out.(*events.GoalCompleted)
	require.True(t, ok)
	assert.Equal(t, in.GoalID, got.GoalID)
	assert.Equal(t, in.FamilyID, got.FamilyID)
	assert.True(t, in.CurrentAmount.Equal(got.CurrentAmount))
}

func TestDecode_UnknownType(t *testing.T) {
	_, err := decode([]byte(`{"type":"nope","payload":{}}`), events.Factories())
	assert.Error(t, err)

	_, err = decode([]byte(`not json`), events.Factories())
	assert.Error(t, err)
}
