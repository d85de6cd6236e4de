package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// FlowEvent carries the fields shared by every family-scoped event.
type FlowEvent struct {
	FamilyID   uuid.UUID `json:"familyId"`
	UserID     uuid.UUID `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewFlowEvent stamps the shared fields of an event.
func NewFlowEvent(familyID, userID uuid.UUID) FlowEvent {
	return FlowEvent{FamilyID: familyID, UserID: userID, OccurredAt: time.Now().UTC()}
}
