// Package events defines the domain events emitted after a unit of work
// commits.
package events

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	EventTypeTaskCompleted   EventType = "task.completed"
	EventTypeTaskSettled     EventType = "task.settled"
	EventTypeGoalCompleted   EventType = "goal.completed"
	EventTypeTransferCreated EventType = "transfer.created"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}

// TaskCompleted is emitted when a task reaches completed.
type TaskCompleted struct {
	FlowEvent
	TaskID uuid.UUID `json:"taskId"`
	Title  string    `json:"title"`
}

// TaskSettled is emitted when completing a task materialized a ledger entry.
type TaskSettled struct {
	FlowEvent
	TaskID    uuid.UUID       `json:"taskId"`
	EntryID   uuid.UUID       `json:"entryId"`
	EntryKind string          `json:"entryKind"`
	AccountID uuid.UUID       `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
}

// GoalCompleted is emitted once, when a contribution first reaches the target.
type GoalCompleted struct {
	FlowEvent
	GoalID        uuid.UUID       `json:"goalId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// TransferCreated is emitted after a transfer and its two entries commit.
type TransferCreated struct {
	FlowEvent
	TransferID    uuid.UUID       `json:"transferId"`
	FromAccountID uuid.UUID       `json:"fromAccountId"`
	ToAccountID   uuid.UUID       `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
}

func (TaskCompleted) Type() string   { return EventTypeTaskCompleted.String() }
func (TaskSettled) Type() string     { return EventTypeTaskSettled.String() }
func (GoalCompleted) Type() string   { return EventTypeGoalCompleted.String() }
func (TransferCreated) Type() string { return EventTypeTransferCreated.String() }

// Factories returns constructors keyed by event type, used by bus drivers
// to decode payloads.
func Factories() map[string]func() Event {
	return map[string]func() Event{
		EventTypeTaskCompleted.String():   func() Event { return &TaskCompleted{} },
		EventTypeTaskSettled.String():     func() Event { return &TaskSettled{} },
		EventTypeGoalCompleted.String():   func() Event { return &GoalCompleted{} },
		EventTypeTransferCreated.String(): func() Event { return &TransferCreated{} },
	}
}
