// Package task models household tasks and the rules that settle a completed
// task into a ledger entry.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTaskNotFound is returned when a task id doesn't resolve inside the family.
	ErrTaskNotFound = fmt.Errorf("%w: task not found", domain.ErrNotFound)
	// ErrAlreadyCompleted rejects a second completion so a task settles at most once.
	ErrAlreadyCompleted = domain.Validationf("task is already completed")
	// ErrCompletedIsTerminal rejects moving a completed task back to another status.
	ErrCompletedIsTerminal = domain.Validationf("a completed task cannot change status")
)

// Status is the task lifecycle state.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus accepts the three states plus "done" as a synonym of completed.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return StatusTodo, nil
	case "in_progress":
		return StatusInProgress, nil
	case "completed", "done":
		return StatusCompleted, nil
	}
	return "", domain.Validationf("unknown task status %q", s)
}

// UnmarshalText lets request bodies carry "done".
func (s *Status) UnmarshalText(b []byte) error {
	st, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is known.
func ValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Type classifies a task and decides which template kind it may own.
type Type string

const (
	TypeStandard     Type = "standard"
	TypeBillPayment  Type = "bill_payment"
	TypeShoppingList Type = "shopping_list"
	TypeIncome       Type = "income"
)

// ValidType reports whether t is known.
func ValidType(t Type) bool {
	switch t {
	case TypeStandard, TypeBillPayment, TypeShoppingList, TypeIncome:
		return true
	}
	return false
}

// Task is a family to-do that may be tied to a recurring ledger template.
type Task struct {
	ID                       uuid.UUID         `json:"id"`
	FamilyID                 uuid.UUID         `json:"familyId"`
	CreatedBy                uuid.UUID         `json:"createdById"`
	AssigneeID               *uuid.UUID        `json:"assigneeId,omitempty"`
	Title                    string            `json:"title"`
	Description              string            `json:"description,omitempty"`
	Status                   Status            `json:"status"`
	Priority                 Priority          `json:"priority"`
	DueDate                  *time.Time        `json:"dueDate,omitempty"`
	Type                     Type              `json:"type"`
	Amount                   *decimal.Decimal  `json:"amount,omitempty"`
	AutoGenerateTransaction  bool              `json:"autoGenerateTransaction"`
	Recurrence               ledger.Recurrence `json:"recurrence"`
	LinkedRecurringEntradaID *uuid.UUID        `json:"linkedRecurringEntradaId,omitempty"`
	LinkedRecurringSaidaID   *uuid.UUID        `json:"linkedRecurringSaidaId,omitempty"`
	CompletedAt              *time.Time        `json:"completedAt,omitempty"`
	CreatedAt                time.Time         `json:"createdAt"`
	UpdatedAt                time.Time         `json:"updatedAt"`

	// Relations, filled by the repository on reads.
	Creator                *user.Identity `json:"createdBy,omitempty"`
	Assignee               *user.Identity `json:"assignee,omitempty"`
	LinkedRecurringEntrada *ledger.Entry  `json:"linkedRecurringEntrada,omitempty"`
	LinkedRecurringSaida   *ledger.Entry  `json:"linkedRecurringSaida,omitempty"`
}

// NewTaskParams carries the fields accepted when creating a task.
type NewTaskParams struct {
	FamilyID                 uuid.UUID
	CreatedBy                uuid.UUID
	AssigneeID               *uuid.UUID
	Title                    string
	Description              string
	Status                   Status
	Priority                 Priority
	DueDate                  *time.Time
	Type                     Type
	Amount                   *decimal.Decimal
	AutoGenerateTransaction  bool
	Recurrence               ledger.Recurrence
	LinkedRecurringEntradaID *uuid.UUID
	LinkedRecurringSaidaID   *uuid.UUID
}

// New validates p and returns a task. Empty status, priority and type
// default to todo, medium and standard.
func New(p NewTaskParams) (*Task, error) {
	t := &Task{
		ID:                       uuid.New(),
		FamilyID:                 p.FamilyID,
		CreatedBy:                p.CreatedBy,
		AssigneeID:               p.AssigneeID,
		Title:                    strings.TrimSpace(p.Title),
		Description:              strings.TrimSpace(p.Description),
		Status:                   p.Status,
		Priority:                 p.Priority,
		DueDate:                  p.DueDate,
		Type:                     p.Type,
		Amount:                   p.Amount,
		AutoGenerateTransaction:  p.AutoGenerateTransaction,
		Recurrence:               p.Recurrence,
		LinkedRecurringEntradaID: p.LinkedRecurringEntradaID,
		LinkedRecurringSaidaID:   p.LinkedRecurringSaidaID,
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Type == "" {
		t.Type = TypeStandard
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	if t.Status == StatusCompleted {
		t.CompletedAt = &now
	}
	return t, nil
}

// Validate checks the task invariants.
func (t *Task) Validate() error {
	if t.Title == "" {
		return domain.Validationf("title is required")
	}
	if len(t.Title) > 200 {
		return domain.Validationf("title must be at most 200 characters")
	}
	switch t.Status {
	case StatusTodo, StatusInProgress, StatusCompleted:
	default:
		return domain.Validationf("unknown task status %q", t.Status)
	}
	if !ValidPriority(t.Priority) {
		return domain.Validationf("unknown task priority %q", t.Priority)
	}
	if !ValidType(t.Type) {
		return domain.Validationf("unknown task type %q", t.Type)
	}
	if t.Amount != nil && t.Amount.IsNegative() {
		return domain.Validationf("amount must not be negative")
	}
	if t.LinkedRecurringEntradaID != nil && t.LinkedRecurringSaidaID != nil {
		return domain.Validationf("a task links at most one recurring template")
	}
	return t.Recurrence.Normalize()
}

// LinkTemplate points the task at a recurring entry.
func (t *Task) LinkTemplate(e *ledger.Entry) {
	id := e.ID
	if e.Kind == ledger.Income {
		t.LinkedRecurringEntradaID, t.LinkedRecurringSaidaID = &id, nil
		t.LinkedRecurringEntrada, t.LinkedRecurringSaida = e, nil
		return
	}
	t.LinkedRecurringSaidaID, t.LinkedRecurringEntradaID = &id, nil
	t.LinkedRecurringSaida, t.LinkedRecurringEntrada = e, nil
}

// LinkedTemplateID returns whichever template id is set, if any.
func (t *Task) LinkedTemplateID() *uuid.UUID {
	if t.LinkedRecurringSaidaID != nil {
		return t.LinkedRecurringSaidaID
	}
	return t.LinkedRecurringEntradaID
}

// IsCompleted reports whether the task reached its terminal state.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}
