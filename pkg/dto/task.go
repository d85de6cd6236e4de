package dto

import (
	"time"

	"github.com/amirasaad/famledger/pkg/domain/common"
	"github.com/amirasaad/famledger/pkg/domain/task"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaskCreate is the body of POST /families/{familyId}/tasks.
type TaskCreate struct {
	Title                    string           `json:"title" validate:"required,max=200"`
	Description              string           `json:"description,omitempty" validate:"max=1000"`
	Status                   task.Status      `json:"status,omitempty"`
	Priority                 string           `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate                  *time.Time       `json:"dueDate,omitempty"`
	Type                     string           `json:"type,omitempty" validate:"omitempty,oneof=standard bill_payment shopping_list income"`
	Amount                   *decimal.Decimal `json:"amount,omitempty"`
	AssigneeID               *uuid.UUID       `json:"assigneeId,omitempty"`
	AutoGenerateTransaction  bool             `json:"autoGenerateTransaction"`
	IsRecurring              bool             `json:"isRecurring"`
	RecurringType            string           `json:"recurringType,omitempty"`
	RecurringDay             *int             `json:"recurringDay,omitempty"`
	RecurringEndDate         *time.Time       `json:"recurringEndDate,omitempty"`
	TransactionMode          string           `json:"transactionMode,omitempty" validate:"omitempty,oneof=create link"`
	AccountID                *uuid.UUID       `json:"accountId,omitempty"`
	LinkedRecurringEntradaID *uuid.UUID       `json:"linkedRecurringEntradaId,omitempty"`
	LinkedRecurringSaidaID   *uuid.UUID       `json:"linkedRecurringSaidaId,omitempty"`
}

// TaskUpdate is the body of PATCH .../tasks/{taskId}. A status of
// completed (or done) runs settlement with ActualAmount and
// GenerateTransaction; any other body is a sparse update.
type TaskUpdate struct {
	Title                   common.Optional[string]          `json:"title"`
	Description             common.Optional[string]          `json:"description"`
	Status                  common.Optional[task.Status]     `json:"status"`
	Priority                common.Optional[task.Priority]   `json:"priority"`
	DueDate                 common.Optional[time.Time]       `json:"dueDate"`
	AssigneeID              common.Optional[uuid.UUID]       `json:"assigneeId"`
	Amount                  common.Optional[decimal.Decimal] `json:"amount"`
	AutoGenerateTransaction common.Optional[bool]            `json:"autoGenerateTransaction"`
	ActualAmount            *decimal.Decimal                 `json:"actualAmount,omitempty"`
	GenerateTransaction     *bool                            `json:"generateTransaction,omitempty"`
}

// Patch returns the field updates carried by u.
func (u TaskUpdate) Patch() task.Patch {
	return task.Patch{
		Title:                   u.Title,
		Description:             u.Description,
		Status:                  u.Status,
		Priority:                u.Priority,
		DueDate:                 u.DueDate,
		AssigneeID:              u.AssigneeID,
		Amount:                  u.Amount,
		AutoGenerateTransaction: u.AutoGenerateTransaction,
	}
}

// TaskFilter narrows task listings. Nil fields are ignored.
type TaskFilter struct {
	Status     *task.Status
	AssigneeID *uuid.UUID
	Type       *task.Type
}
