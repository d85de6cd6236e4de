package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryCreate is the body of POST /families/{familyId}/incomes|expenses.
// Source applies to incomes and Category to expenses.
type EntryCreate struct {
	AccountID        uuid.UUID       `json:"accountId" validate:"required"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description" validate:"max=255"`
	Source           string          `json:"source,omitempty" validate:"max=100"`
	Category         string          `json:"category,omitempty" validate:"max=100"`
	Date             *time.Time      `json:"date,omitempty"`
	TagIDs           []uuid.UUID     `json:"tagIds,omitempty"`
	IsRecurring      bool            `json:"isRecurring"`
	RecurringType    string          `json:"recurringType,omitempty"`
	RecurringDay     *int            `json:"recurringDay,omitempty"`
	RecurringEndDate *time.Time      `json:"recurringEndDate,omitempty"`
}

// EntryReplace is the body of PUT .../{entryId}. The tag set is replaced.
type EntryReplace struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=255"`
	Source      string          `json:"source,omitempty" validate:"max=100"`
	Category    string          `json:"category,omitempty" validate:"max=100"`
	Date        *time.Time      `json:"date,omitempty"`
	TagIDs      []uuid.UUID     `json:"tagIds"`
}

// EntryFilter narrows entry listings. Zero values are ignored.
type EntryFilter struct {
	AccountID *uuid.UUID
	From      *time.Time
	To        *time.Time
	TagID     *uuid.UUID
	Recurring *bool
}
