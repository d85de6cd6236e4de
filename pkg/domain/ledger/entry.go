package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind distinguishes the two ledger entry variants.
type Kind string

const (
	// Income is an "entrada"; its label is the source.
	Income Kind = "income"
	// Expense is a "saida"; its label is the category.
	Expense Kind = "expense"
)

// TransferLabel is the source/category stamped on entries created by a transfer.
const TransferLabel = "transferencia"

var (
	// ErrEntryNotFound is returned when an entry id doesn't resolve inside the family.
	ErrEntryNotFound = fmt.Errorf("%w: entry not found", domain.ErrNotFound)
	// ErrAmountMustBePositive guards entry, transfer and contribution amounts.
	ErrAmountMustBePositive = domain.Validationf("amount must be greater than zero")
)

// ValidKind reports whether k is income or expense.
func ValidKind(k Kind) bool {
	return k == Income || k == Expense
}

// Entry is one income or expense row. Label holds the source for income and
// the category for expenses.
type Entry struct {
	ID                 uuid.UUID       `json:"id"`
	Kind               Kind            `json:"kind"`
	FamilyID           uuid.UUID       `json:"familyId"`
	AccountID          uuid.UUID       `json:"accountId"`
	UserID             uuid.UUID       `json:"userId"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description"`
	Label              string          `json:"label"`
	Date               time.Time       `json:"date"`
	Tags               []Tag           `json:"tags"`
	Recurrence         Recurrence      `json:"recurrence"`
	LinkedTaskID       *uuid.UUID      `json:"linkedTaskId,omitempty"`
	WasGeneratedByTask bool            `json:"wasGeneratedByTask"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// NewEntryParams carries the fields accepted when recording an entry.
type NewEntryParams struct {
	Kind        Kind
	FamilyID    uuid.UUID
	AccountID   uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	Label       string
	Date        time.Time
	Tags        []Tag
	Recurrence  Recurrence
}

// NewEntry validates p and returns a new entry. A zero date means now.
func NewEntry(p NewEntryParams) (*Entry, error) {
	e := &Entry{
		ID:          uuid.New(),
		Kind:        p.Kind,
		FamilyID:    p.FamilyID,
		AccountID:   p.AccountID,
		UserID:      p.UserID,
		Amount:      p.Amount,
		Description: strings.TrimSpace(p.Description),
		Label:       strings.TrimSpace(p.Label),
		Date:        p.Date,
		Tags:        p.Tags,
		Recurrence:  p.Recurrence,
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	return e, nil
}

// Validate checks the entry invariants.
func (e *Entry) Validate() error {
	if !ValidKind(e.Kind) {
		return domain.Validationf("unknown entry kind %q", e.Kind)
	}
	if !e.Amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if e.AccountID == uuid.Nil {
		return domain.Validationf("accountId is required")
	}
	if len(e.Description) > 255 {
		return domain.Validationf("description must be at most 255 characters")
	}
	if len(e.Label) > 100 {
		return domain.Validationf("source/category must be at most 100 characters")
	}
	return e.Recurrence.Normalize()
}

// Signed returns the amount as it affects an account balance.
func (e *Entry) Signed() decimal.Decimal {
	if e.Kind == Expense {
		return e.Amount.Neg()
	}
	return e.Amount
}

// TagIDs returns the ids of the entry's tags.
func (e *Entry) TagIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(e.Tags))
	for _, t := range e.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// EntryReplace is the full-replacement payload of an entry update.
type EntryReplace struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Label       string
	Tags        []Tag
}

// Replace applies r to e and revalidates. The tag set is replaced wholesale.
func (e *Entry) Replace(r EntryReplace) error {
	e.Description = strings.TrimSpace(r.Description)
	e.Amount = r.Amount
	if !r.Date.IsZero() {
		e.Date = r.Date
	}
	e.Label = strings.TrimSpace(r.Label)
	e.Tags = r.Tags
	if err := e.Validate(); err != nil {
		return err
	}
	e.UpdatedAt = time.Now().UTC()
	return nil
}
