package task

import (
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/common"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Patch is a sparse task update. Absent fields are left untouched, explicit
// nulls clear nullable fields.
type Patch struct {
	Title                   common.Optional[string]
	Description             common.Optional[string]
	Status                  common.Optional[Status]
	Priority                common.Optional[Priority]
	DueDate                 common.Optional[time.Time]
	AssigneeID              common.Optional[uuid.UUID]
	Amount                  common.Optional[decimal.Decimal]
	AutoGenerateTransaction common.Optional[bool]
}

// Completes reports whether the patch moves the task into completed.
func (p Patch) Completes() bool {
	return p.Status.HasValue() && p.Status.Value == StatusCompleted
}

// Apply writes the present fields of p onto t. A transition into completed
// must go through Complete so settlement runs; Apply rejects it.
func (t *Task) Apply(p Patch, now time.Time) error {
	next := *t
	if p.Title.Set {
		if p.Title.Null {
			return domain.Validationf("title cannot be null")
		}
		next.Title = strings.TrimSpace(p.Title.Value)
	}
	if p.Description.Set {
		next.Description = strings.TrimSpace(p.Description.Value)
	}
	if p.Priority.Set {
		if p.Priority.Null {
			return domain.Validationf("priority cannot be null")
		}
		next.Priority = p.Priority.Value
	}
	if p.DueDate.Set {
		next.DueDate = p.DueDate.Ptr()
	}
	if p.AssigneeID.Set {
		next.AssigneeID = p.AssigneeID.Ptr()
		next.Assignee = nil
	}
	if p.Amount.Set {
		next.Amount = p.Amount.Ptr()
	}
	if p.AutoGenerateTransaction.HasValue() {
		next.AutoGenerateTransaction = p.AutoGenerateTransaction.Value
	}
	if p.Status.Set {
		if p.Status.Null {
			return domain.Validationf("status cannot be null")
		}
		if p.Status.Value == StatusCompleted {
			return domain.Validationf("use completion to mark a task completed")
		}
		if t.IsCompleted() {
			return ErrCompletedIsTerminal
		}
		next.Status = p.Status.Value
	}
	if err := next.Validate(); err != nil {
		return err
	}
	next.UpdatedAt = now
	*t = next
	return nil
}

// Completion carries the settlement knobs of a completion request.
type Completion struct {
	// ActualAmount overrides the task and template amounts.
	ActualAmount *decimal.Decimal
	// GenerateTransaction false opts out of settlement. Nil means generate.
	GenerateTransaction *bool
}

// Complete moves the task into its terminal state and stamps completedAt.
func (t *Task) Complete(now time.Time) error {
	if t.IsCompleted() {
		return ErrAlreadyCompleted
	}
	t.Status = StatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
	return nil
}

// ShouldSettle reports whether completing t with c materializes an entry.
func (t *Task) ShouldSettle(c Completion) bool {
	if !t.AutoGenerateTransaction {
		return false
	}
	return c.GenerateTransaction == nil || *c.GenerateTransaction
}

// Settle builds the one-off entry produced by completing t, or nil when
// nothing should be materialized. The linked template must already be
// loaded on t. The amount is the first of actualAmount, the task amount and
// the template amount that is set.
func (t *Task) Settle(c Completion, actor uuid.UUID, now time.Time) (*ledger.Entry, error) {
	if !t.ShouldSettle(c) {
		return nil, nil
	}
	tpl := t.LinkedRecurringSaida
	if tpl == nil {
		tpl = t.LinkedRecurringEntrada
	}
	if tpl == nil {
		return nil, nil
	}
	amount := tpl.Amount
	switch {
	case c.ActualAmount != nil:
		amount = *c.ActualAmount
	case t.Amount != nil:
		amount = *t.Amount
	}
	e, err := ledger.NewEntry(ledger.NewEntryParams{
		Kind:        tpl.Kind,
		FamilyID:    t.FamilyID,
		AccountID:   tpl.AccountID,
		UserID:      actor,
		Amount:      amount,
		Description: tpl.Description,
		Label:       tpl.Label,
		Date:        now,
	})
	if err != nil {
		return nil, err
	}
	id := t.ID
	e.LinkedTaskID = &id
	e.WasGeneratedByTask = true
	return e, nil
}

// TransactionMode selects how a new task gets its recurring template.
type TransactionMode string

const (
	ModeNone   TransactionMode = ""
	ModeCreate TransactionMode = "create"
	ModeLink   TransactionMode = "link"
)

// ValidMode reports whether m is known.
func ValidMode(m TransactionMode) bool {
	return m == ModeNone || m == ModeCreate || m == ModeLink
}

// Default labels of templates created alongside a task.
const (
	BillPaymentCategory  = "Contas"
	ShoppingListCategory = "Compras"
)

// NewTemplate builds the recurring entry created together with t in create
// mode. It returns nil when the task is not recurring, has no amount, or its
// type owns no template.
func (t *Task) NewTemplate(accountID, actor uuid.UUID, now time.Time) (*ledger.Entry, error) {
	if !t.Recurrence.IsRecurring || t.Amount == nil {
		return nil, nil
	}
	var kind ledger.Kind
	var label string
	switch t.Type {
	case TypeBillPayment:
		kind, label = ledger.Expense, BillPaymentCategory
	case TypeShoppingList:
		kind, label = ledger.Expense, ShoppingListCategory
	case TypeIncome:
		kind = ledger.Income
	default:
		return nil, nil
	}
	if accountID == uuid.Nil {
		return nil, domain.Validationf("accountId is required to create a recurring transaction")
	}
	return ledger.NewEntry(ledger.NewEntryParams{
		Kind:        kind,
		FamilyID:    t.FamilyID,
		AccountID:   accountID,
		UserID:      actor,
		Amount:      *t.Amount,
		Description: t.Title,
		Label:       label,
		Date:        now,
		Recurrence:  t.Recurrence,
	})
}
