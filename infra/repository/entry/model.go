package entry

import (
	"time"

	"github.com/amirasaad/famledger/infra/repository/tag"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Base holds the columns shared by incomes and expenses.
type Base struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FamilyID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description        string          `gorm:"size:255"`
	Date               time.Time       `gorm:"not null;index"`
	IsRecurring        bool            `gorm:"not null"`
	RecurringType      string          `gorm:"size:20"`
	RecurringDay       *int
	RecurringEndDate   *time.Time
	LinkedTaskID       *uuid.UUID `gorm:"type:uuid;index"`
	WasGeneratedByTask bool       `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Income represents an "entrada" record.
type Income struct {
	Base
	Source string `gorm:"size:100"`
}

// TableName specifies the table name for the Income model.
func (Income) TableName() string {
	return "incomes"
}

// Expense represents a "saida" record.
type Expense struct {
	Base
	Category string `gorm:"size:100"`
}

// TableName specifies the table name for the Expense model.
func (Expense) TableName() string {
	return "expenses"
}

// IncomeTag links an income to a tag.
type IncomeTag struct {
	IncomeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName specifies the table name for the IncomeTag model.
func (IncomeTag) TableName() string {
	return "income_tags"
}

// ExpenseTag links an expense to a tag.
type ExpenseTag struct {
	ExpenseID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName specifies the table name for the ExpenseTag model.
func (ExpenseTag) TableName() string {
	return "expense_tags"
}

// Row is an income or expense read back with its label column aliased.
type Row struct {
	Base
	Label string
}

// tagLink is a tag joined with the entry it labels.
type tagLink struct {
	tag.Tag
	EntryID uuid.UUID
}

// layout names the table and columns of one entry kind.
type layout struct {
	table string
	label string
	join  string
	fk    string
}

var layouts = map[ledger.Kind]layout{
	ledger.Income:  {table: "incomes", label: "source", join: "income_tags", fk: "income_id"},
	ledger.Expense: {table: "expenses", label: "category", join: "expense_tags", fk: "expense_id"},
}

// SelectRow selects every column of the kind's table plus its label as "label".
func SelectRow(kind ledger.Kind) string {
	l := layouts[kind]
	return l.table + ".*, " + l.table + "." + l.label + " AS label"
}

// Table returns the table holding entries of kind.
func Table(kind ledger.Kind) string {
	return layouts[kind].table
}

func fromDomain(e *ledger.Entry) Base {
	b := Base{
		ID:                 e.ID,
		FamilyID:           e.FamilyID,
		AccountID:          e.AccountID,
		UserID:             e.UserID,
		Amount:             e.Amount,
		Description:        e.Description,
		Date:               e.Date.UTC(),
		IsRecurring:        e.Recurrence.IsRecurring,
		RecurringType:      string(e.Recurrence.Type),
		RecurringDay:       e.Recurrence.Day,
		RecurringEndDate:   e.Recurrence.EndDate,
		LinkedTaskID:       e.LinkedTaskID,
		WasGeneratedByTask: e.WasGeneratedByTask,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	if b.RecurringEndDate != nil {
		end := b.RecurringEndDate.UTC()
		b.RecurringEndDate = &end
	}
	return b
}

func model(e *ledger.Entry) any {
	if e.Kind == ledger.Income {
		return &Income{Base: fromDomain(e), Source: e.Label}
	}
	return &Expense{Base: fromDomain(e), Category: e.Label}
}

// ToDomain maps a row of kind to a ledger entry without tags.
func ToDomain(kind ledger.Kind, row *Row) *ledger.Entry {
	return &ledger.Entry{
		ID:          row.ID,
		Kind:        kind,
		FamilyID:    row.FamilyID,
		AccountID:   row.AccountID,
		UserID:      row.UserID,
		Amount:      row.Amount,
		Description: row.Description,
		Label:       row.Label,
		Date:        row.Date,
		Tags:        []ledger.Tag{},
		Recurrence: ledger.Recurrence{
			IsRecurring: row.IsRecurring,
			Type:        ledger.RecurringType(row.RecurringType),
			Day:         row.RecurringDay,
			EndDate:     row.RecurringEndDate,
		},
		LinkedTaskID:       row.LinkedTaskID,
		WasGeneratedByTask: row.WasGeneratedByTask,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}
