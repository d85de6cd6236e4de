package account

import (
	"time"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a financial account record. At most one account per
// family is the default, enforced by a partial unique index.
type Account struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	FamilyID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_family_name;uniqueIndex:idx_accounts_one_default,where:is_default = true"`
	Name           string           `gorm:"not null;size:100;uniqueIndex:idx_accounts_family_name"`
	Type           string           `gorm:"not null;size:20"`
	InitialBalance decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	CreditLimit    *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Color          string           `gorm:"size:20"`
	Icon           string           `gorm:"size:50"`
	IsDefault      bool             `gorm:"not null"`
	IsActive       bool             `gorm:"not null"`
	DisplayOrder   int              `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "financial_accounts"
}

// balanceRow is an account joined with the aggregates of its entries.
type balanceRow struct {
	Account
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	IncomeCount  int64
	ExpenseCount int64
}

// balanceSelect derives balances on read with correlated aggregates.
const balanceSelect = `financial_accounts.*,
	COALESCE((SELECT SUM(i.amount) FROM incomes i WHERE i.account_id = financial_accounts.id), 0) AS income_total,
	COALESCE((SELECT SUM(e.amount) FROM expenses e WHERE e.account_id = financial_accounts.id), 0) AS expense_total,
	(SELECT COUNT(*) FROM incomes i WHERE i.account_id = financial_accounts.id) AS income_count,
	(SELECT COUNT(*) FROM expenses e WHERE e.account_id = financial_accounts.id) AS expense_count`

// ToDomain maps the record to a ledger account.
func ToDomain(m *Account) *ledger.Account {
	return &ledger.Account{
		ID:             m.ID,
		FamilyID:       m.FamilyID,
		Name:           m.Name,
		Type:           ledger.AccountType(m.Type),
		InitialBalance: m.InitialBalance,
		CreditLimit:    m.CreditLimit,
		Color:          m.Color,
		Icon:           m.Icon,
		IsDefault:      m.IsDefault,
		IsActive:       m.IsActive,
		DisplayOrder:   m.DisplayOrder,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromDomain(a *ledger.Account) *Account {
	return &Account{
		ID:             a.ID,
		FamilyID:       a.FamilyID,
		Name:           a.Name,
		Type:           string(a.Type),
		InitialBalance: a.InitialBalance,
		CreditLimit:    a.CreditLimit,
		Color:          a.Color,
		Icon:           a.Icon,
		IsDefault:      a.IsDefault,
		IsActive:       a.IsActive,
		DisplayOrder:   a.DisplayOrder,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// toDomain rounds the sums to cents: sqlite adds NUMERIC columns as REAL,
// so 0.1 + 0.2 comes back as 0.30000000000000004.
func (row *balanceRow) toDomain() *ledger.AccountBalance {
	b := ledger.NewAccountBalance(
		*ToDomain(&row.Account),
		row.IncomeTotal.Round(2),
		row.ExpenseTotal.Round(2),
		row.IncomeCount,
		row.ExpenseCount,
	)
	return &b
}
