// Package ledger holds the family ledger: financial accounts, income and
// expense entries, tags, transfers and the balance rules over them.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType enumerates the kinds of financial account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCash       AccountType = "cash"
	AccountCreditCard AccountType = "credit_card"
	AccountInvestment AccountType = "investment"
)

var (
	// ErrAccountNotFound is returned when an account id doesn't resolve inside the family.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", domain.ErrNotFound)
	// ErrAccountHasEntries blocks deleting an account that still carries entries.
	ErrAccountHasEntries = domain.Validationf("account has entries; deactivate it instead of deleting")
	// ErrAccountNameTaken is returned when the name is already used in the family.
	ErrAccountNameTaken = domain.Validationf("an account with this name already exists")
)

// ValidAccountType reports whether t is a known account type.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCash, AccountCreditCard, AccountInvestment:
		return true
	}
	return false
}

// Account is a financial account owned by one family.
type Account struct {
	ID             uuid.UUID        `json:"id"`
	FamilyID       uuid.UUID        `json:"familyId"`
	Name           string           `json:"name"`
	Type           AccountType      `json:"type"`
	InitialBalance decimal.Decimal  `json:"initialBalance"`
	CreditLimit    *decimal.Decimal `json:"creditLimit,omitempty"`
	Color          string           `json:"color,omitempty"`
	Icon           string           `json:"icon,omitempty"`
	IsDefault      bool             `json:"isDefault"`
	IsActive       bool             `json:"isActive"`
	DisplayOrder   int              `json:"displayOrder"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// NewAccountParams carries the fields accepted when opening an account.
type NewAccountParams struct {
	FamilyID       uuid.UUID
	Name           string
	Type           AccountType
	InitialBalance decimal.Decimal
	CreditLimit    *decimal.Decimal
	Color          string
	Icon           string
	IsDefault      bool
}

// NewAccount validates p and returns an active account. DisplayOrder is left
// for the caller to assign.
func NewAccount(p NewAccountParams) (*Account, error) {
	a := &Account{
		ID:             uuid.New(),
		FamilyID:       p.FamilyID,
		Name:           strings.TrimSpace(p.Name),
		Type:           p.Type,
		InitialBalance: p.InitialBalance,
		CreditLimit:    p.CreditLimit,
		Color:          p.Color,
		Icon:           p.Icon,
		IsDefault:      p.IsDefault,
		IsActive:       true,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	return a, nil
}

// Validate checks the account invariants. A credit limit is required for
// credit cards and dropped for every other type.
func (a *Account) Validate() error {
	if a.Name == "" {
		return domain.Validationf("account name is required")
	}
	if len(a.Name) > 100 {
		return domain.Validationf("account name must be at most 100 characters")
	}
	if !ValidAccountType(a.Type) {
		return domain.Validationf("unknown account type %q", a.Type)
	}
	if a.Type == AccountCreditCard {
		if a.CreditLimit == nil || !a.CreditLimit.IsPositive() {
			return domain.Validationf("credit limit is required for credit card accounts")
		}
	} else {
		a.CreditLimit = nil
	}
	return nil
}

// AccountBalance is an account with its derived, never stored, balance.
type AccountBalance struct {
	Account
	CurrentBalance decimal.Decimal  `json:"currentBalance"`
	EntradasCount  int64            `json:"entradasCount"`
	SaidasCount    int64            `json:"saidasCount"`
	Utilization    *decimal.Decimal `json:"utilization,omitempty"`
}

// NewAccountBalance derives the balance view from the account and the sums
// and counts of its income and expense entries.
func NewAccountBalance(a Account, incomeTotal, expenseTotal decimal.Decimal, incomes, expenses int64) AccountBalance {
	bal := CurrentBalance(a.InitialBalance, incomeTotal, expenseTotal)
	return AccountBalance{
		Account:        a,
		CurrentBalance: bal,
		EntradasCount:  incomes,
		SaidasCount:    expenses,
		Utilization:    Utilization(a, bal),
	}
}

// HasEntries reports whether any entry references the account.
func (b AccountBalance) HasEntries() bool {
	return b.EntradasCount+b.SaidasCount > 0
}

// CurrentBalance is initial + Σ income − Σ expense.
func CurrentBalance(initial, incomeTotal, expenseTotal decimal.Decimal) decimal.Decimal {
	return initial.Add(incomeTotal).Sub(expenseTotal)
}

// Utilization is |balance| / creditLimit for credit cards that owe money,
// nil otherwise.
func Utilization(a Account, balance decimal.Decimal) *decimal.Decimal {
	if a.Type != AccountCreditCard || a.CreditLimit == nil || !a.CreditLimit.IsPositive() {
		return nil
	}
	if !balance.IsNegative() {
		return nil
	}
	u := balance.Abs().DivRound(*a.CreditLimit, 4)
	return &u
}

// TotalBalance sums balances of active non credit card accounts, the rollup
// shown as the family's total.
func TotalBalance(balances []AccountBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		if b.Type == AccountCreditCard || !b.IsActive {
			continue
		}
		total = total.Add(b.CurrentBalance)
	}
	return total
}
