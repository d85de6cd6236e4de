package ledger

import (
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrSameAccountTransfer rejects transfers whose source equals destination.
var ErrSameAccountTransfer = domain.Validationf("source and destination accounts must differ")

// AccountSummary is the compact account view embedded in transfers.
type AccountSummary struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Type  AccountType `json:"type"`
	Color string      `json:"color,omitempty"`
	Icon  string      `json:"icon,omitempty"`
}

// Summary returns the compact view of a.
func (a Account) Summary() AccountSummary {
	return AccountSummary{ID: a.ID, Name: a.Name, Type: a.Type, Color: a.Color, Icon: a.Icon}
}

// Transfer moves money between two accounts of the same family. It is backed
// by one expense on the source and one income on the destination.
type Transfer struct {
	ID            uuid.UUID       `json:"id"`
	FamilyID      uuid.UUID       `json:"familyId"`
	UserID        uuid.UUID       `json:"userId"`
	FromAccountID uuid.UUID       `json:"fromAccountId"`
	ToAccountID   uuid.UUID       `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	ExpenseID     uuid.UUID       `json:"expenseId"`
	IncomeID      uuid.UUID       `json:"incomeId"`
	CreatedAt     time.Time       `json:"createdAt"`
	FromAccount   *AccountSummary `json:"fromAccount,omitempty"`
	ToAccount     *AccountSummary `json:"toAccount,omitempty"`
}

// NewTransferParams carries the fields accepted when creating a transfer.
type NewTransferParams struct {
	FamilyID    uuid.UUID
	UserID      uuid.UUID
	From        Account
	To          Account
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// NewTransfer validates p and returns the transfer with its two backing
// entries: an expense on the source and an income on the destination.
func NewTransfer(p NewTransferParams) (*Transfer, *Entry, *Entry, error) {
	if p.From.ID == p.To.ID {
		return nil, nil, nil, ErrSameAccountTransfer
	}
	if p.From.FamilyID != p.FamilyID || p.To.FamilyID != p.FamilyID {
		return nil, nil, nil, ErrAccountNotFound
	}
	if !p.Amount.IsPositive() {
		return nil, nil, nil, ErrAmountMustBePositive
	}
	date := p.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		desc = "Transferência: " + p.From.Name + " → " + p.To.Name
	}
	expense, err := NewEntry(NewEntryParams{
		Kind:        Expense,
		FamilyID:    p.FamilyID,
		AccountID:   p.From.ID,
		UserID:      p.UserID,
		Amount:      p.Amount,
		Description: desc,
		Label:       TransferLabel,
		Date:        date,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	income, err := NewEntry(NewEntryParams{
		Kind:        Income,
		FamilyID:    p.FamilyID,
		AccountID:   p.To.ID,
		UserID:      p.UserID,
		Amount:      p.Amount,
		Description: desc,
		Label:       TransferLabel,
		Date:        date,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	from, to := p.From.Summary(), p.To.Summary()
	t := &Transfer{
		ID:            uuid.New(),
		FamilyID:      p.FamilyID,
		UserID:        p.UserID,
		FromAccountID: p.From.ID,
		ToAccountID:   p.To.ID,
		Amount:        p.Amount,
		Description:   desc,
		Date:          date,
		ExpenseID:     expense.ID,
		IncomeID:      income.ID,
		CreatedAt:     time.Now().UTC(),
		FromAccount:   &from,
		ToAccount:     &to,
	}
	return t, expense, income, nil
}
