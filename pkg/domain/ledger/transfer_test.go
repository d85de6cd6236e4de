package ledger_test

import (
	"testing"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransfer(t *testing.T) {
	familyID := uuid.New()
	from := ledger.Account{ID: uuid.New(), FamilyID: familyID, Name: "A", Type: ledger.AccountChecking}
	to := ledger.Account{ID: uuid.New(), FamilyID: familyID, Name: "B", Type: ledger.AccountSavings}

	tr, expense, income, err := ledger.NewTransfer(ledger.NewTransferParams{
		FamilyID: familyID,
		UserID:   uuid.New(),
		From:     from,
		To:       to,
		Amount:   dec("30"),
	})
	require.NoError(t, err)

	assert.Equal(t, ledger.Expense, expense.Kind)
	assert.Equal(t, from.ID, expense.AccountID)
	assert.Equal(t, ledger.TransferLabel, expense.Label)
	assert.Equal(t, ledger.Income, income.Kind)
	assert.Equal(t, to.ID, income.AccountID)
	assert.Equal(t, ledger.TransferLabel, income.Label)
	assert.True(t, dec("30").Equal(expense.Amount))
	assert.True(t, dec("30").Equal(income.Amount))

	assert.Equal(t, expense.ID, tr.ExpenseID)
	assert.Equal(t, income.ID, tr.IncomeID)
	assert.Equal(t, "A", tr.FromAccount.Name)
	assert.Equal(t, "B", tr.ToAccount.Name)
}

func TestNewTransfer_Rejects(t *testing.T) {
	familyID := uuid.New()
	a := ledger.Account{ID: uuid.New(), FamilyID: familyID}
	b := ledger.Account{ID: uuid.New(), FamilyID: familyID}
	foreign := ledger.Account{ID: uuid.New(), FamilyID: uuid.New()}

	_, _, _, err := ledger.NewTransfer(ledger.NewTransferParams{FamilyID: familyID, From: a, To: a, Amount: dec("1")})
	assert.ErrorIs(t, err, ledger.ErrSameAccountTransfer)

	_, _, _, err = ledger.NewTransfer(ledger.NewTransferParams{FamilyID: familyID, From: a, To: foreign, Amount: dec("1")})
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	_, _, _, err = ledger.NewTransfer(ledger.NewTransferParams{FamilyID: familyID, From: a, To: b, Amount: dec("0")})
	assert.ErrorIs(t, err, ledger.ErrAmountMustBePositive)
}
