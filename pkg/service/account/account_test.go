package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/common"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/dto"
	accountsvc "github.com/amirasaad/famledger/pkg/service/account"
	"github.com/amirasaad/famledger/pkg/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccountAssignsDisplayOrder(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := accountsvc.New(uow, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "ana")
	f := testutils.CreateFamily(t, uow, u.ID)
	ctx := context.Background()

	first, err := svc.CreateAccount(ctx, f.ID, u.ID, dto.AccountCreate{
		Name: "Conta", Type: "checking", InitialBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	second, err := svc.CreateAccount(ctx, f.ID, u.ID, dto.AccountCreate{
		Name: "Carteira", Type: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, first.DisplayOrder)
	assert.Equal(t, 2, second.DisplayOrder)
	assert.True(t, first.IsActive)
	assert.True(t, decimal.NewFromInt(100).Equal(first.CurrentBalance))

	_, err = svc.CreateAccount(ctx, f.ID, u.ID, dto.AccountCreate{Name: "Conta", Type: "cash"})
	assert.ErrorIs(t, err, ledger.ErrAccountNameTaken)
}

func TestCreateAccountCreditCardNeedsLimit(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := accountsvc.New(uow, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "ana")
	f := testutils.CreateFamily(t, uow, u.ID)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, f.ID, u.ID, dto.AccountCreate{Name: "Visa", Type: "credit_card"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	limit := decimal.NewFromInt(1000)
	b, err := svc.CreateAccount(ctx, f.ID, u.ID, dto.AccountCreate{
		Name: "Visa", Type: "credit_card", CreditLimit: &limit,
	})
	require.NoError(t, err)
	require.NotNil(t, b.CreditLimit)
	assert.True(t, limit.Equal(*b.CreditLimit))
}

func TestOnlyOneDefaultAccount(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := accountsvc.New(uow, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "ana")
	f := testutils.CreateFamily(t, uow, u.ID)
	ctx := context.Background()

	a, err := svc.CreateAccount(ctx, f.ID, u.ID, dto.AccountCreate{Name: "A", Type: "checking", IsDefault: true})
	require.NoError(t, err)
	b, err := svc.CreateAccount(ctx, f.ID, u.ID, dto.AccountCreate{Name: "B", Type: "checking", IsDefault: true})
	require.NoError(t, err)

	got, err := svc.GetAccount(ctx, f.ID, u.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
	assert.True(t, b.IsDefault)

	_, err = svc.UpdateAccount(ctx, f.ID, u.ID, a.ID, dto.AccountUpdate{IsDefault: common.Some(true)})
	require.NoError(t, err)

	list, err := svc.ListAccounts(ctx, f.ID, u.ID)
	require.NoError(t, err)
	defaults := 0
	for _, acc := range list {
		if acc.IsDefault {
			defaults++
			assert.Equal(t, a.ID, acc.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestUpdateAccountIsSparse(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := accountsvc.New(uow, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "ana")
	f := testutils.CreateFamily(t, uow, u.ID)
	acc := testutils.CreateAccount(t, uow, f.ID, "Conta", 50)
	testutils.CreateAccount(t, uow, f.ID, "Outra", 0)
	ctx := context.Background()

	got, err := svc.UpdateAccount(ctx, f.ID, u.ID, acc.ID, dto.AccountUpdate{
		Color:    common.Some("#ff0000"),
		IsActive: common.Some(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Conta", got.Name)
	assert.Equal(t, "#ff0000", got.Color)
	assert.False(t, got.IsActive)
	assert.True(t, decimal.NewFromInt(50).Equal(got.InitialBalance))

	_, err = svc.UpdateAccount(ctx, f.ID, u.ID, acc.ID, dto.AccountUpdate{Name: common.Some("Outra")})
	assert.ErrorIs(t, err, ledger.ErrAccountNameTaken)
}

func TestDeleteAccountWithEntriesIsRejected(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := accountsvc.New(uow, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "ana")
	f := testutils.CreateFamily(t, uow, u.ID)
	used := testutils.CreateAccount(t, uow, f.ID, "Usada", 0)
	empty := testutils.CreateAccount(t, uow, f.ID, "Vazia", 0)
	testutils.CreateEntry(t, uow, ledger.Expense, used, u.ID, 10, false)
	ctx := context.Background()

	err := svc.DeleteAccount(ctx, f.ID, u.ID, used.ID)
	assert.ErrorIs(t, err, ledger.ErrAccountHasEntries)

	require.NoError(t, svc.DeleteAccount(ctx, f.ID, u.ID, empty.ID))
	_, err = svc.GetAccount(ctx, f.ID, u.ID, empty.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAccountBalanceReflectsEntries(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := accountsvc.New(uow, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "ana")
	f := testutils.CreateFamily(t, uow, u.ID)
	acc := testutils.CreateAccount(t, uow, f.ID, "Conta", 100)
	testutils.CreateEntry(t, uow, ledger.Income, acc, u.ID, 40, false)
	testutils.CreateEntry(t, uow, ledger.Expense, acc, u.ID, 15, false)

	got, err := svc.GetAccount(context.Background(), f.ID, u.ID, acc.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(125).Equal(got.CurrentBalance), got.CurrentBalance.String())
	assert.Equal(t, int64(1), got.EntradasCount)
	assert.Equal(t, int64(1), got.SaidasCount)
}

func TestAccountBalanceKeepsCents(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := accountsvc.New(uow, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "bia")
	f := testutils.CreateFamily(t, uow, u.ID)
	acc := testutils.CreateAccount(t, uow, f.ID, "Carteira", 0)
	testutils.CreateEntryAmount(t, uow, ledger.Income, acc, u.ID, decimal.RequireFromString("0.1"), false)
	testutils.CreateEntryAmount(t, uow, ledger.Income, acc, u.ID, decimal.RequireFromString("0.2"), false)
	testutils.CreateEntryAmount(t, uow, ledger.Expense, acc, u.ID, decimal.RequireFromString("0.05"), false)

	got, err := svc.GetAccount(context.Background(), f.ID, u.ID, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.25", got.CurrentBalance.String())

	list, err := svc.ListAccounts(context.Background(), f.ID, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "0.25", list[0].CurrentBalance.String())
}

func TestAccountsRequireMembership(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := accountsvc.New(uow, testutils.DiscardLogger())
	owner := testutils.CreateUser(t, uow, "owner")
	outsider := testutils.CreateUser(t, uow, "outsider")
	f := testutils.CreateFamily(t, uow, owner.ID)
	ctx := context.Background()

	_, err := svc.ListAccounts(ctx, f.ID, outsider.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	_, err = svc.CreateAccount(ctx, f.ID, outsider.ID, dto.AccountCreate{Name: "X", Type: "cash"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
