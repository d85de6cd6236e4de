package transfer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amirasaad/famledger/internal/fixtures/mocks"
	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/dto"
	accountsvc "github.com/amirasaad/famledger/pkg/service/account"
	transfersvc "github.com/amirasaad/famledger/pkg/service/transfer"
	"github.com/amirasaad/famledger/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateTransferMovesBalance(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	bus := mocks.NewMockBus(t)
	bus.EXPECT().
		Emit(mock.Anything, mock.AnythingOfType("events.TransferCreated")).
		Run(func(_ context.Context, ev events.Event) {
			tc := ev.(events.TransferCreated)
			assert.True(t, decimal.NewFromInt(30).Equal(tc.Amount))
		}).
		Return(nil).Once()
	svc := transfersvc.New(uow, bus, testutils.DiscardLogger())
	accounts := accountsvc.New(uow, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "davi")
	f := testutils.CreateFamily(t, uow, u.ID)
	src := testutils.CreateAccount(t, uow, f.ID, "Corrente", 100)
	dst := testutils.CreateAccount(t, uow, f.ID, "Poupança", 0)
	ctx := context.Background()

	tr, err := svc.CreateTransfer(ctx, f.ID, u.ID, dto.TransferCreate{
		FromAccountID: src.ID, ToAccountID: dst.ID, Amount: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.Equal(t, "Transferência: Corrente → Poupança", tr.Description)
	require.NotNil(t, tr.FromAccount)
	assert.Equal(t, "Corrente", tr.FromAccount.Name)

	from, err := accounts.GetAccount(ctx, f.ID, u.ID, src.ID)
	require.NoError(t, err)
	to, err := accounts.GetAccount(ctx, f.ID, u.ID, dst.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(70).Equal(from.CurrentBalance), from.CurrentBalance.String())
	assert.True(t, decimal.NewFromInt(30).Equal(to.CurrentBalance), to.CurrentBalance.String())

	list, err := svc.ListTransfers(ctx, f.ID, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, tr.ID, list[0].ID)
	require.NotNil(t, list[0].ToAccount)
	assert.Equal(t, "Poupança", list[0].ToAccount.Name)
}

func TestCreateTransferValidation(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := transfersvc.New(uow, mocks.NewMockBus(t), testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "davi")
	f := testutils.CreateFamily(t, uow, u.ID)
	other := testutils.CreateFamily(t, uow, u.ID)
	a := testutils.CreateAccount(t, uow, f.ID, "A", 0)
	b := testutils.CreateAccount(t, uow, f.ID, "B", 0)
	foreign := testutils.CreateAccount(t, uow, other.ID, "C", 0)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.TransferCreate
		want error
	}{
		{"same account", dto.TransferCreate{FromAccountID: a.ID, ToAccountID: a.ID, Amount: decimal.NewFromInt(1)}, ledger.ErrSameAccountTransfer},
		{"foreign destination", dto.TransferCreate{FromAccountID: a.ID, ToAccountID: foreign.ID, Amount: decimal.NewFromInt(1)}, transfersvc.ErrForeignAccount},
		{"unknown source", dto.TransferCreate{FromAccountID: uuid.New(), ToAccountID: b.ID, Amount: decimal.NewFromInt(1)}, transfersvc.ErrForeignAccount},
		{"zero amount", dto.TransferCreate{FromAccountID: a.ID, ToAccountID: b.ID, Amount: decimal.Zero}, ledger.ErrAmountMustBePositive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTransfer(ctx, f.ID, u.ID, tt.in)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}
}

func TestCreateTransferIsAtomic(t *testing.T) {
	uow, db := testutils.NewTestUoW(t)
	svc := transfersvc.New(uow, mocks.NewMockBus(t), testutils.DiscardLogger())
	accounts := accountsvc.New(uow, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "davi")
	f := testutils.CreateFamily(t, uow, u.ID)
	src := testutils.CreateAccount(t, uow, f.ID, "A", 100)
	dst := testutils.CreateAccount(t, uow, f.ID, "B", 0)
	ctx := context.Background()

	// The two entries are written before the transfer row; failing the
	// last insert must roll both back.
	testutils.FailInserts(t, db, "transfers")

	_, err := svc.CreateTransfer(ctx, f.ID, u.ID, dto.TransferCreate{
		FromAccountID: src.ID, ToAccountID: dst.ID, Amount: decimal.NewFromInt(30),
	})
	require.ErrorIs(t, err, testutils.ErrInjected)

	from, err := accounts.GetAccount(ctx, f.ID, u.ID, src.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(from.CurrentBalance))
	assert.Zero(t, from.SaidasCount)
	to, err := accounts.GetAccount(ctx, f.ID, u.ID, dst.ID)
	require.NoError(t, err)
	assert.Zero(t, to.EntradasCount)
}
