package goal_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/amirasaad/famledger/internal/fixtures/mocks"
	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/common"
	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/amirasaad/famledger/pkg/domain/goal"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/dto"
	goalsvc "github.com/amirasaad/famledger/pkg/service/goal"
	"github.com/amirasaad/famledger/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestContributeCompletesGoalOnce(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	bus := mocks.NewMockBus(t)
	bus.EXPECT().
		Emit(mock.Anything, mock.AnythingOfType("events.GoalCompleted")).
		Run(func(_ context.Context, ev events.Event) {
			gc := ev.(events.GoalCompleted)
			assert.True(t, dec("110").Equal(gc.CurrentAmount))
		}).
		Return(nil).Once()
	svc := goalsvc.New(uow, bus, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "eva")
	f := testutils.CreateFamily(t, uow, u.ID)
	ctx := context.Background()

	g, err := svc.CreateGoal(ctx, f.ID, u.ID, dto.GoalCreate{Name: "Viagem", TargetAmount: dec("100")})
	require.NoError(t, err)
	assert.True(t, g.CurrentAmount.IsZero())

	_, err = svc.Contribute(ctx, f.ID, u.ID, g.ID, dto.ContributionCreate{Amount: dec("60")})
	require.NoError(t, err)
	got, err := svc.GetGoal(ctx, f.ID, u.ID, g.ID)
	require.NoError(t, err)
	assert.False(t, got.IsCompleted)

	_, err = svc.Contribute(ctx, f.ID, u.ID, g.ID, dto.ContributionCreate{Amount: dec("50")})
	require.NoError(t, err)
	got, err = svc.GetGoal(ctx, f.ID, u.ID, g.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	require.NotNil(t, got.CompletedAt)
	first := *got.CompletedAt

	// Further contributions keep counting but do not re-complete.
	_, err = svc.Contribute(ctx, f.ID, u.ID, g.ID, dto.ContributionCreate{Amount: dec("5")})
	require.NoError(t, err)
	got, err = svc.GetGoal(ctx, f.ID, u.ID, g.ID)
	require.NoError(t, err)
	assert.True(t, dec("115").Equal(got.CurrentAmount))
	assert.True(t, first.Equal(*got.CompletedAt))

	cs, err := svc.ListContributions(ctx, f.ID, u.ID, g.ID)
	require.NoError(t, err)
	assert.Len(t, cs, 3)
}

func TestContributeRejectsNonPositiveAmount(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := goalsvc.New(uow, mocks.NewMockBus(t), testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "eva")
	f := testutils.CreateFamily(t, uow, u.ID)
	ctx := context.Background()
	g, err := svc.CreateGoal(ctx, f.ID, u.ID, dto.GoalCreate{Name: "Carro", TargetAmount: dec("10")})
	require.NoError(t, err)

	for _, amount := range []string{"0", "-3"} {
		_, err = svc.Contribute(ctx, f.ID, u.ID, g.ID, dto.ContributionCreate{Amount: dec(amount)})
		assert.True(t, errors.Is(err, domain.ErrValidation), amount)
	}
	cs, err := svc.ListContributions(ctx, f.ID, u.ID, g.ID)
	require.NoError(t, err)
	assert.Empty(t, cs)
}

func TestContributeFromUnknownIncome(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := goalsvc.New(uow, mocks.NewMockBus(t), testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "eva")
	f := testutils.CreateFamily(t, uow, u.ID)
	acc := testutils.CreateAccount(t, uow, f.ID, "Conta", 0)
	income := testutils.CreateEntry(t, uow, ledger.Income, acc, u.ID, 10, false)
	ctx := context.Background()
	g, err := svc.CreateGoal(ctx, f.ID, u.ID, dto.GoalCreate{Name: "Casa", TargetAmount: dec("1000")})
	require.NoError(t, err)

	missing := uuid.New()
	_, err = svc.Contribute(ctx, f.ID, u.ID, g.ID, dto.ContributionCreate{Amount: dec("1"), EntradaID: &missing})
	assert.ErrorIs(t, err, ledger.ErrEntryNotFound)

	c, err := svc.Contribute(ctx, f.ID, u.ID, g.ID, dto.ContributionCreate{Amount: dec("10"), EntradaID: &income.ID})
	require.NoError(t, err)
	require.NotNil(t, c.EntradaID)
	assert.Equal(t, income.ID, *c.EntradaID)
}

func TestConcurrentContributionsAreAllCounted(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	bus := mocks.NewMockBus(t)
	bus.EXPECT().Emit(mock.Anything, mock.AnythingOfType("events.GoalCompleted")).Return(nil).Once()
	svc := goalsvc.New(uow, bus, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "eva")
	f := testutils.CreateFamily(t, uow, u.ID)
	ctx := context.Background()
	g, err := svc.CreateGoal(ctx, f.ID, u.ID, dto.GoalCreate{Name: "Reserva", TargetAmount: dec("10")})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Contribute(ctx, f.ID, u.ID, g.ID, dto.ContributionCreate{Amount: dec("1")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.GetGoal(ctx, f.ID, u.ID, g.ID)
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(got.CurrentAmount), got.CurrentAmount.String())
	assert.True(t, got.IsCompleted)
}

func TestEmergencyFundDerivesTarget(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := goalsvc.New(uow, mocks.NewMockBus(t), testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "eva")
	f := testutils.CreateFamily(t, uow, u.ID)
	ctx := context.Background()
	monthly, months := dec("2500"), 6

	g, err := svc.CreateGoal(ctx, f.ID, u.ID, dto.GoalCreate{
		Name: "Emergência", IsEmergencyFund: true, MonthlyExpenses: &monthly, TargetMonths: &months,
	})
	require.NoError(t, err)
	assert.True(t, dec("15000").Equal(g.TargetAmount))

	g, err = svc.UpdateGoal(ctx, f.ID, u.ID, g.ID, dto.GoalUpdate{TargetMonths: common.Some(12)})
	require.NoError(t, err)
	assert.True(t, dec("30000").Equal(g.TargetAmount))

	_, err = svc.UpdateGoal(ctx, f.ID, u.ID, g.ID, dto.GoalUpdate{Priority: common.Some(7)})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestDeleteGoal(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := goalsvc.New(uow, mocks.NewMockBus(t), testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "eva")
	f := testutils.CreateFamily(t, uow, u.ID)
	ctx := context.Background()
	g, err := svc.CreateGoal(ctx, f.ID, u.ID, dto.GoalCreate{Name: "X", TargetAmount: dec("10")})
	require.NoError(t, err)
	_, err = svc.Contribute(ctx, f.ID, u.ID, g.ID, dto.ContributionCreate{Amount: dec("1")})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGoal(ctx, f.ID, u.ID, g.ID))
	_, err = svc.GetGoal(ctx, f.ID, u.ID, g.ID)
	assert.ErrorIs(t, err, goal.ErrGoalNotFound)
}
