package task_test

import (
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/common"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/domain/task"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func boolPtr(b bool) *bool { return &b }

func rentTemplate(t *testing.T, familyID uuid.UUID) *ledger.Entry {
	t.Helper()
	day := 5
	e, err := ledger.NewEntry(ledger.NewEntryParams{
		Kind:        ledger.Expense,
		FamilyID:    familyID,
		AccountID:   uuid.New(),
		UserID:      uuid.New(),
		Amount:      dec("100"),
		Description: "Aluguel",
		Label:       "Moradia",
		Recurrence:  ledger.Recurrence{IsRecurring: true, Type: ledger.Monthly, Day: &day},
	})
	require.NoError(t, err)
	return e
}

func linkedTask(t *testing.T, amount *decimal.Decimal, auto bool) (*task.Task, *ledger.Entry) {
	t.Helper()
	familyID := uuid.New()
	tpl := rentTemplate(t, familyID)
	tk, err := task.New(task.NewTaskParams{
		FamilyID:                familyID,
		CreatedBy:               uuid.New(),
		Title:                   "Pagar aluguel",
		Type:                    task.TypeBillPayment,
		Amount:                  amount,
		AutoGenerateTransaction: auto,
	})
	require.NoError(t, err)
	tk.LinkTemplate(tpl)
	return tk, tpl
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]task.Status{
		"todo":        task.StatusTodo,
		"in_progress": task.StatusInProgress,
		"completed":   task.StatusCompleted,
		"done":        task.StatusCompleted,
		"DONE":        task.StatusCompleted,
	} {
		got, err := task.ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := task.ParseStatus("archived")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestNew_Defaults(t *testing.T) {
	tk, err := task.New(task.NewTaskParams{Title: " Comprar pão "})
	require.NoError(t, err)
	assert.Equal(t, "Comprar pão", tk.Title)
	assert.Equal(t, task.StatusTodo, tk.Status)
	assert.Equal(t, task.PriorityMedium, tk.Priority)
	assert.Equal(t, task.TypeStandard, tk.Type)
	assert.Nil(t, tk.CompletedAt)
}

func TestNew_RejectsTwoTemplates(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	_, err := task.New(task.NewTaskParams{
		Title:                    "x",
		LinkedRecurringEntradaID: &a,
		LinkedRecurringSaidaID:   &b,
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestSettle_AmountPrecedence(t *testing.T) {
	actor := uuid.New()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		amount *decimal.Decimal
		actual *decimal.Decimal
		want   string
	}{
		{"actual amount wins", decPtr("50"), decPtr("75"), "75"},
		{"task amount over template", decPtr("50"), nil, "50"},
		{"template amount fallback", nil, nil, "100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tk, tpl := linkedTask(t, tc.amount, true)
			require.NoError(t, tk.Complete(now))

			e, err := tk.Settle(task.Completion{ActualAmount: tc.actual}, actor, now)
			require.NoError(t, err)
			require.NotNil(t, e)

			assert.True(t, dec(tc.want).Equal(e.Amount), "got %s", e.Amount)
			assert.Equal(t, ledger.Expense, e.Kind)
			assert.Equal(t, tpl.AccountID, e.AccountID)
			assert.Equal(t, actor, e.UserID)
			assert.Equal(t, "Aluguel", e.Description)
			assert.Equal(t, "Moradia", e.Label)
			assert.Equal(t, now, e.Date)
			require.NotNil(t, e.LinkedTaskID)
			assert.Equal(t, tk.ID, *e.LinkedTaskID)
			assert.True(t, e.WasGeneratedByTask)
			assert.False(t, e.Recurrence.IsRecurring)
		})
	}
}

func TestSettle_IncomeTemplate(t *testing.T) {
	familyID := uuid.New()
	tpl, err := ledger.NewEntry(ledger.NewEntryParams{
		Kind:      ledger.Income,
		FamilyID:  familyID,
		AccountID: uuid.New(),
		Amount:    dec("4200"),
		Label:     "Salário",
	})
	require.NoError(t, err)
	tk, err := task.New(task.NewTaskParams{FamilyID: familyID, Title: "Receber salário", Type: task.TypeIncome, AutoGenerateTransaction: true})
	require.NoError(t, err)
	tk.LinkTemplate(tpl)

	e, err := tk.Settle(task.Completion{}, uuid.New(), time.Now())
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, ledger.Income, e.Kind)
	assert.Equal(t, "Salário", e.Label)
	assert.True(t, dec("4200").Equal(e.Amount))
}

func TestSettle_OptOut(t *testing.T) {
	tk, _ := linkedTask(t, nil, true)
	e, err := tk.Settle(task.Completion{GenerateTransaction: boolPtr(false)}, uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, e)

	e, err = tk.Settle(task.Completion{GenerateTransaction: boolPtr(true)}, uuid.New(), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestSettle_Gating(t *testing.T) {
	tk, _ := linkedTask(t, nil, false)
	for _, gen := range []*bool{nil, boolPtr(true), boolPtr(false)} {
		e, err := tk.Settle(task.Completion{GenerateTransaction: gen}, uuid.New(), time.Now())
		require.NoError(t, err)
		assert.Nil(t, e)
	}
}

func TestSettle_NoTemplate(t *testing.T) {
	tk, err := task.New(task.NewTaskParams{Title: "x", AutoGenerateTransaction: true})
	require.NoError(t, err)
	e, err := tk.Settle(task.Completion{}, uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestSettle_ActualAmountMustBePositive(t *testing.T) {
	tk, _ := linkedTask(t, nil, true)
	_, err := tk.Settle(task.Completion{ActualAmount: decPtr("0")}, uuid.New(), time.Now())
	assert.ErrorIs(t, err, ledger.ErrAmountMustBePositive)
}

func TestComplete_IsTerminal(t *testing.T) {
	tk, _ := linkedTask(t, nil, true)
	now := time.Now().UTC()
	require.NoError(t, tk.Complete(now))
	assert.Equal(t, task.StatusCompleted, tk.Status)
	require.NotNil(t, tk.CompletedAt)
	assert.Equal(t, now, *tk.CompletedAt)

	assert.ErrorIs(t, tk.Complete(now.Add(time.Minute)), task.ErrAlreadyCompleted)
	assert.Equal(t, now, *tk.CompletedAt)

	err := tk.Apply(task.Patch{Status: common.Some(task.StatusTodo)}, now)
	assert.ErrorIs(t, err, task.ErrCompletedIsTerminal)
	assert.Equal(t, task.StatusCompleted, tk.Status)
}

func TestApply_OnlyPresentFields(t *testing.T) {
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tk, err := task.New(task.NewTaskParams{
		Title:       "Limpar garagem",
		Description: "sábado",
		DueDate:     &due,
	})
	require.NoError(t, err)

	require.NoError(t, tk.Apply(task.Patch{Priority: common.Some(task.PriorityHigh)}, time.Now()))

	assert.Equal(t, task.PriorityHigh, tk.Priority)
	assert.Equal(t, "Limpar garagem", tk.Title)
	assert.Equal(t, "sábado", tk.Description)
	require.NotNil(t, tk.DueDate)
	assert.Equal(t, due, *tk.DueDate)
	assert.Equal(t, task.StatusTodo, tk.Status)
}

func TestApply_NullClears(t *testing.T) {
	due := time.Now()
	assignee := uuid.New()
	tk, err := task.New(task.NewTaskParams{Title: "x", DueDate: &due, AssigneeID: &assignee, Amount: decPtr("10")})
	require.NoError(t, err)

	require.NoError(t, tk.Apply(task.Patch{
		DueDate:    common.Null[time.Time](),
		AssigneeID: common.Null[uuid.UUID](),
		Amount:     common.Null[decimal.Decimal](),
	}, time.Now()))
	assert.Nil(t, tk.DueDate)
	assert.Nil(t, tk.AssigneeID)
	assert.Nil(t, tk.Amount)
}

func TestApply_InvalidLeavesTaskUntouched(t *testing.T) {
	tk, err := task.New(task.NewTaskParams{Title: "x"})
	require.NoError(t, err)
	err = tk.Apply(task.Patch{
		Description: common.Some("changed"),
		Priority:    common.Some(task.Priority("urgent")),
	}, time.Now())
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, tk.Description)

	err = tk.Apply(task.Patch{Status: common.Some(task.StatusCompleted)}, time.Now())
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, task.StatusTodo, tk.Status)
}

func TestNewTemplate(t *testing.T) {
	account := uuid.New()
	monthly := ledger.Recurrence{IsRecurring: true, Type: ledger.Monthly}

	cases := []struct {
		typ       task.Type
		wantKind  ledger.Kind
		wantLabel string
	}{
		{task.TypeBillPayment, ledger.Expense, task.BillPaymentCategory},
		{task.TypeShoppingList, ledger.Expense, task.ShoppingListCategory},
		{task.TypeIncome, ledger.Income, ""},
	}
	for _, tc := range cases {
		tk, err := task.New(task.NewTaskParams{Title: "Conta de luz", Type: tc.typ, Amount: decPtr("180"), Recurrence: monthly})
		require.NoError(t, err)
		e, err := tk.NewTemplate(account, uuid.New(), time.Now())
		require.NoError(t, err)
		require.NotNil(t, e, tc.typ)
		assert.Equal(t, tc.wantKind, e.Kind)
		assert.Equal(t, tc.wantLabel, e.Label)
		assert.Equal(t, account, e.AccountID)
		assert.True(t, e.Recurrence.IsRecurring)
		assert.Equal(t, "Conta de luz", e.Description)
	}

	standard, err := task.New(task.NewTaskParams{Title: "x", Amount: decPtr("1"), Recurrence: monthly})
	require.NoError(t, err)
	e, err := standard.NewTemplate(account, uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, e)

	oneOff, err := task.New(task.NewTaskParams{Title: "x", Type: task.TypeBillPayment, Amount: decPtr("1")})
	require.NoError(t, err)
	e, err = oneOff.NewTemplate(account, uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, e)

	bill, err := task.New(task.NewTaskParams{Title: "x", Type: task.TypeBillPayment, Amount: decPtr("1"), Recurrence: monthly})
	require.NoError(t, err)
	_, err = bill.NewTemplate(uuid.Nil, uuid.New(), time.Now())
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
