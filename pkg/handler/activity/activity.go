// Package activity holds the in-process consumers of domain events. They
// record what happened in the family ledger after each commit; none of them
// writes state.
package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/amirasaad/famledger/pkg/eventbus"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/google/uuid"
)

// as accepts both the value emitted in-process and the pointer decoded by
// the broker drivers.
func as[T events.Event](e events.Event) (T, error) {
	switch v := any(e).(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unexpected event type: %s", e.Type())
}

// HandleTaskCompleted logs a task reaching its terminal state.
func HandleTaskCompleted(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		tc, err := as[events.TaskCompleted](e)
		if err != nil {
			logger.Error("unexpected event type", "handler", "activity.HandleTaskCompleted", "error", err)
			return err
		}
		logger.Info("✅ Task completed",
			"handler", "activity.HandleTaskCompleted",
			"family_id", tc.FamilyID,
			"task_id", tc.TaskID,
			"title", tc.Title,
		)
		return nil
	}
}

// HandleTaskSettled logs the entry a completion produced together with the
// balance of the account it landed on.
func HandleTaskSettled(uow repository.UnitOfWork, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "activity.HandleTaskSettled", "event_type", e.Type())
		ts, err := as[events.TaskSettled](e)
		if err != nil {
			log.Error("unexpected event type", "error", err)
			return err
		}
		log = log.With("family_id", ts.FamilyID, "task_id", ts.TaskID, "entry_id", ts.EntryID)
		balance, err := accountBalance(ctx, uow, ts.FamilyID, ts.AccountID)
		if err != nil {
			log.Error("failed to read account balance", "error", err)
			return err
		}
		log.Info("💸 Task settled",
			"kind", ts.EntryKind,
			"amount", ts.Amount,
			"account_id", ts.AccountID,
			"balance", balance,
		)
		return nil
	}
}

// HandleGoalCompleted logs a savings goal reaching its target.
func HandleGoalCompleted(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		gc, err := as[events.GoalCompleted](e)
		if err != nil {
			logger.Error("unexpected event type", "handler", "activity.HandleGoalCompleted", "error", err)
			return err
		}
		logger.Info("🎯 Goal completed",
			"handler", "activity.HandleGoalCompleted",
			"family_id", gc.FamilyID,
			"goal_id", gc.GoalID,
			"name", gc.Name,
			"target", gc.TargetAmount,
			"current", gc.CurrentAmount,
		)
		return nil
	}
}

// HandleTransferCreated logs a transfer with both resulting balances.
func HandleTransferCreated(uow repository.UnitOfWork, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "activity.HandleTransferCreated", "event_type", e.Type())
		tc, err := as[events.TransferCreated](e)
		if err != nil {
			log.Error("unexpected event type", "error", err)
			return err
		}
		from, err := accountBalance(ctx, uow, tc.FamilyID, tc.FromAccountID)
		if err != nil {
			log.Error("failed to read source balance", "error", err)
			return err
		}
		to, err := accountBalance(ctx, uow, tc.FamilyID, tc.ToAccountID)
		if err != nil {
			log.Error("failed to read destination balance", "error", err)
			return err
		}
		log.Info("🔁 Transfer created",
			"family_id", tc.FamilyID,
			"transfer_id", tc.TransferID,
			"amount", tc.Amount,
			"from_balance", from,
			"to_balance", to,
		)
		return nil
	}
}

func accountBalance(ctx context.Context, uow repository.UnitOfWork, familyID, accountID uuid.UUID) (string, error) {
	repo, err := uow.AccountRepository()
	if err != nil {
		return "", err
	}
	b, err := repo.GetBalance(ctx, familyID, accountID)
	if err != nil {
		return "", err
	}
	return b.CurrentBalance.StringFixed(2), nil
}
