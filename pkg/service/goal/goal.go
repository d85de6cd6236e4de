// Package goal provides business logic for savings goals and their
// contribution ledger.
package goal

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/amirasaad/famledger/pkg/domain/goal"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/eventbus"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/amirasaad/famledger/pkg/service/membership"
	"github.com/google/uuid"
)

// Service provides business logic for savings goals.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new Service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// CreateGoal stores a goal with nothing saved yet.
func (s *Service) CreateGoal(
	ctx context.Context,
	familyID, userID uuid.UUID,
	in dto.GoalCreate,
) (g *goal.SavingsGoal, err error) {
	log := s.logger.With("context", "CreateGoal", "family_id", familyID, "user_id", userID)
	log.Debug("CreateGoal called", "name", in.Name)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		created, err := goal.NewGoal(goal.NewGoalParams{
			FamilyID:        familyID,
			CreatedBy:       userID,
			Name:            in.Name,
			Description:     in.Description,
			TargetAmount:    in.TargetAmount,
			TargetDate:      in.TargetDate,
			Priority:        goal.Priority(in.Priority),
			IsEmergencyFund: in.IsEmergencyFund,
			MonthlyExpenses: in.MonthlyExpenses,
			TargetMonths:    in.TargetMonths,
		})
		if err != nil {
			return err
		}
		repo, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, created); err != nil {
			return err
		}
		g = created
		return nil
	})
	if err != nil {
		log.Error("CreateGoal failed", "error", err)
		g = nil
		return
	}
	log.Info("CreateGoal successful", "goal_id", g.ID)
	return
}

// ListGoals returns the family's goals.
func (s *Service) ListGoals(ctx context.Context, familyID, userID uuid.UUID) (gs []*goal.SavingsGoal, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		gs, err = repo.List(ctx, familyID)
		return err
	})
	return
}

// GetGoal returns one goal.
func (s *Service) GetGoal(ctx context.Context, familyID, userID, goalID uuid.UUID) (g *goal.SavingsGoal, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		g, err = repo.Get(ctx, familyID, goalID)
		return err
	})
	if err != nil {
		g = nil
	}
	return
}

// UpdateGoal applies a sparse update. The saved amount and the completion
// flag are never touched here.
func (s *Service) UpdateGoal(
	ctx context.Context,
	familyID, userID, goalID uuid.UUID,
	in dto.GoalUpdate,
) (g *goal.SavingsGoal, err error) {
	log := s.logger.With("context", "UpdateGoal", "family_id", familyID, "goal_id", goalID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		current, err := repo.GetForUpdate(ctx, familyID, goalID)
		if err != nil {
			return err
		}
		if in.Name.Set {
			current.Name = strings.TrimSpace(in.Name.Value)
		}
		if in.Description.Set {
			current.Description = strings.TrimSpace(in.Description.Value)
		}
		if in.TargetAmount.HasValue() {
			current.TargetAmount = in.TargetAmount.Value
		}
		if in.TargetDate.Set {
			current.TargetDate = in.TargetDate.Ptr()
		}
		if in.Priority.HasValue() {
			current.Priority = goal.Priority(in.Priority.Value)
		}
		if in.MonthlyExpenses.Set {
			current.MonthlyExpenses = in.MonthlyExpenses.Ptr()
		}
		if in.TargetMonths.Set {
			current.TargetMonths = in.TargetMonths.Ptr()
		}
		if err := current.Validate(); err != nil {
			return err
		}
		current.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, current); err != nil {
			return err
		}
		g = current
		return nil
	})
	if err != nil {
		log.Error("UpdateGoal failed", "error", err)
		g = nil
		return
	}
	log.Info("UpdateGoal successful")
	return
}

// DeleteGoal removes the goal and its contributions.
func (s *Service) DeleteGoal(ctx context.Context, familyID, userID, goalID uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, familyID, goalID)
	})
	if err != nil {
		s.logger.Error("DeleteGoal failed", "context", "DeleteGoal", "goal_id", goalID, "error", err)
	}
	return err
}

// Contribute records a contribution and increments the goal under a row
// lock. The goal is marked completed in the same transaction the first time
// the saved amount reaches the target.
func (s *Service) Contribute(
	ctx context.Context,
	familyID, userID, goalID uuid.UUID,
	in dto.ContributionCreate,
) (c *goal.Contribution, err error) {
	log := s.logger.With("context", "Contribute", "family_id", familyID, "goal_id", goalID, "user_id", userID)
	log.Debug("Contribute called", "amount", in.Amount)
	var completed *goal.SavingsGoal
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		if in.EntradaID != nil {
			entries, err := uow.EntryRepository()
			if err != nil {
				return err
			}
			if _, err := entries.Get(ctx, ledger.Income, familyID, *in.EntradaID); err != nil {
				return err
			}
		}
		repo, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		g, err := repo.GetForUpdate(ctx, familyID, goalID)
		if err != nil {
			return err
		}
		var date time.Time
		if in.Date != nil {
			date = in.Date.UTC()
		}
		created, err := goal.NewContribution(g, userID, in.Amount, in.Description, date, in.EntradaID)
		if err != nil {
			return err
		}
		justCompleted, err := g.Contribute(created.Amount, created.CreatedAt)
		if err != nil {
			return err
		}
		if err := repo.AddContribution(ctx, created); err != nil {
			return err
		}
		if err := repo.Update(ctx, g); err != nil {
			return err
		}
		if justCompleted {
			completed = g
		}
		c = created
		return nil
	})
	if err != nil {
		log.Error("Contribute failed", "error", err)
		c = nil
		return
	}
	log.Info("Contribute successful", "contribution_id", c.ID)
	if completed != nil {
		log.Info("Goal completed", "current_amount", completed.CurrentAmount)
		eventbus.EmitAll(ctx, s.bus, log, events.GoalCompleted{
			FlowEvent:     events.NewFlowEvent(familyID, userID),
			GoalID:        completed.ID,
			Name:          completed.Name,
			TargetAmount:  completed.TargetAmount,
			CurrentAmount: completed.CurrentAmount,
		})
	}
	return
}

// ListContributions returns the contributions of a goal.
func (s *Service) ListContributions(
	ctx context.Context,
	familyID, userID, goalID uuid.UUID,
) (cs []*goal.Contribution, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, familyID, goalID); err != nil {
			return err
		}
		cs, err = repo.ListContributions(ctx, goalID)
		return err
	})
	return
}
