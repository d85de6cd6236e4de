// Package task provides business logic for household tasks: creation with a
// linked or freshly created recurring template, sparse updates, and the
// completion flow that settles a task into a ledger entry.
//
// Completion runs in one transaction holding a row lock on the task: the
// status write, the template read and the entry insert commit together or
// not at all, and a second completion is rejected so a task settles at most
// once.
package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/common"
	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/domain/task"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/eventbus"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/amirasaad/famledger/pkg/service/membership"
	"github.com/google/uuid"
)

var (
	// ErrAssigneeNotMember rejects assigning a task to someone outside the family.
	ErrAssigneeNotMember = domain.Validationf("assignee is not a member of this family")
	// ErrTemplateNotFound rejects linking a template that is not one of the family's entries.
	ErrTemplateNotFound = domain.Validationf("linked recurring transaction not found in this family")
	// ErrForeignAccount rejects creating a template on an account outside the family.
	ErrForeignAccount = domain.Validationf("account does not belong to this family")
)

// Service provides business logic for tasks.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new Service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// CreateTask stores a task. In link mode it points at an existing recurring
// entry; in create mode a recurring template is created from the task and
// linked to it. Both happen in one transaction.
func (s *Service) CreateTask(
	ctx context.Context,
	familyID, userID uuid.UUID,
	in dto.TaskCreate,
) (t *task.Task, err error) {
	log := s.logger.With("context", "CreateTask", "family_id", familyID, "user_id", userID)
	log.Debug("CreateTask called", "title", in.Title, "mode", in.TransactionMode)
	mode := task.TransactionMode(in.TransactionMode)
	if !task.ValidMode(mode) {
		err = domain.Validationf("unknown transactionMode %q", in.TransactionMode)
		log.Error("CreateTask failed", "error", err)
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		if err := requireAssignee(ctx, uow, familyID, in.AssigneeID); err != nil {
			return err
		}
		params := task.NewTaskParams{
			FamilyID:                familyID,
			CreatedBy:               userID,
			AssigneeID:              in.AssigneeID,
			Title:                   in.Title,
			Description:             in.Description,
			Status:                  in.Status,
			Priority:                task.Priority(in.Priority),
			DueDate:                 in.DueDate,
			Type:                    task.Type(in.Type),
			Amount:                  in.Amount,
			AutoGenerateTransaction: in.AutoGenerateTransaction,
			Recurrence: ledger.Recurrence{
				IsRecurring: in.IsRecurring,
				Type:        ledger.RecurringType(in.RecurringType),
				Day:         in.RecurringDay,
				EndDate:     in.RecurringEndDate,
			},
		}
		if mode != task.ModeCreate {
			params.LinkedRecurringEntradaID = in.LinkedRecurringEntradaID
			params.LinkedRecurringSaidaID = in.LinkedRecurringSaidaID
		}
		created, err := task.New(params)
		if err != nil {
			return err
		}
		if err := requireTemplate(ctx, uow, created); err != nil {
			return err
		}
		tasks, err := uow.TaskRepository()
		if err != nil {
			return err
		}
		if err := tasks.Create(ctx, created); err != nil {
			return err
		}
		if mode == task.ModeCreate {
			if err := s.createTemplate(ctx, uow, created, in.AccountID, userID); err != nil {
				return err
			}
		}
		t, err = tasks.Get(ctx, familyID, created.ID)
		return err
	})
	if err != nil {
		log.Error("CreateTask failed", "error", err)
		t = nil
		return
	}
	log.Info("CreateTask successful", "task_id", t.ID)
	return
}

func (s *Service) createTemplate(
	ctx context.Context,
	uow repository.UnitOfWork,
	t *task.Task,
	accountID *uuid.UUID,
	actor uuid.UUID,
) error {
	var acc uuid.UUID
	if accountID != nil {
		acc = *accountID
	}
	tpl, err := t.NewTemplate(acc, actor, time.Now().UTC())
	if err != nil || tpl == nil {
		return err
	}
	accounts, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	if _, err := accounts.Get(ctx, t.FamilyID, acc); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrForeignAccount
		}
		return err
	}
	entries, err := uow.EntryRepository()
	if err != nil {
		return err
	}
	if err := entries.Create(ctx, tpl); err != nil {
		return err
	}
	t.LinkTemplate(tpl)
	tasks, err := uow.TaskRepository()
	if err != nil {
		return err
	}
	return tasks.Update(ctx, t)
}

// ListTasks returns the family's tasks matching filter.
func (s *Service) ListTasks(
	ctx context.Context,
	familyID, userID uuid.UUID,
	filter dto.TaskFilter,
) (ts []*task.Task, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.TaskRepository()
		if err != nil {
			return err
		}
		ts, err = repo.List(ctx, familyID, filter)
		return err
	})
	return
}

// GetTask returns one task with its relations.
func (s *Service) GetTask(ctx context.Context, familyID, userID, taskID uuid.UUID) (t *task.Task, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.TaskRepository()
		if err != nil {
			return err
		}
		t, err = repo.Get(ctx, familyID, taskID)
		return err
	})
	if err != nil {
		t = nil
	}
	return
}

// UpdateTask applies a sparse update. When the body moves the task into
// completed, the other present fields are applied first and the task is
// then completed and settled.
func (s *Service) UpdateTask(
	ctx context.Context,
	familyID, userID, taskID uuid.UUID,
	in dto.TaskUpdate,
) (t *task.Task, err error) {
	log := s.logger.With("context", "UpdateTask", "family_id", familyID, "task_id", taskID, "user_id", userID)
	patch := in.Patch()
	completes := patch.Completes()
	log.Debug("UpdateTask called", "completes", completes)
	var settled *ledger.Entry
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		if patch.AssigneeID.HasValue() {
			if err := requireAssignee(ctx, uow, familyID, &patch.AssigneeID.Value); err != nil {
				return err
			}
		}
		tasks, err := uow.TaskRepository()
		if err != nil {
			return err
		}
		current, err := tasks.GetForUpdate(ctx, familyID, taskID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if !completes {
			if err := current.Apply(patch, now); err != nil {
				return err
			}
			if err := tasks.Update(ctx, current); err != nil {
				return err
			}
			t, err = tasks.Get(ctx, familyID, taskID)
			return err
		}

		if current.IsCompleted() {
			return task.ErrAlreadyCompleted
		}
		fields := patch
		fields.Status = common.Optional[task.Status]{}
		if err := current.Apply(fields, now); err != nil {
			return err
		}
		if err := current.Complete(now); err != nil {
			return err
		}
		entry, err := current.Settle(task.Completion{
			ActualAmount:        in.ActualAmount,
			GenerateTransaction: in.GenerateTransaction,
		}, userID, now)
		if err != nil {
			return err
		}
		if entry != nil {
			entries, err := uow.EntryRepository()
			if err != nil {
				return err
			}
			if err := entries.Create(ctx, entry); err != nil {
				return err
			}
			settled = entry
		}
		if err := tasks.Update(ctx, current); err != nil {
			return err
		}
		t, err = tasks.Get(ctx, familyID, taskID)
		return err
	})
	if err != nil {
		log.Error("UpdateTask failed", "error", err)
		t, settled = nil, nil
		return
	}
	if !completes {
		log.Info("UpdateTask successful")
		return
	}
	log.Info("Task completed", "settled", settled != nil)
	evs := []events.Event{events.TaskCompleted{
		FlowEvent: events.NewFlowEvent(familyID, userID),
		TaskID:    t.ID,
		Title:     t.Title,
	}}
	if settled != nil {
		evs = append(evs, events.TaskSettled{
			FlowEvent: events.NewFlowEvent(familyID, userID),
			TaskID:    t.ID,
			EntryID:   settled.ID,
			EntryKind: string(settled.Kind),
			AccountID: settled.AccountID,
			Amount:    settled.Amount,
		})
	}
	eventbus.EmitAll(ctx, s.bus, log, evs...)
	return
}

// DeleteTask hard-deletes a task. Entries it generated keep their
// informational linkedTaskId.
func (s *Service) DeleteTask(ctx context.Context, familyID, userID, taskID uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.TaskRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, familyID, taskID)
	})
	if err != nil {
		s.logger.Error("DeleteTask failed", "context", "DeleteTask", "task_id", taskID, "error", err)
		return err
	}
	s.logger.Info("DeleteTask successful", "context", "DeleteTask", "task_id", taskID)
	return nil
}

func requireAssignee(ctx context.Context, uow repository.UnitOfWork, familyID uuid.UUID, assigneeID *uuid.UUID) error {
	if assigneeID == nil {
		return nil
	}
	repo, err := uow.FamilyRepository()
	if err != nil {
		return err
	}
	if _, err := repo.GetMember(ctx, familyID, *assigneeID); err != nil {
		// GetMember reports an outsider as forbidden; here it is a bad field.
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
			return ErrAssigneeNotMember
		}
		return err
	}
	return nil
}

// requireTemplate checks that a linked template id resolves to an entry of
// the matching kind in the family.
func requireTemplate(ctx context.Context, uow repository.UnitOfWork, t *task.Task) error {
	var kind ledger.Kind
	var id uuid.UUID
	switch {
	case t.LinkedRecurringSaidaID != nil:
		kind, id = ledger.Expense, *t.LinkedRecurringSaidaID
	case t.LinkedRecurringEntradaID != nil:
		kind, id = ledger.Income, *t.LinkedRecurringEntradaID
	default:
		return nil
	}
	entries, err := uow.EntryRepository()
	if err != nil {
		return err
	}
	if _, err := entries.Get(ctx, kind, t.FamilyID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return nil
}
