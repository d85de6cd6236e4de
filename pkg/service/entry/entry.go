// Package entry provides business logic for income and expense entries.
package entry

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/amirasaad/famledger/pkg/service/membership"
	"github.com/google/uuid"
)

var (
	// ErrForeignAccount rejects an accountId that is not one of the family's accounts.
	ErrForeignAccount = domain.Validationf("account does not belong to this family")
	// ErrForeignTag rejects tag ids that are not the family's tags.
	ErrForeignTag = domain.Validationf("one or more tags do not belong to this family")
)

// Service provides business logic for ledger entries of both kinds.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateEntry records an income or expense on one of the family's accounts.
func (s *Service) CreateEntry(
	ctx context.Context,
	kind ledger.Kind,
	familyID, userID uuid.UUID,
	in dto.EntryCreate,
) (e *ledger.Entry, err error) {
	log := s.logger.With("context", "CreateEntry", "kind", kind, "family_id", familyID, "user_id", userID)
	log.Debug("CreateEntry called", "account_id", in.AccountID, "amount", in.Amount)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		if err := requireAccount(ctx, uow, familyID, in.AccountID); err != nil {
			return err
		}
		tags, err := resolveTags(ctx, uow, familyID, in.TagIDs)
		if err != nil {
			return err
		}
		params := ledger.NewEntryParams{
			Kind:        kind,
			FamilyID:    familyID,
			AccountID:   in.AccountID,
			UserID:      userID,
			Amount:      in.Amount,
			Description: in.Description,
			Label:       label(kind, in.Source, in.Category),
			Tags:        tags,
			Recurrence: ledger.Recurrence{
				IsRecurring: in.IsRecurring,
				Type:        ledger.RecurringType(in.RecurringType),
				Day:         in.RecurringDay,
				EndDate:     in.RecurringEndDate,
			},
		}
		if in.Date != nil {
			params.Date = in.Date.UTC()
		}
		created, err := ledger.NewEntry(params)
		if err != nil {
			return err
		}
		repo, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, created); err != nil {
			return err
		}
		e = created
		return nil
	})
	if err != nil {
		log.Error("CreateEntry failed", "error", err)
		e = nil
		return
	}
	log.Info("CreateEntry successful", "entry_id", e.ID)
	return
}

// ListEntries returns the family's entries of kind matching filter, newest first.
func (s *Service) ListEntries(
	ctx context.Context,
	kind ledger.Kind,
	familyID, userID uuid.UUID,
	filter dto.EntryFilter,
) (es []*ledger.Entry, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		es, err = repo.List(ctx, kind, familyID, filter)
		return err
	})
	return
}

// GetEntry returns one entry with its tags.
func (s *Service) GetEntry(
	ctx context.Context,
	kind ledger.Kind,
	familyID, userID, entryID uuid.UUID,
) (e *ledger.Entry, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		e, err = repo.Get(ctx, kind, familyID, entryID)
		return err
	})
	if err != nil {
		e = nil
	}
	return
}

// ReplaceEntry overwrites description, amount, date and label, and replaces
// the tag set wholesale.
func (s *Service) ReplaceEntry(
	ctx context.Context,
	kind ledger.Kind,
	familyID, userID, entryID uuid.UUID,
	in dto.EntryReplace,
) (e *ledger.Entry, err error) {
	log := s.logger.With("context", "ReplaceEntry", "kind", kind, "family_id", familyID, "entry_id", entryID)
	log.Debug("ReplaceEntry called")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, kind, familyID, entryID)
		if err != nil {
			return err
		}
		tags, err := resolveTags(ctx, uow, familyID, in.TagIDs)
		if err != nil {
			return err
		}
		r := ledger.EntryReplace{
			Description: in.Description,
			Amount:      in.Amount,
			Label:       label(kind, in.Source, in.Category),
			Tags:        tags,
		}
		if in.Date != nil {
			r.Date = in.Date.UTC()
		}
		if err := current.Replace(r); err != nil {
			return err
		}
		if err := repo.Update(ctx, current); err != nil {
			return err
		}
		e = current
		return nil
	})
	if err != nil {
		log.Error("ReplaceEntry failed", "error", err)
		e = nil
		return
	}
	log.Info("ReplaceEntry successful")
	return
}

// DeleteEntry removes the entry and its tag links.
func (s *Service) DeleteEntry(
	ctx context.Context,
	kind ledger.Kind,
	familyID, userID, entryID uuid.UUID,
) error {
	log := s.logger.With("context", "DeleteEntry", "kind", kind, "family_id", familyID, "entry_id", entryID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, kind, familyID, entryID)
	})
	if err != nil {
		log.Error("DeleteEntry failed", "error", err)
		return err
	}
	log.Info("DeleteEntry successful")
	return nil
}

func label(kind ledger.Kind, source, category string) string {
	if kind == ledger.Income {
		return source
	}
	return category
}

func requireAccount(ctx context.Context, uow repository.UnitOfWork, familyID, accountID uuid.UUID) error {
	repo, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	if _, err := repo.Get(ctx, familyID, accountID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrForeignAccount
		}
		return err
	}
	return nil
}

func resolveTags(ctx context.Context, uow repository.UnitOfWork, familyID uuid.UUID, ids []uuid.UUID) ([]ledger.Tag, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	repo, err := uow.TagRepository()
	if err != nil {
		return nil, err
	}
	tags, err := repo.GetMany(ctx, familyID, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrForeignTag
	}
	return tags, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
