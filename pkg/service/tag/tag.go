// Package tag provides business logic for family tags.
package tag

import (
	"context"
	"log/slog"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/amirasaad/famledger/pkg/service/membership"
	"github.com/google/uuid"
)

// Service provides business logic for tags.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateTag adds a tag; names are unique inside a family.
func (s *Service) CreateTag(
	ctx context.Context,
	familyID, userID uuid.UUID,
	in dto.TagCreate,
) (t *ledger.Tag, err error) {
	log := s.logger.With("context", "CreateTag", "family_id", familyID, "user_id", userID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		created, err := ledger.NewTag(familyID, in.Name, in.Color)
		if err != nil {
			return err
		}
		repo, err := uow.TagRepository()
		if err != nil {
			return err
		}
		taken, err := repo.NameTaken(ctx, familyID, created.Name)
		if err != nil {
			return err
		}
		if taken {
			return ledger.ErrTagNameTaken
		}
		if err := repo.Create(ctx, created); err != nil {
			return err
		}
		t = created
		return nil
	})
	if err != nil {
		log.Error("CreateTag failed", "error", err)
		t = nil
		return
	}
	log.Info("CreateTag successful", "tag_id", t.ID)
	return
}

// ListTags returns the family's tags.
func (s *Service) ListTags(ctx context.Context, familyID, userID uuid.UUID) (ts []ledger.Tag, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.TagRepository()
		if err != nil {
			return err
		}
		ts, err = repo.List(ctx, familyID)
		return err
	})
	return
}

// DeleteTag removes a tag and detaches it from every entry.
func (s *Service) DeleteTag(ctx context.Context, familyID, userID, tagID uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.TagRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, familyID, tagID)
	})
	if err != nil {
		s.logger.Error("DeleteTag failed", "context", "DeleteTag", "tag_id", tagID, "error", err)
	}
	return err
}
