// Package family provides business logic for households and their members.
package family

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/family"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/amirasaad/famledger/pkg/service/membership"
	"github.com/google/uuid"
)

// Service provides business logic for family operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateFamily creates a family whose only member is the caller, as admin.
func (s *Service) CreateFamily(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (f *family.Family, err error) {
	log := s.logger.With("context", "CreateFamily", "user_id", userID)
	log.Debug("CreateFamily called")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		f, err = family.New(name, userID)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, f); err != nil {
			return err
		}
		f, err = repo.Get(ctx, f.ID)
		return err
	})
	if err != nil {
		log.Error("CreateFamily failed", "error", err)
		f = nil
		return
	}
	log.Info("CreateFamily successful", "family_id", f.ID)
	return
}

// ListFamilies returns the families the caller belongs to.
func (s *Service) ListFamilies(
	ctx context.Context,
	userID uuid.UUID,
) (fs []*family.Family, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		fs, err = repo.ListByUser(ctx, userID)
		return err
	})
	return
}

// GetFamily returns the family with its members.
func (s *Service) GetFamily(
	ctx context.Context,
	familyID, userID uuid.UUID,
) (f *family.Family, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		f, err = repo.Get(ctx, familyID)
		return err
	})
	if err != nil {
		f = nil
	}
	return
}

// RenameFamily changes the family name. Admins only.
func (s *Service) RenameFamily(
	ctx context.Context,
	familyID, userID uuid.UUID,
	name string,
) (f *family.Family, err error) {
	log := s.logger.With("context", "RenameFamily", "family_id", familyID, "user_id", userID)
	name = strings.TrimSpace(name)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.RequireAdmin(ctx, uow, familyID, userID); err != nil {
			return err
		}
		if name == "" || len(name) > 100 {
			return domain.Validationf("family name must be between 1 and 100 characters")
		}
		repo, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		if err := repo.Rename(ctx, familyID, name); err != nil {
			return err
		}
		f, err = repo.Get(ctx, familyID)
		return err
	})
	if err != nil {
		log.Error("RenameFamily failed", "error", err)
		f = nil
		return
	}
	log.Info("RenameFamily successful")
	return
}

// AddMember adds the user registered with email to the family. Admins only.
func (s *Service) AddMember(
	ctx context.Context,
	familyID, actorID uuid.UUID,
	email string,
	role family.Role,
) (m *family.Member, err error) {
	log := s.logger.With("context", "AddMember", "family_id", familyID, "user_id", actorID)
	if role == "" {
		role = family.RoleMember
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.RequireAdmin(ctx, uow, familyID, actorID); err != nil {
			return err
		}
		if !family.ValidRole(role) {
			return domain.Validationf("unknown role %q", role)
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			return err
		}
		repo, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		m = &family.Member{
			FamilyID:  familyID,
			UserID:    u.ID,
			Role:      role,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: time.Now().UTC(),
		}
		return repo.AddMember(ctx, m)
	})
	if err != nil {
		log.Error("AddMember failed", "error", err)
		m = nil
		return
	}
	log.Info("AddMember successful", "member_id", m.UserID)
	return
}
