// Package user provides business logic for user registration and lookup.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/user"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/google/uuid"
)

// ErrEmailTaken is returned when registering an email that is already in use.
var ErrEmailTaken = fmt.Errorf("%w: email already registered", domain.ErrAlreadyExists)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// CreateUser registers a new user in a transaction.
func (s *Service) CreateUser(
	ctx context.Context,
	in dto.UserCreate,
) (u *user.User, err error) {
	log := s.logger.With("context", "CreateUser")
	log.Debug("CreateUser called", "email", in.Email)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = user.New(in.Email, in.Name, in.Password)
		if err != nil {
			return err
		}
		u.Image = in.Image
		exists, err := repo.ExistsByEmail(ctx, u.Email)
		if err != nil {
			return err
		}
		if exists {
			return ErrEmailTaken
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		log.Error("CreateUser failed", "error", err)
		u = nil
		return
	}
	log.Info("CreateUser successful", "userID", u.ID)
	return
}

// GetUser returns the identity of userID.
func (s *Service) GetUser(
	ctx context.Context,
	userID uuid.UUID,
) (id *user.Identity, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := repo.Get(ctx, userID)
		if err != nil {
			return err
		}
		ident := u.Identity()
		id = &ident
		return nil
	})
	return
}

// GetUserByEmail returns the user registered with email.
func (s *Service) GetUserByEmail(
	ctx context.Context,
	email string,
) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}
