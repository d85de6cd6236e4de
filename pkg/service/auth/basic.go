package auth

import (
	"context"

	"github.com/amirasaad/famledger/pkg/domain/user"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/google/uuid"
)

// BasicAuthStrategy checks a password and issues nothing. There is no
// session to read a current user from.
type BasicAuthStrategy struct {
	uow repository.UnitOfWork
}

func NewBasicAuthStrategy(uow repository.UnitOfWork) *BasicAuthStrategy {
	return &BasicAuthStrategy{uow: uow}
}

func (s *BasicAuthStrategy) Login(ctx context.Context, identity, password string) (*user.User, error) {
	return checkCredentials(ctx, s.uow, identity, password)
}

func (s *BasicAuthStrategy) GetCurrentUserID(context.Context) (uuid.UUID, error) {
	return uuid.Nil, user.ErrUserUnauthorized
}

func (s *BasicAuthStrategy) GenerateToken(context.Context, *user.User) (string, error) {
	return "", nil
}
