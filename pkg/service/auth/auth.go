// Package auth resolves who is calling: it checks credentials, issues tokens
// and reads the user back out of a verified token.
package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/domain/user"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/amirasaad/famledger/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const tokenContextKey contextKey = "user"

// dummyHash is compared against when the identity is unknown so both paths
// cost one bcrypt check.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Strategy is one way of authenticating a family member.
type Strategy interface {
	Login(ctx context.Context, identity, password string) (*user.User, error)
	GetCurrentUserID(ctx context.Context) (uuid.UUID, error)
	GenerateToken(ctx context.Context, u *user.User) (string, error)
}

type Service struct {
	strategy Strategy
	logger   *slog.Logger
}

func New(strategy Strategy, logger *slog.Logger) *Service {
	return &Service{strategy: strategy, logger: logger.With("service", "auth")}
}

// NewWithBasic checks passwords only; the CLI uses it.
func NewWithBasic(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return New(NewBasicAuthStrategy(uow), logger)
}

// NewWithJWT checks passwords and issues HS256 tokens signed with cfg.Secret.
func NewWithJWT(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return New(NewJWTStrategy(uow, cfg), logger)
}

// GetCurrentUserId reads the caller out of a token the middleware verified.
func (s *Service) GetCurrentUserId(token *jwt.Token) (uuid.UUID, error) {
	ctx := context.WithValue(context.Background(), tokenContextKey, token)
	id, err := s.strategy.GetCurrentUserID(ctx)
	if err != nil {
		s.logger.Warn("could not resolve current user", "error", err)
		return uuid.Nil, err
	}
	return id, nil
}

func (s *Service) Login(ctx context.Context, identity, password string) (*user.User, error) {
	u, err := s.strategy.Login(ctx, identity, password)
	if err != nil {
		s.logger.Warn("login failed", "identity", identity, "error", err)
		return nil, err
	}
	s.logger.Info("login successful", "user_id", u.ID)
	return u, nil
}

func (s *Service) GenerateToken(ctx context.Context, u *user.User) (string, error) {
	token, err := s.strategy.GenerateToken(ctx, u)
	if err != nil {
		s.logger.Error("failed to sign token", "user_id", u.ID, "error", err)
		return "", err
	}
	return token, nil
}

// checkCredentials looks the identity up by email and verifies the password.
// Every failure is the same ErrUserUnauthorized so callers cannot probe for
// registered emails.
func checkCredentials(
	ctx context.Context,
	uow repository.UnitOfWork,
	identity, password string,
) (*user.User, error) {
	identity = strings.ToLower(strings.TrimSpace(identity))
	if !utils.IsEmail(identity) {
		_ = utils.CheckPasswordHash(password, dummyHash)
		return nil, user.ErrUserUnauthorized
	}
	var found *user.User
	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := repo.GetByEmail(ctx, identity)
		if err != nil {
			_ = utils.CheckPasswordHash(password, dummyHash)
			return user.ErrUserUnauthorized
		}
		if !utils.CheckPasswordHash(password, u.Password) {
			return user.ErrUserUnauthorized
		}
		found = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
