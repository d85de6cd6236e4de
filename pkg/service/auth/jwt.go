package auth

import (
	"context"
	"time"

	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/domain/user"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "famledger"

// Claims is the payload of an access token. The user id travels both as
// sub and as user_id.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTStrategy authenticates with a password and then with signed tokens.
type JWTStrategy struct {
	uow repository.UnitOfWork
	cfg *config.Jwt
	now func() time.Time
}

func NewJWTStrategy(uow repository.UnitOfWork, cfg *config.Jwt) *JWTStrategy {
	return &JWTStrategy{uow: uow, cfg: cfg, now: time.Now}
}

func (s *JWTStrategy) Login(ctx context.Context, identity, password string) (*user.User, error) {
	return checkCredentials(ctx, s.uow, identity, password)
}

func (s *JWTStrategy) GenerateToken(_ context.Context, u *user.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

// GetCurrentUserID accepts both claim shapes: the map the fiber middleware
// decodes into and the typed Claims.
func (s *JWTStrategy) GetCurrentUserID(ctx context.Context) (uuid.UUID, error) {
	token, ok := ctx.Value(tokenContextKey).(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	var raw string
	switch c := token.Claims.(type) {
	case jwt.MapClaims:
		raw, _ = c["user_id"].(string)
		if raw == "" {
			raw, _ = c["sub"].(string)
		}
	case *Claims:
		raw = c.UserID
		if raw == "" {
			raw = c.Subject
		}
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return id, nil
}
