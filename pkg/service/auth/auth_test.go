package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/service/auth"
	"github.com/amirasaad/famledger/pkg/testutils"
	"github.com/amirasaad/famledger/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	utils.PasswordCost = bcrypt.MinCost
}

func newJWTService(t *testing.T) (*auth.Service, *config.Jwt) {
	uow, _ := testutils.NewTestUoW(t)
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour}
	return auth.NewWithJWT(uow, cfg, testutils.DiscardLogger()), cfg
}

func TestLoginAndToken(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour}
	svc := auth.NewWithJWT(uow, cfg, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "alice")
	ctx := context.Background()

	got, err := svc.Login(ctx, "  "+u.Email+" ", testutils.Password)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	signed, err := svc.GenerateToken(ctx, got)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) { return []byte(cfg.Secret), nil })
	require.NoError(t, err)
	id, err := svc.GetCurrentUserId(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := auth.NewWithJWT(uow, &config.Jwt{Secret: "s", Expiry: time.Hour}, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "bob")
	ctx := context.Background()

	for name, tc := range map[string][2]string{
		"wrong password": {u.Email, "nope-nope"},
		"unknown email":  {"ghost@example.com", testutils.Password},
		"not an email":   {"bob", testutils.Password},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc[0], tc[1])
			assert.True(t, errors.Is(err, domain.ErrUnauthorized))
		})
	}
}

func TestGetCurrentUserIdRejectsMalformedClaims(t *testing.T) {
	svc, _ := newJWTService(t)

	_, err := svc.GetCurrentUserId(nil)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "not-a-uuid"})
	_, err = svc.GetCurrentUserId(token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	token = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": uuid.NewString()})
	_, err = svc.GetCurrentUserId(token)
	assert.NoError(t, err)
}

func TestBasicStrategy(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := auth.NewWithBasic(uow, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "carol")

	got, err := svc.Login(context.Background(), u.Email, testutils.Password)
	require.NoError(t, err)
	token, err := svc.GenerateToken(context.Background(), got)
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = svc.GetCurrentUserId(&jwt.Token{})
	assert.Error(t, err)
}

func TestTokenClaims(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	cfg := &config.Jwt{Secret: "test-secret", Expiry: 2 * time.Hour}
	svc := auth.NewWithJWT(uow, cfg, testutils.DiscardLogger())
	u := testutils.CreateUser(t, uow, "dora")

	signed, err := svc.GenerateToken(context.Background(), u)
	require.NoError(t, err)

	var claims auth.Claims
	token, err := jwt.ParseWithClaims(signed, &claims, func(*jwt.Token) (any, error) { return []byte(cfg.Secret), nil })
	require.NoError(t, err)
	assert.Equal(t, "famledger", claims.Issuer)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)

	id, err := svc.GetCurrentUserId(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	_, err = jwt.Parse(signed, func(*jwt.Token) (any, error) { return []byte("other-secret"), nil })
	assert.Error(t, err)
}

func TestGetCurrentUserIdFallsBackToSubject(t *testing.T) {
	svc, _ := newJWTService(t)
	want := uuid.New()

	id, err := svc.GetCurrentUserId(jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": want.String()}))
	require.NoError(t, err)
	assert.Equal(t, want, id)

	_, err = svc.GetCurrentUserId(jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": uuid.Nil.String()}))
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
