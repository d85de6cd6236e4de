// Package testutils builds the full HTTP application over a test database
// and offers request helpers for handler tests.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/famledger/infra"
	infraeventbus "github.com/amirasaad/famledger/infra/eventbus"
	infrarepo "github.com/amirasaad/famledger/infra/repository"
	"github.com/amirasaad/famledger/pkg/app"
	"github.com/amirasaad/famledger/pkg/config"
	pkgtestutils "github.com/amirasaad/famledger/pkg/testutils"
	"github.com/amirasaad/famledger/webapi"
	"github.com/amirasaad/famledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestApp is the HTTP application wired to a private database and an
// in-memory event bus.
type TestApp struct {
	t    testing.TB
	App  *fiber.App
	Core *app.App
	Bus  *infraeventbus.MemoryEventBus
	UoW  *infrarepo.UoW
	DB   *gorm.DB
}

// TestConfig returns a configuration with JWT auth and a generous rate limit.
func TestConfig() *config.App {
	return &config.App{
		Env: "test",
		Auth: &config.Auth{
			Strategy: "jwt",
			Jwt:      &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
	}
}

// NewTestApp builds the application over a fresh sqlite database.
func NewTestApp(t testing.TB) *TestApp {
	t.Helper()
	return NewTestAppWithDB(t, pkgtestutils.NewTestDB(t), TestConfig())
}

// NewTestAppWithDB builds the application over an already migrated db.
func NewTestAppWithDB(t testing.TB, db *gorm.DB, cfg *config.App) *TestApp {
	t.Helper()
	logger := pkgtestutils.DiscardLogger()
	uow := infrarepo.NewUoW(db)
	bus := infraeventbus.NewWithMemory(logger)
	core := app.New(&app.Deps{Uow: uow, EventBus: bus, Logger: logger, DB: db}, cfg)
	return &TestApp{t: t, App: webapi.SetupApp(core), Core: core, Bus: bus, UoW: uow, DB: db}
}

// WithT returns a copy of a that reports failures to t.
func (a *TestApp) WithT(t testing.TB) *TestApp {
	c := *a
	c.t = t
	return &c
}

// MakeRequest is a helper for making HTTP requests in tests
func (a *TestApp) MakeRequest(method, path, body, token string) *http.Response {
	a.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.App.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

// JSON marshals v for use as a request body.
func JSON(t testing.TB, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// Register creates a user through POST /user and returns its id and email.
func (a *TestApp) Register(name string) (uuid.UUID, string) {
	a.t.Helper()
	email := fmt.Sprintf("%s_%s@example.com", name, uuid.NewString()[:8])
	resp := a.MakeRequest(http.MethodPost, "/user", JSON(a.t, fiber.Map{
		"email": email, "name": name, "password": pkgtestutils.Password,
	}), "")
	require.Equal(a.t, fiber.StatusCreated, resp.StatusCode)
	created := Data[struct {
		ID uuid.UUID `json:"id"`
	}](a.t, resp)
	return created.ID, email
}

// Login exchanges credentials for a token through POST /auth/login.
func (a *TestApp) Login(email string) string {
	a.t.Helper()
	resp := a.MakeRequest(http.MethodPost, "/auth/login", JSON(a.t, fiber.Map{
		"identity": email, "password": pkgtestutils.Password,
	}), "")
	require.Equal(a.t, fiber.StatusOK, resp.StatusCode)
	token := Data[struct {
		Token string `json:"token"`
	}](a.t, resp).Token
	require.NotEmpty(a.t, token)
	return token
}

// NewUser registers and logs in a user, returning its token and id.
func (a *TestApp) NewUser(name string) (string, uuid.UUID) {
	a.t.Helper()
	id, email := a.Register(name)
	return a.Login(email), id
}

// NewFamily creates a family owned by the token's user.
func (a *TestApp) NewFamily(token string) uuid.UUID {
	a.t.Helper()
	resp := a.MakeRequest(http.MethodPost, "/families", `{"name":"Silva"}`, token)
	require.Equal(a.t, fiber.StatusCreated, resp.StatusCode)
	return Data[struct {
		ID uuid.UUID `json:"id"`
	}](a.t, resp).ID
}

// Data decodes the data field of a success envelope.
func Data[T any](t testing.TB, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var envelope struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Data    T      `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

// Problem decodes a problem details body.
func Problem(t testing.TB, resp *http.Response) common.ProblemDetails {
	t.Helper()
	defer resp.Body.Close()
	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

// E2ETestSuite provides a test suite with a real Postgres database using Testcontainers
type E2ETestSuite struct {
	suite.Suite
	pgContainer *tcpostgres.PostgresContainer
	App         *TestApp
}

// SetupSuite starts postgres, runs the SQL migrations and builds the app.
func (s *E2ETestSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("skipping postgres container suite in short mode")
	}
	ctx := context.Background()
	pg, err := tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		s.T().Skipf("docker unavailable: %v", err)
	}
	s.pgContainer = pg

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)
	cfg := TestConfig()
	cfg.DB = &config.DB{Url: dsn}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	s.Require().NoError(err)
	s.Require().NoError(infra.Migrate(db, infra.Up))

	s.App = NewTestAppWithDB(s.T(), db, cfg)
}

// TearDownSuite cleans up the test suite resources
func (s *E2ETestSuite) TearDownSuite() {
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}
