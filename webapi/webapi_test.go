package webapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/famledger/pkg/testutils"
	webtestutils "github.com/amirasaad/famledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAndRoutes(t *testing.T) {
	app := webtestutils.NewTestApp(t)

	resp := app.MakeRequest(http.MethodGet, "/", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = app.MakeRequest(http.MethodGet, "/debug/routes", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var routes []struct {
		Method string `json:"method"`
		Path   string `json:"path"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&routes))
	registered := map[string]bool{}
	for _, r := range routes {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /auth/login",
		"PATCH /families/:familyId/tasks/:taskId",
		"POST /families/:familyId/goals/:goalId/contributions",
		"POST /families/:familyId/transfers",
		"GET /families/:familyId/expenses",
		"GET /families/:familyId/reports/export",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestUnknownRouteIsProblem(t *testing.T) {
	app := webtestutils.NewTestApp(t)
	resp := app.MakeRequest(http.MethodGet, "/nope", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
}

func TestRateLimit(t *testing.T) {
	cfg := webtestutils.TestConfig()
	cfg.RateLimit.MaxRequests = 3
	cfg.RateLimit.Window = time.Minute
	app := webtestutils.NewTestAppWithDB(t, testutils.NewTestDB(t), cfg)

	request := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		resp, err := app.App.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}
	for range 3 {
		assert.Equal(t, fiber.StatusOK, request("203.0.113.7"))
	}
	assert.Equal(t, fiber.StatusTooManyRequests, request("203.0.113.7"))
	assert.Equal(t, fiber.StatusOK, request("198.51.100.2"), "limits are per client")
}
