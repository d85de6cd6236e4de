package account_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/amirasaad/famledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type balanceView struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	IsDefault      bool            `json:"isDefault"`
	DisplayOrder   int             `json:"displayOrder"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Color          string          `json:"color"`
}

func TestAccountLifecycle(t *testing.T) {
	app := testutils.NewTestApp(t)
	token, _ := app.NewUser("joana")
	familyID := app.NewFamily(token)
	base := fmt.Sprintf("/families/%s/accounts", familyID)

	resp := app.MakeRequest(http.MethodPost, base, `{"name":"Carteira","type":"cash","initialBalance":"50","isDefault":true}`, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	first := testutils.Data[balanceView](t, resp)
	assert.True(t, first.IsDefault)
	assert.True(t, decimal.NewFromInt(50).Equal(first.CurrentBalance))

	resp = app.MakeRequest(http.MethodPost, base, `{"name":"Banco","type":"checking","isDefault":true}`, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	second := testutils.Data[balanceView](t, resp)
	assert.Equal(t, first.DisplayOrder+1, second.DisplayOrder)

	resp = app.MakeRequest(http.MethodGet, base, "", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := testutils.Data[[]balanceView](t, resp)
	require.Len(t, list, 2)
	assert.False(t, list[0].IsDefault, "creating a new default clears the old one")
	assert.True(t, list[1].IsDefault)

	resp = app.MakeRequest(http.MethodPatch, base+"/"+first.ID.String(), `{"color":"#ff0000"}`, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := testutils.Data[balanceView](t, resp)
	assert.Equal(t, "#ff0000", updated.Color)
	assert.Equal(t, "Carteira", updated.Name)

	resp = app.MakeRequest(http.MethodDelete, base+"/"+first.ID.String(), "", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = app.MakeRequest(http.MethodGet, base+"/"+first.ID.String(), "", token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateAccountValidation(t *testing.T) {
	app := testutils.NewTestApp(t)
	token, _ := app.NewUser("joana")
	base := fmt.Sprintf("/families/%s/accounts", app.NewFamily(token))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown type", `{"name":"X","type":"crypto"}`, fiber.StatusBadRequest},
		{"missing name", `{"type":"cash"}`, fiber.StatusBadRequest},
		{"credit card without limit", `{"name":"Cartão","type":"credit_card"}`, fiber.StatusBadRequest},
		{"malformed body", `{"name":`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := app.WithT(t).MakeRequest(http.MethodPost, base, tt.body, token)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
		})
	}

	resp := app.MakeRequest(http.MethodPost, base, `{"name":"Banco","type":"checking"}`, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = app.MakeRequest(http.MethodPost, base, `{"name":"Banco","type":"savings"}`, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "duplicate name")
}

func TestAccountsRequireMembership(t *testing.T) {
	app := testutils.NewTestApp(t)
	owner, _ := app.NewUser("joana")
	outsider, _ := app.NewUser("vizinho")
	base := fmt.Sprintf("/families/%s/accounts", app.NewFamily(owner))

	resp := app.MakeRequest(http.MethodGet, base, "", outsider)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp = app.MakeRequest(http.MethodGet, fmt.Sprintf("/families/%s/accounts", uuid.New()), "", owner)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "unknown families look the same as foreign ones")
}
