package user_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/famledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identityView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Password string    `json:"password"`
}

func TestRegisterAndMe(t *testing.T) {
	app := testutils.NewTestApp(t)
	token, id := app.NewUser("joana")

	resp := app.MakeRequest(http.MethodGet, "/user/me", "", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	me := testutils.Data[identityView](t, resp)
	assert.Equal(t, id, me.ID)
	assert.Equal(t, "joana", me.Name)
	assert.Empty(t, me.Password)

	resp = app.MakeRequest(http.MethodGet, "/user/me", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app := testutils.NewTestApp(t)
	_, email := app.Register("joana")

	tests := []struct {
		name string
		body fiber.Map
		want int
	}{
		{"duplicate email", fiber.Map{"email": email, "name": "Outra", "password": "password123"}, fiber.StatusConflict},
		{"invalid email", fiber.Map{"email": "joana", "name": "Joana", "password": "password123"}, fiber.StatusBadRequest},
		{"short password", fiber.Map{"email": "x@example.com", "name": "X", "password": "123"}, fiber.StatusBadRequest},
		{"missing name", fiber.Map{"email": "y@example.com", "password": "password123"}, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := app.WithT(t).MakeRequest(http.MethodPost, "/user", testutils.JSON(t, tt.body), "")
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
