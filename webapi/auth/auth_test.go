package auth_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/amirasaad/famledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	app := testutils.NewTestApp(t)
	_, email := app.Register("joana")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid credentials", testutils.JSON(t, fiber.Map{"identity": email, "password": "password123"}), fiber.StatusOK},
		{"identity is case insensitive", testutils.JSON(t, fiber.Map{"identity": " " + strings.ToUpper(email), "password": "password123"}), fiber.StatusOK},
		{"wrong password", testutils.JSON(t, fiber.Map{"identity": email, "password": "nope"}), fiber.StatusUnauthorized},
		{"unknown user", `{"identity":"ghost@example.com","password":"password123"}`, fiber.StatusUnauthorized},
		{"missing password", testutils.JSON(t, fiber.Map{"identity": email}), fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := app.WithT(t).MakeRequest(http.MethodPost, "/auth/login", tt.body, "")
			require.Equal(t, tt.want, resp.StatusCode)
			if tt.want == fiber.StatusOK {
				token := testutils.Data[struct {
					Token string `json:"token"`
				}](t, resp).Token
				assert.NotEmpty(t, token)
			}
		})
	}
}
