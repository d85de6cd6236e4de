// Package middleware holds the fiber middleware shared by the route groups.
package middleware

import (
	"github.com/amirasaad/famledger/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JwtProtected rejects requests without a valid HS256 bearer token and stores
// the parsed *jwt.Token under the "user" local.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ContextKey:   "user",
		ErrorHandler: jwtError,
	})
}

// jwtError answers 401 for a missing, malformed or expired token alike.
func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"type":   "about:blank",
		"title":  "Unauthorized",
		"status": fiber.StatusUnauthorized,
		"detail": err.Error(),
	}, "application/problem+json")
}
