// Package webapi exposes the family ledger over HTTP. It is organized into
// sub-packages per resource:
// - auth, user: login, registration and the current identity
// - family: families and their members
// - account, entry, tag, transfer: the ledger
// - goal, task: savings goals and household tasks
// - report: period summaries, trends and spreadsheet export
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/famledger/pkg/app"
	accountweb "github.com/amirasaad/famledger/webapi/account"
	authweb "github.com/amirasaad/famledger/webapi/auth"
	"github.com/amirasaad/famledger/webapi/common"
	entryweb "github.com/amirasaad/famledger/webapi/entry"
	familyweb "github.com/amirasaad/famledger/webapi/family"
	goalweb "github.com/amirasaad/famledger/webapi/goal"
	reportweb "github.com/amirasaad/famledger/webapi/report"
	tagweb "github.com/amirasaad/famledger/webapi/tag"
	taskweb "github.com/amirasaad/famledger/webapi/task"
	transferweb "github.com/amirasaad/famledger/webapi/transfer"
	userweb "github.com/amirasaad/famledger/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	authSvc := app.AuthService
	cfg := app.Config

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
		OAuth2RedirectUrl:    "/auth/login",
	}))

	// Uses X-Forwarded-For header when behind a proxy,
	// falls back to X-Real-IP or direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				// Take the first IP in the chain
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("FamLedger API is running!")
		},
	)

	// Debug endpoint to list all routes
	fiberApp.Get("/debug/routes", func(c *fiber.Ctx) error {
		routes := fiberApp.GetRoutes(true)
		routeList := make([]fiber.Map, 0, len(routes))
		for _, route := range routes {
			if route.Path != "" {
				routeList = append(routeList, fiber.Map{
					"method": route.Method,
					"path":   route.Path,
				})
			}
		}
		return c.JSON(routeList)
	})

	authweb.Routes(fiberApp, authSvc)
	userweb.Routes(fiberApp, app.UserService, authSvc, cfg)
	familyweb.Routes(fiberApp, app.FamilyService, authSvc, cfg)
	accountweb.Routes(fiberApp, app.AccountService, authSvc, cfg)
	entryweb.Routes(fiberApp, app.EntryService, authSvc, cfg)
	tagweb.Routes(fiberApp, app.TagService, authSvc, cfg)
	transferweb.Routes(fiberApp, app.TransferService, authSvc, cfg)
	goalweb.Routes(fiberApp, app.GoalService, authSvc, cfg)
	taskweb.Routes(fiberApp, app.TaskService, authSvc, cfg)
	reportweb.Routes(fiberApp, app.ReportService, authSvc, cfg)
	return fiberApp
}
