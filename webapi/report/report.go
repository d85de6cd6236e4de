package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/middleware"
	authsvc "github.com/amirasaad/famledger/pkg/service/auth"
	reportsvc "github.com/amirasaad/famledger/pkg/service/report"
	"github.com/amirasaad/famledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func Routes(app *fiber.App, reportSvc *reportsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/families/:familyId/reports/summary", protected, Summary(reportSvc, authSvc))
	app.Get("/families/:familyId/reports/trend", protected, Trend(reportSvc, authSvc))
	app.Get("/families/:familyId/reports/export", protected, Export(reportSvc, authSvc))
}

// reference parses the date query parameter; now when absent.
func reference(c *fiber.Ctx) (time.Time, error) {
	t, err := common.QueryTime(c, "date")
	if err != nil || t == nil {
		return time.Now().UTC(), err
	}
	return *t, nil
}

// Summary totals the period's incomes and expenses.
// @Summary Period summary
// @Description Income, expense and net of the period containing date, grouped by tag and by day. Transfers are excluded.
// @Tags reports
// @Produce json
// @Param familyId path string true "Family ID"
// @Param period query string false "weekly, biweekly, monthly (default), bimonthly, quarterly, semiannual, annual or all"
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /families/{familyId}/reports/summary [get]
// @Security Bearer
func Summary(reportSvc *reportsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		ref, err := reference(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		sum, err := reportSvc.Summary(c.Context(), familyID, userID, c.Query("period"), ref)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't build summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Summary built", sum)
	}
}

// Trend totals trailing periods, oldest first.
// @Summary Period trend
// @Tags reports
// @Produce json
// @Param familyId path string true "Family ID"
// @Param period query string false "Calendar period, defaults to monthly"
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Param count query int false "Number of periods (1-36, default 6)"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /families/{familyId}/reports/trend [get]
// @Security Bearer
func Trend(reportSvc *reportsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		ref, err := reference(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		points, err := reportSvc.Trend(c.Context(), familyID, userID, c.Query("period"), ref, c.QueryInt("count"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't build trend", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trend built", points)
	}
}

// Export downloads the period's entries as a spreadsheet.
// @Summary Export entries
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param familyId path string true "Family ID"
// @Param period query string false "Period, defaults to monthly"
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {file} file
// @Failure 400 {object} common.ProblemDetails
// @Router /families/{familyId}/reports/export [get]
// @Security Bearer
func Export(reportSvc *reportsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		ref, err := reference(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		var buf bytes.Buffer
		if err := reportSvc.Export(c.Context(), familyID, userID, c.Query("period"), ref, &buf); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't export entries", err)
		}
		name := c.Query("period", "monthly")
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Attachment(fmt.Sprintf("famledger-%s-%s.xlsx", name, ref.Format(time.DateOnly)))
		return c.Send(buf.Bytes())
	}
}
