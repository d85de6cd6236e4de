package entry

import (
	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/middleware"
	authsvc "github.com/amirasaad/famledger/pkg/service/auth"
	entrysvc "github.com/amirasaad/famledger/pkg/service/entry"
	"github.com/amirasaad/famledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the same handlers under /incomes and /expenses.
func Routes(app *fiber.App, entrySvc *entrysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	for segment, kind := range map[string]ledger.Kind{"incomes": ledger.Income, "expenses": ledger.Expense} {
		base := "/families/:familyId/" + segment
		app.Post(base, protected, CreateEntry(entrySvc, authSvc, kind))
		app.Get(base, protected, ListEntries(entrySvc, authSvc, kind))
		app.Get(base+"/:entryId", protected, GetEntry(entrySvc, authSvc, kind))
		app.Put(base+"/:entryId", protected, ReplaceEntry(entrySvc, authSvc, kind))
		app.Delete(base+"/:entryId", protected, DeleteEntry(entrySvc, authSvc, kind))
	}
}

// CreateEntry records an income or an expense.
// @Summary Create an income or expense
// @Description Amount must be positive; the account and tags must belong to the family.
// @Tags entries
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param request body dto.EntryCreate true "Entry data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /families/{familyId}/incomes [post]
// @Router /families/{familyId}/expenses [post]
// @Security Bearer
func CreateEntry(entrySvc *entrysvc.Service, authSvc *authsvc.Service, kind ledger.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.EntryCreate](c)
		if input == nil {
			return err
		}
		e, err := entrySvc.CreateEntry(c.Context(), kind, familyID, userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create "+string(kind), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created "+string(kind), e)
	}
}

// ListEntries lists incomes or expenses, newest first.
// @Summary List incomes or expenses
// @Tags entries
// @Produce json
// @Param familyId path string true "Family ID"
// @Param accountId query string false "Account ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param tagId query string false "Tag ID"
// @Param recurring query bool false "Only recurring templates (true) or only plain entries (false)"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /families/{familyId}/incomes [get]
// @Router /families/{familyId}/expenses [get]
// @Security Bearer
func ListEntries(entrySvc *entrysvc.Service, authSvc *authsvc.Service, kind ledger.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		filter, err := parseFilter(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		es, err := entrySvc.ListEntries(c.Context(), kind, familyID, userID, filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list entries", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Entries fetched", es)
	}
}

func parseFilter(c *fiber.Ctx) (f dto.EntryFilter, err error) {
	if f.AccountID, err = common.QueryUUID(c, "accountId"); err != nil {
		return
	}
	if f.From, err = common.QueryTime(c, "from"); err != nil {
		return
	}
	if f.To, err = common.QueryTime(c, "to"); err != nil {
		return
	}
	if f.TagID, err = common.QueryUUID(c, "tagId"); err != nil {
		return
	}
	f.Recurring, err = common.QueryBool(c, "recurring")
	return
}

// GetEntry returns one income or expense with its tags.
// @Summary Get an income or expense
// @Tags entries
// @Produce json
// @Param familyId path string true "Family ID"
// @Param entryId path string true "Entry ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/incomes/{entryId} [get]
// @Router /families/{familyId}/expenses/{entryId} [get]
// @Security Bearer
func GetEntry(entrySvc *entrysvc.Service, authSvc *authsvc.Service, kind ledger.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		entryID, err := common.UUIDParam(c, "entryId")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid entry ID", err)
		}
		e, err := entrySvc.GetEntry(c.Context(), kind, familyID, userID, entryID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't fetch "+string(kind), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Entry fetched", e)
	}
}

// ReplaceEntry replaces the editable fields and the tag set of an entry.
// @Summary Replace an income or expense
// @Tags entries
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param entryId path string true "Entry ID"
// @Param request body dto.EntryReplace true "Entry data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/incomes/{entryId} [put]
// @Router /families/{familyId}/expenses/{entryId} [put]
// @Security Bearer
func ReplaceEntry(entrySvc *entrysvc.Service, authSvc *authsvc.Service, kind ledger.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		entryID, err := common.UUIDParam(c, "entryId")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid entry ID", err)
		}
		input, err := common.BindAndValidate[dto.EntryReplace](c)
		if input == nil {
			return err
		}
		e, err := entrySvc.ReplaceEntry(c.Context(), kind, familyID, userID, entryID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update "+string(kind), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Entry updated", e)
	}
}

// DeleteEntry deletes an income or expense.
// @Summary Delete an income or expense
// @Tags entries
// @Produce json
// @Param familyId path string true "Family ID"
// @Param entryId path string true "Entry ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/incomes/{entryId} [delete]
// @Router /families/{familyId}/expenses/{entryId} [delete]
// @Security Bearer
func DeleteEntry(entrySvc *entrysvc.Service, authSvc *authsvc.Service, kind ledger.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		entryID, err := common.UUIDParam(c, "entryId")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid entry ID", err)
		}
		if err := entrySvc.DeleteEntry(c.Context(), kind, familyID, userID, entryID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete "+string(kind), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Entry deleted", fiber.Map{"success": true})
	}
}
