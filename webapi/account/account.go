package account

import (
	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/middleware"
	accountsvc "github.com/amirasaad/famledger/pkg/service/account"
	authsvc "github.com/amirasaad/famledger/pkg/service/auth"
	"github.com/amirasaad/famledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/families/:familyId/accounts", protected, CreateAccount(accountSvc, authSvc))
	app.Get("/families/:familyId/accounts", protected, ListAccounts(accountSvc, authSvc))
	app.Get("/families/:familyId/accounts/:accountId", protected, GetAccount(accountSvc, authSvc))
	app.Patch("/families/:familyId/accounts/:accountId", protected, UpdateAccount(accountSvc, authSvc))
	app.Delete("/families/:familyId/accounts/:accountId", protected, DeleteAccount(accountSvc, authSvc))
}

// CreateAccount creates a financial account for the family.
// @Summary Create an account
// @Description Creates an account; the new account is placed last and becomes the only default when isDefault is set.
// @Tags accounts
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param request body dto.AccountCreate true "Account data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /families/{familyId}/accounts [post]
// @Security Bearer
func CreateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.AccountCreate](c)
		if input == nil {
			return err
		}
		b, err := accountSvc.CreateAccount(c.Context(), familyID, userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", b)
	}
}

// ListAccounts lists the family's accounts with their balances.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Param familyId path string true "Family ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /families/{familyId}/accounts [get]
// @Security Bearer
func ListAccounts(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		bs, err := accountSvc.ListAccounts(c.Context(), familyID, userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", bs)
	}
}

// GetAccount returns one account with its balance.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param familyId path string true "Family ID"
// @Param accountId path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/accounts/{accountId} [get]
// @Security Bearer
func GetAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		accountID, err := common.UUIDParam(c, "accountId")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err)
		}
		b, err := accountSvc.GetAccount(c.Context(), familyID, userID, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't fetch account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", b)
	}
}

// UpdateAccount applies a sparse update to an account.
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param accountId path string true "Account ID"
// @Param request body dto.AccountUpdate true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/accounts/{accountId} [patch]
// @Security Bearer
func UpdateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		accountID, err := common.UUIDParam(c, "accountId")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err)
		}
		input, err := common.BindAndValidate[dto.AccountUpdate](c)
		if input == nil {
			return err
		}
		b, err := accountSvc.UpdateAccount(c.Context(), familyID, userID, accountID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", b)
	}
}

// DeleteAccount deletes an account that has no entries.
// @Summary Delete an account
// @Tags accounts
// @Produce json
// @Param familyId path string true "Family ID"
// @Param accountId path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/accounts/{accountId} [delete]
// @Security Bearer
func DeleteAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		accountID, err := common.UUIDParam(c, "accountId")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err)
		}
		if err := accountSvc.DeleteAccount(c.Context(), familyID, userID, accountID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account deleted", fiber.Map{"success": true})
	}
}
