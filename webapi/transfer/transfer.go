package transfer

import (
	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/middleware"
	authsvc "github.com/amirasaad/famledger/pkg/service/auth"
	transfersvc "github.com/amirasaad/famledger/pkg/service/transfer"
	"github.com/amirasaad/famledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, transferSvc *transfersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/families/:familyId/transfers", protected, CreateTransfer(transferSvc, authSvc))
	app.Get("/families/:familyId/transfers", protected, ListTransfers(transferSvc, authSvc))
}

// CreateTransfer moves money between two accounts of the family.
// @Summary Create a transfer
// @Description Records an expense on the source account, an income on the destination account and the transfer linking them, atomically.
// @Tags transfers
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param request body dto.TransferCreate true "Transfer data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /families/{familyId}/transfers [post]
// @Security Bearer
func CreateTransfer(transferSvc *transfersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.TransferCreate](c)
		if input == nil {
			return err
		}
		t, err := transferSvc.CreateTransfer(c.Context(), familyID, userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer created", t)
	}
}

// ListTransfers lists the family's transfers, newest first.
// @Summary List transfers
// @Tags transfers
// @Produce json
// @Param familyId path string true "Family ID"
// @Success 200 {object} common.Response
// @Router /families/{familyId}/transfers [get]
// @Security Bearer
func ListTransfers(transferSvc *transfersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		ts, err := transferSvc.ListTransfers(c.Context(), familyID, userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transfers", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfers fetched", ts)
	}
}
