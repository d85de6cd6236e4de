package family

import (
	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/domain/family"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/middleware"
	authsvc "github.com/amirasaad/famledger/pkg/service/auth"
	familysvc "github.com/amirasaad/famledger/pkg/service/family"
	"github.com/amirasaad/famledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, familySvc *familysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/families", protected, CreateFamily(familySvc, authSvc))
	app.Get("/families", protected, ListFamilies(familySvc, authSvc))
	app.Get("/families/:familyId", protected, GetFamily(familySvc, authSvc))
	app.Patch("/families/:familyId", protected, RenameFamily(familySvc, authSvc))
	app.Post("/families/:familyId/members", protected, AddMember(familySvc, authSvc))
}

// CreateFamily creates a family with the caller as its admin.
// @Summary Create a family
// @Tags families
// @Accept json
// @Produce json
// @Param request body dto.FamilyCreate true "Family data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /families [post]
// @Security Bearer
func CreateFamily(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[dto.FamilyCreate](c)
		if input == nil {
			return err
		}
		f, err := familySvc.CreateFamily(c.Context(), userID, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create family", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Family created", f)
	}
}

// ListFamilies lists the families the caller belongs to.
// @Summary List families
// @Tags families
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /families [get]
// @Security Bearer
func ListFamilies(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		fs, err := familySvc.ListFamilies(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list families", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Families fetched", fs)
	}
}

// GetFamily returns a family with its members.
// @Summary Get a family
// @Tags families
// @Produce json
// @Param familyId path string true "Family ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /families/{familyId} [get]
// @Security Bearer
func GetFamily(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		f, err := familySvc.GetFamily(c.Context(), familyID, userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't fetch family", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Family fetched", f)
	}
}

// RenameFamily renames a family. Admins only.
// @Summary Rename a family
// @Tags families
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param request body dto.FamilyUpdate true "New name"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /families/{familyId} [patch]
// @Security Bearer
func RenameFamily(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.FamilyUpdate](c)
		if input == nil {
			return err
		}
		f, err := familySvc.RenameFamily(c.Context(), familyID, userID, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't rename family", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Family updated", f)
	}
}

// AddMember adds a registered user to the family. Admins only.
// @Summary Add a family member
// @Tags families
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param request body dto.MemberCreate true "Member"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /families/{familyId}/members [post]
// @Security Bearer
func AddMember(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.MemberCreate](c)
		if input == nil {
			return err
		}
		m, err := familySvc.AddMember(c.Context(), familyID, userID, input.Email, family.Role(input.Role))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't add member", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Member added", m)
	}
}
