package tag

import (
	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/middleware"
	authsvc "github.com/amirasaad/famledger/pkg/service/auth"
	tagsvc "github.com/amirasaad/famledger/pkg/service/tag"
	"github.com/amirasaad/famledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, tagSvc *tagsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/families/:familyId/tags", protected, CreateTag(tagSvc, authSvc))
	app.Get("/families/:familyId/tags", protected, ListTags(tagSvc, authSvc))
	app.Delete("/families/:familyId/tags/:tagId", protected, DeleteTag(tagSvc, authSvc))
}

// CreateTag creates a tag; names are unique per family.
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param request body dto.TagCreate true "Tag data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /families/{familyId}/tags [post]
// @Security Bearer
func CreateTag(tagSvc *tagsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.TagCreate](c)
		if input == nil {
			return err
		}
		t, err := tagSvc.CreateTag(c.Context(), familyID, userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create tag", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Tag created", t)
	}
}

// ListTags lists the family's tags by name.
// @Summary List tags
// @Tags tags
// @Produce json
// @Param familyId path string true "Family ID"
// @Success 200 {object} common.Response
// @Router /families/{familyId}/tags [get]
// @Security Bearer
func ListTags(tagSvc *tagsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		ts, err := tagSvc.ListTags(c.Context(), familyID, userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list tags", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Tags fetched", ts)
	}
}

// DeleteTag deletes a tag and detaches it from every entry.
// @Summary Delete a tag
// @Tags tags
// @Produce json
// @Param familyId path string true "Family ID"
// @Param tagId path string true "Tag ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/tags/{tagId} [delete]
// @Security Bearer
func DeleteTag(tagSvc *tagsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		tagID, err := common.UUIDParam(c, "tagId")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid tag ID", err)
		}
		if err := tagSvc.DeleteTag(c.Context(), familyID, userID, tagID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete tag", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Tag deleted", fiber.Map{"success": true})
	}
}
