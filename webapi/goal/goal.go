package goal

import (
	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/middleware"
	authsvc "github.com/amirasaad/famledger/pkg/service/auth"
	goalsvc "github.com/amirasaad/famledger/pkg/service/goal"
	"github.com/amirasaad/famledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, goalSvc *goalsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/families/:familyId/goals", protected, CreateGoal(goalSvc, authSvc))
	app.Get("/families/:familyId/goals", protected, ListGoals(goalSvc, authSvc))
	app.Get("/families/:familyId/goals/:goalId", protected, GetGoal(goalSvc, authSvc))
	app.Patch("/families/:familyId/goals/:goalId", protected, UpdateGoal(goalSvc, authSvc))
	app.Delete("/families/:familyId/goals/:goalId", protected, DeleteGoal(goalSvc, authSvc))
	app.Post("/families/:familyId/goals/:goalId/contributions", protected, Contribute(goalSvc, authSvc))
	app.Get("/families/:familyId/goals/:goalId/contributions", protected, ListContributions(goalSvc, authSvc))
}

// goalScope resolves the caller, the family and the :goalId parameter.
func goalScope(c *fiber.Ctx, authSvc *authsvc.Service) (familyID, userID, goalID uuid.UUID, ok bool, err error) {
	familyID, userID, ok, err = common.FamilyScope(c, authSvc)
	if !ok {
		return
	}
	goalID, err = common.UUIDParam(c, "goalId")
	if err != nil {
		return familyID, userID, uuid.Nil, false, common.ProblemDetailsJSON(c, "Invalid goal ID", err)
	}
	return familyID, userID, goalID, true, nil
}

// CreateGoal creates a savings goal.
// @Summary Create a savings goal
// @Description Emergency funds derive targetAmount from monthlyExpenses times targetMonths.
// @Tags goals
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param request body dto.GoalCreate true "Goal data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /families/{familyId}/goals [post]
// @Security Bearer
func CreateGoal(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.GoalCreate](c)
		if input == nil {
			return err
		}
		g, err := goalSvc.CreateGoal(c.Context(), familyID, userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Goal created", g)
	}
}

// ListGoals lists the family's savings goals.
// @Summary List savings goals
// @Tags goals
// @Produce json
// @Param familyId path string true "Family ID"
// @Success 200 {object} common.Response
// @Router /families/{familyId}/goals [get]
// @Security Bearer
func ListGoals(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		gs, err := goalSvc.ListGoals(c.Context(), familyID, userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list goals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goals fetched", gs)
	}
}

// GetGoal returns one savings goal.
// @Summary Get a savings goal
// @Tags goals
// @Produce json
// @Param familyId path string true "Family ID"
// @Param goalId path string true "Goal ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/goals/{goalId} [get]
// @Security Bearer
func GetGoal(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, goalID, ok, err := goalScope(c, authSvc)
		if !ok {
			return err
		}
		g, err := goalSvc.GetGoal(c.Context(), familyID, userID, goalID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't fetch goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal fetched", g)
	}
}

// UpdateGoal applies a sparse update to a savings goal.
// @Summary Update a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param goalId path string true "Goal ID"
// @Param request body dto.GoalUpdate true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/goals/{goalId} [patch]
// @Security Bearer
func UpdateGoal(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, goalID, ok, err := goalScope(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.GoalUpdate](c)
		if input == nil {
			return err
		}
		g, err := goalSvc.UpdateGoal(c.Context(), familyID, userID, goalID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal updated", g)
	}
}

// DeleteGoal deletes a savings goal with its contributions.
// @Summary Delete a savings goal
// @Tags goals
// @Produce json
// @Param familyId path string true "Family ID"
// @Param goalId path string true "Goal ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/goals/{goalId} [delete]
// @Security Bearer
func DeleteGoal(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, goalID, ok, err := goalScope(c, authSvc)
		if !ok {
			return err
		}
		if err := goalSvc.DeleteGoal(c.Context(), familyID, userID, goalID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal deleted", fiber.Map{"success": true})
	}
}

// Contribute adds money to a savings goal.
// @Summary Contribute to a savings goal
// @Description Inserts the contribution, raises currentAmount and marks the goal completed once the target is reached, in one transaction.
// @Tags goals
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param goalId path string true "Goal ID"
// @Param request body dto.ContributionCreate true "Contribution"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/goals/{goalId}/contributions [post]
// @Security Bearer
func Contribute(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, goalID, ok, err := goalScope(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.ContributionCreate](c)
		if input == nil {
			return err
		}
		contribution, err := goalSvc.Contribute(c.Context(), familyID, userID, goalID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Contribution failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Contribution recorded", contribution)
	}
}

// ListContributions lists a goal's contributions, newest first.
// @Summary List goal contributions
// @Tags goals
// @Produce json
// @Param familyId path string true "Family ID"
// @Param goalId path string true "Goal ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/goals/{goalId}/contributions [get]
// @Security Bearer
func ListContributions(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, goalID, ok, err := goalScope(c, authSvc)
		if !ok {
			return err
		}
		cs, err := goalSvc.ListContributions(c.Context(), familyID, userID, goalID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list contributions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Contributions fetched", cs)
	}
}
