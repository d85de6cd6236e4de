package task

import (
	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/task"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/middleware"
	authsvc "github.com/amirasaad/famledger/pkg/service/auth"
	tasksvc "github.com/amirasaad/famledger/pkg/service/task"
	"github.com/amirasaad/famledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, taskSvc *tasksvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/families/:familyId/tasks", protected, CreateTask(taskSvc, authSvc))
	app.Get("/families/:familyId/tasks", protected, ListTasks(taskSvc, authSvc))
	app.Get("/families/:familyId/tasks/:taskId", protected, GetTask(taskSvc, authSvc))
	app.Patch("/families/:familyId/tasks/:taskId", protected, UpdateTask(taskSvc, authSvc))
	app.Delete("/families/:familyId/tasks/:taskId", protected, DeleteTask(taskSvc, authSvc))
}

func taskScope(c *fiber.Ctx, authSvc *authsvc.Service) (familyID, userID, taskID uuid.UUID, ok bool, err error) {
	familyID, userID, ok, err = common.FamilyScope(c, authSvc)
	if !ok {
		return
	}
	taskID, err = common.UUIDParam(c, "taskId")
	if err != nil {
		return familyID, userID, uuid.Nil, false, common.ProblemDetailsJSON(c, "Invalid task ID", err)
	}
	return familyID, userID, taskID, true, nil
}

// CreateTask creates a task, optionally with a new or linked recurring template.
// @Summary Create a task
// @Description transactionMode "create" creates a recurring template from the task in the same transaction; "link" attaches an existing one.
// @Tags tasks
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param request body dto.TaskCreate true "Task data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /families/{familyId}/tasks [post]
// @Security Bearer
func CreateTask(taskSvc *tasksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.TaskCreate](c)
		if input == nil {
			return err
		}
		t, err := taskSvc.CreateTask(c.Context(), familyID, userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create task", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Task created", t)
	}
}

// ListTasks lists the family's tasks.
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param familyId path string true "Family ID"
// @Param status query string false "todo, in_progress, completed or done"
// @Param assigneeId query string false "Assignee user ID"
// @Param type query string false "standard, bill_payment, shopping_list or income"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /families/{familyId}/tasks [get]
// @Security Bearer
func ListTasks(taskSvc *tasksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, ok, err := common.FamilyScope(c, authSvc)
		if !ok {
			return err
		}
		filter, err := parseFilter(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		ts, err := taskSvc.ListTasks(c.Context(), familyID, userID, filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list tasks", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Tasks fetched", ts)
	}
}

func parseFilter(c *fiber.Ctx) (f dto.TaskFilter, err error) {
	if raw := c.Query("status"); raw != "" {
		st, err := task.ParseStatus(raw)
		if err != nil {
			return f, err
		}
		f.Status = &st
	}
	if raw := c.Query("type"); raw != "" {
		t := task.Type(raw)
		if !task.ValidType(t) {
			return f, domain.Validationf("unknown task type %q", raw)
		}
		f.Type = &t
	}
	f.AssigneeID, err = common.QueryUUID(c, "assigneeId")
	return
}

// GetTask returns one task with its relations.
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param familyId path string true "Family ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/tasks/{taskId} [get]
// @Security Bearer
func GetTask(taskSvc *tasksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, taskID, ok, err := taskScope(c, authSvc)
		if !ok {
			return err
		}
		t, err := taskSvc.GetTask(c.Context(), familyID, userID, taskID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't fetch task", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Task fetched", t)
	}
}

// UpdateTask applies a sparse update, settling the task when it is completed.
// @Summary Update or complete a task
// @Description status "completed" (or "done") completes the task and, when it owns an auto-generating template, records the settlement entry in the same transaction.
// @Tags tasks
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param taskId path string true "Task ID"
// @Param request body dto.TaskUpdate true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/tasks/{taskId} [patch]
// @Security Bearer
func UpdateTask(taskSvc *tasksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, taskID, ok, err := taskScope(c, authSvc)
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.TaskUpdate](c)
		if input == nil {
			return err
		}
		t, err := taskSvc.UpdateTask(c.Context(), familyID, userID, taskID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update task", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Task updated", t)
	}
}

// DeleteTask hard-deletes a task.
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param familyId path string true "Family ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /families/{familyId}/tasks/{taskId} [delete]
// @Security Bearer
func DeleteTask(taskSvc *tasksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		familyID, userID, taskID, ok, err := taskScope(c, authSvc)
		if !ok {
			return err
		}
		if err := taskSvc.DeleteTask(c.Context(), familyID, userID, taskID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete task", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Task deleted", fiber.Map{"success": true})
	}
}
