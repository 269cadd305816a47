package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taskhive/taskhive-backend/internal/auth"
	"github.com/taskhive/taskhive-backend/internal/domain"
	"github.com/taskhive/taskhive-backend/internal/tasks"
)

type TaskHandler struct {
	Tasks *tasks.Service
}

func NewTaskHandler(svc *tasks.Service) *TaskHandler {
	return &TaskHandler{Tasks: svc}
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return toHTTPError(err)
	}

	items, err := h.Tasks.List(userContext(c), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(items)
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return toHTTPError(err)
	}

	var body tasks.CreateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or empty JSON body")
	}

	t, err := h.Tasks.Create(userContext(c), userID, body)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(t)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return toHTTPError(err)
	}
	taskID, err := taskIDParam(c)
	if err != nil {
		return toHTTPError(err)
	}

	var body tasks.UpdateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or empty JSON body")
	}

	t, err := h.Tasks.Update(userContext(c), userID, taskID, body)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(t)
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return toHTTPError(err)
	}
	taskID, err := taskIDParam(c)
	if err != nil {
		return toHTTPError(err)
	}

	if err := h.Tasks.Delete(userContext(c), userID, taskID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(fiber.Map{"msg": "Task deleted"})
}

// taskIDParam validates the :id path parameter. An id that is not a
// UUID can never match a row, so it maps to not found.
func taskIDParam(c *fiber.Ctx) (string, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", domain.ErrNotFound
	}
	return id.String(), nil
}
