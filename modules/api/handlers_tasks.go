package api

import (
	domaintask "github.com/example/kanban-backend/domain/task"
	"github.com/example/kanban-backend/modules/task"
	"github.com/gofiber/fiber/v2"
)

// CreateTask adds a task to a column at the requested position.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req task.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.ColumnID == "" {
		return badRequest(c, "Task title and column_id are required")
	}

	var resp domaintask.Task
	if err := call(c, h.module.taskContainer, "create-task", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListTasks returns tasks filtered by column and assignee. An empty result
// is an empty collection, not an error.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	req := task.ListTasksRequest{
		ColumnID:       c.Query("column_id"),
		AssignedUserID: c.Query("assigned_user_id"),
	}
	var resp task.ListTasksResponse
	if err := call(c, h.module.taskContainer, "list-tasks", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// ListTasksByStatus returns tasks in one workflow status.
func (h *Handlers) ListTasksByStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return badRequest(c, "status query parameter is required")
	}

	req := task.ListTasksByStatusRequest{Status: status}
	var resp task.ListTasksResponse
	if err := call(c, h.module.taskContainer, "list-tasks-by-status", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetTask returns one task.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	req := task.GetTaskRequest{TaskID: c.Params("id")}
	var resp domaintask.Task
	if err := call(c, h.module.taskContainer, "get-task", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateTask applies a partial update; position and column changes trigger
// resequencing.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var req task.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.TaskID = c.Params("id")

	var resp domaintask.Task
	if err := call(c, h.module.taskContainer, "update-task", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteTask removes a task and closes its position gap.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	req := task.DeleteTaskRequest{TaskID: c.Params("id")}
	var resp task.DeleteTaskResponse
	if err := call(c, h.module.taskContainer, "delete-task", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
