package api

import (
	"encoding/json"

	domain "github.com/example/kanban-backend/domain/user"
	"github.com/example/kanban-backend/modules/activity"
	"github.com/example/kanban-backend/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	module *APIModule
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(module *APIModule) *Handlers {
	return &Handlers{module: module}
}

// call forwards a typed request to a module service and decodes the reply.
func call[T any](c *fiber.Ctx, container mono.ServiceContainer, service string, req any, resp *T) error {
	return helper.CallRequestReplyService(
		c.UserContext(),
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	)
}

// principal returns the claims stored by the auth middleware.
func (h *Handlers) principal(c *fiber.Ctx) (*domain.Claims, bool) {
	return Principal(c)
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return badRequest(c, "Name, email, and password are required")
	}

	var resp auth.RegisterResponse
	if err := call(c, h.module.authContainer, "register", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	var resp auth.LoginResponse
	if err := call(c, h.module.authContainer, "login", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req auth.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	var resp auth.RefreshResponse
	if err := call(c, h.module.authContainer, "refresh-token", &req, &resp); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Me resolves the authenticated principal to its user record.
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims, ok := h.principal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	req := auth.GetUserRequest{UserID: claims.UserID}
	var resp auth.UserResponse
	if err := call(c, h.module.authContainer, "get-user", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteUser removes a user account and everything it owns.
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	req := auth.DeleteUserRequest{UserID: c.Params("id")}
	var resp auth.DeleteUserResponse
	if err := call(c, h.module.authContainer, "delete-user", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecentActivity returns the newest entries of the activity feed.
func (h *Handlers) RecentActivity(c *fiber.Ctx) error {
	req := activity.RecentActivityRequest{Limit: c.QueryInt("limit")}
	var resp activity.RecentActivityResponse
	if err := call(c, h.module.activityContainer, "recent-activity", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
