package api

import (
	domainnotification "github.com/example/kanban-backend/domain/notification"
	"github.com/example/kanban-backend/modules/notification"
	"github.com/gofiber/fiber/v2"
)

// CreateNotification inserts a notification.
func (h *Handlers) CreateNotification(c *fiber.Ctx) error {
	var req notification.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID == "" || req.Type == "" || req.Message == "" {
		return badRequest(c, "user_id, type, and message are required")
	}

	var resp domainnotification.Notification
	if err := call(c, h.module.notificationContainer, "create-notification", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListNotifications returns notifications filtered by user and read state.
func (h *Handlers) ListNotifications(c *fiber.Ctx) error {
	req := notification.ListNotificationsRequest{
		UserID: c.Query("user_id"),
	}
	switch c.Query("is_read") {
	case "true":
		read := true
		req.IsRead = &read
	case "false":
		read := false
		req.IsRead = &read
	case "":
	default:
		return badRequest(c, "is_read must be true or false")
	}

	var resp notification.ListNotificationsResponse
	if err := call(c, h.module.notificationContainer, "list-notifications", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetNotification returns one notification.
func (h *Handlers) GetNotification(c *fiber.Ctx) error {
	req := notification.GetNotificationRequest{NotificationID: c.Params("id")}
	var resp domainnotification.Notification
	if err := call(c, h.module.notificationContainer, "get-notification", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateNotification applies a partial update to a notification.
func (h *Handlers) UpdateNotification(c *fiber.Ctx) error {
	var req notification.UpdateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.NotificationID = c.Params("id")

	var resp domainnotification.Notification
	if err := call(c, h.module.notificationContainer, "update-notification", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// MarkNotificationRead sets the read flag and returns the row.
func (h *Handlers) MarkNotificationRead(c *fiber.Ctx) error {
	req := notification.MarkReadRequest{NotificationID: c.Params("id")}
	var resp domainnotification.Notification
	if err := call(c, h.module.notificationContainer, "mark-read", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteNotification removes a notification.
func (h *Handlers) DeleteNotification(c *fiber.Ctx) error {
	req := notification.DeleteNotificationRequest{NotificationID: c.Params("id")}
	var resp notification.DeleteNotificationResponse
	if err := call(c, h.module.notificationContainer, "delete-notification", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
