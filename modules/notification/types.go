package notification

import (
	domain "github.com/example/kanban-backend/domain/notification"
)

// CreateNotificationRequest is the request for the create-notification
// service.
type CreateNotificationRequest struct {
	UserID          string         `json:"user_id"`
	Type            string         `json:"type"`
	Message         string         `json:"message"`
	RelatedItemID   string         `json:"related_item_id,omitempty"`
	RelatedItemType string         `json:"related_item_type,omitempty"`
	Payload         map[string]any `json:"payload,omitempty"`
}

// ListNotificationsRequest is the request for the list-notifications
// service. Empty filters match everything.
type ListNotificationsRequest struct {
	UserID string `json:"user_id,omitempty"`
	IsRead *bool  `json:"is_read,omitempty"`
}

// ListNotificationsResponse is the response for the list-notifications
// service.
type ListNotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Count         int                   `json:"count"`
}

// GetNotificationRequest is the request for the get-notification service.
type GetNotificationRequest struct {
	NotificationID string `json:"notification_id"`
}

// UpdateNotificationRequest is the request for the update-notification
// service.
type UpdateNotificationRequest struct {
	NotificationID string  `json:"notification_id"`
	Message        *string `json:"message,omitempty"`
	IsRead         *bool   `json:"is_read,omitempty"`
}

// MarkReadRequest is the request for the mark-read service.
type MarkReadRequest struct {
	NotificationID string `json:"notification_id"`
}

// DeleteNotificationRequest is the request for the delete-notification
// service.
type DeleteNotificationRequest struct {
	NotificationID string `json:"notification_id"`
}

// DeleteNotificationResponse is the response for the delete-notification
// service.
type DeleteNotificationResponse struct {
	Deleted        bool   `json:"deleted"`
	NotificationID string `json:"notification_id"`
}
