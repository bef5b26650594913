package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/example/kanban-backend/domain/notification"
	"github.com/example/kanban-backend/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// NotificationModule owns the notifications table.
type NotificationModule struct {
	db     *gorm.DB
	repo   *NotificationRepository
	dbPath string
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.ServiceProviderModule = (*NotificationModule)(nil)
var _ mono.DependentModule = (*NotificationModule)(nil)
var _ mono.HealthCheckableModule = (*NotificationModule)(nil)

// NewModule creates a new NotificationModule.
func NewModule() *NotificationModule {
	return &NotificationModule{dbPath: store.DefaultPath()}
}

// Name returns the module name.
func (m *NotificationModule) Name() string {
	return "notification"
}

// Dependencies lists the modules whose tables must exist before this one
// migrates (notifications reference users).
func (m *NotificationModule) Dependencies() []string {
	return []string{"auth"}
}

// SetDependencyServiceContainer is required by DependentModule; the
// notification module depends on auth only for migration ordering.
func (m *NotificationModule) SetDependencyServiceContainer(_ string, _ mono.ServiceContainer) {}

// Start opens the database and migrates the notifications table.
func (m *NotificationModule) Start(_ context.Context) error {
	db, err := store.Open(m.dbPath)
	if err != nil {
		return err
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Notification{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.repo = NewNotificationRepository(db)
	log.Printf("[notification] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *NotificationModule) Stop(_ context.Context) error {
	if err := store.Close(m.db); err != nil {
		return err
	}
	log.Println("[notification] Module stopped")
	return nil
}

// Health reports the database connectivity of the module.
func (m *NotificationModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get sql.DB: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}
	return mono.HealthStatus{Healthy: true, Message: "operational"}
}

// RegisterServices registers the notification request-reply services.
func (m *NotificationModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"create-notification": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "create-notification", json.Unmarshal, json.Marshal, m.handleCreate)
		},
		"list-notifications": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-notifications", json.Unmarshal, json.Marshal, m.handleList)
		},
		"get-notification": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "get-notification", json.Unmarshal, json.Marshal, m.handleGet)
		},
		"update-notification": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "update-notification", json.Unmarshal, json.Marshal, m.handleUpdate)
		},
		"mark-read": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "mark-read", json.Unmarshal, json.Marshal, m.handleMarkRead)
		},
		"delete-notification": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "delete-notification", json.Unmarshal, json.Marshal, m.handleDelete)
		},
	}
	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[notification] Registered services: create-notification, list-notifications, get-notification, update-notification, mark-read, delete-notification")
	return nil
}

func (m *NotificationModule) handleCreate(_ context.Context, req CreateNotificationRequest, _ *mono.Msg) (domain.Notification, error) {
	note := &domain.Notification{
		UserID:          req.UserID,
		Type:            req.Type,
		Message:         req.Message,
		RelatedItemID:   req.RelatedItemID,
		RelatedItemType: req.RelatedItemType,
		Payload:         domain.Payload(req.Payload),
	}
	if err := m.repo.Create(note); err != nil {
		return domain.Notification{}, err
	}
	return *note, nil
}

func (m *NotificationModule) handleList(_ context.Context, req ListNotificationsRequest, _ *mono.Msg) (ListNotificationsResponse, error) {
	notes, err := m.repo.List(req.UserID, req.IsRead)
	if err != nil {
		return ListNotificationsResponse{}, err
	}
	return ListNotificationsResponse{Notifications: notes, Count: len(notes)}, nil
}

func (m *NotificationModule) handleGet(_ context.Context, req GetNotificationRequest, _ *mono.Msg) (domain.Notification, error) {
	note, err := m.repo.FindByID(req.NotificationID)
	if err != nil {
		return domain.Notification{}, err
	}
	return *note, nil
}

func (m *NotificationModule) handleUpdate(_ context.Context, req UpdateNotificationRequest, _ *mono.Msg) (domain.Notification, error) {
	fields := map[string]any{}
	if req.Message != nil {
		fields["message"] = *req.Message
	}
	if req.IsRead != nil {
		fields["is_read"] = *req.IsRead
	}
	note, err := m.repo.Update(req.NotificationID, fields)
	if err != nil {
		return domain.Notification{}, err
	}
	return *note, nil
}

func (m *NotificationModule) handleMarkRead(_ context.Context, req MarkReadRequest, _ *mono.Msg) (domain.Notification, error) {
	note, err := m.repo.MarkRead(req.NotificationID)
	if err != nil {
		return domain.Notification{}, err
	}
	return *note, nil
}

func (m *NotificationModule) handleDelete(_ context.Context, req DeleteNotificationRequest, _ *mono.Msg) (DeleteNotificationResponse, error) {
	if err := m.repo.Delete(req.NotificationID); err != nil {
		return DeleteNotificationResponse{Deleted: false, NotificationID: req.NotificationID}, err
	}
	return DeleteNotificationResponse{Deleted: true, NotificationID: req.NotificationID}, nil
}
