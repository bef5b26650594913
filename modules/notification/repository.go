package notification

import (
	"errors"
	"fmt"
	"time"

	domain "github.com/example/kanban-backend/domain/notification"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository persists the per-user notification mailbox.
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification.
func (r *NotificationRepository) Create(note *domain.Notification) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if err := r.db.Create(note).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// List returns notifications filtered by user and read state. An empty
// result is an empty slice.
func (r *NotificationRepository) List(userID string, isRead *bool) ([]domain.Notification, error) {
	notes := []domain.Notification{}
	query := r.db.Order("created_at DESC")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if isRead != nil {
		query = query.Where("is_read = ?", *isRead)
	}
	if err := query.Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notes, nil
}

// FindByID retrieves a notification.
func (r *NotificationRepository) FindByID(id string) (*domain.Notification, error) {
	var note domain.Notification
	if err := r.db.First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	return &note, nil
}

// Update applies the supplied fields to a notification.
func (r *NotificationRepository) Update(id string, fields map[string]any) (*domain.Notification, error) {
	var note domain.Notification
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&note, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotificationNotFound
			}
			return fmt.Errorf("failed to find notification: %w", err)
		}
		fields["updated_at"] = time.Now()
		if err := tx.Model(&note).Updates(fields).Error; err != nil {
			return fmt.Errorf("failed to update notification: %w", err)
		}
		return tx.First(&note, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// MarkRead flips the read flag and returns the row. The notification stays
// retrievable afterwards.
func (r *NotificationRepository) MarkRead(id string) (*domain.Notification, error) {
	return r.Update(id, map[string]any{"is_read": true})
}

// Delete removes a notification.
func (r *NotificationRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Notification{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
