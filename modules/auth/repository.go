package auth

import (
	"errors"
	"fmt"

	domainboard "github.com/example/kanban-backend/domain/board"
	domainmember "github.com/example/kanban-backend/domain/member"
	domainnotification "github.com/example/kanban-backend/domain/notification"
	domaintask "github.com/example/kanban-backend/domain/task"
	domain "github.com/example/kanban-backend/domain/user"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when a user with the email already exists.
	ErrUserExists = errors.New("user with this email already exists")
)

// UserRepository handles user persistence using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user.
func (r *UserRepository) Create(user *domain.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID finds a user by ID.
func (r *UserRepository) FindByID(id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// Delete removes a user and everything hanging off the account: owned boards
// with their columns, tasks, and memberships; memberships on other boards;
// notifications. Task assignments elsewhere are nulled, not deleted. The
// whole teardown is one transaction so a failure leaves the account intact.
func (r *UserRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		ownedBoards := tx.Model(&domainboard.Board{}).Select("id").Where("user_id = ?", id)
		ownedColumns := tx.Model(&domainboard.Column{}).Select("id").
			Where("board_id IN (?)", tx.Model(&domainboard.Board{}).Select("id").Where("user_id = ?", id))

		if err := tx.Where("column_id IN (?)", ownedColumns).Delete(&domaintask.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete tasks of owned boards: %w", err)
		}
		if err := tx.Where("board_id IN (?)", ownedBoards).Delete(&domainboard.Column{}).Error; err != nil {
			return fmt.Errorf("failed to delete columns of owned boards: %w", err)
		}
		if err := tx.Where("board_id IN (?)", ownedBoards).Delete(&domainmember.BoardMember{}).Error; err != nil {
			return fmt.Errorf("failed to delete members of owned boards: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&domainboard.Board{}).Error; err != nil {
			return fmt.Errorf("failed to delete owned boards: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&domainmember.BoardMember{}).Error; err != nil {
			return fmt.Errorf("failed to delete memberships: %w", err)
		}
		if err := tx.Model(&domaintask.Task{}).Where("assigned_user_id = ?", id).
			Update("assigned_user_id", nil).Error; err != nil {
			return fmt.Errorf("failed to unassign tasks: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&domainnotification.Notification{}).Error; err != nil {
			return fmt.Errorf("failed to delete notifications: %w", err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
