package task

import (
	"errors"
	"fmt"
	"time"

	domainboard "github.com/example/kanban-backend/domain/board"
	"github.com/example/kanban-backend/domain/ordering"
	domain "github.com/example/kanban-backend/domain/task"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = errors.New("task not found")
	// ErrColumnNotFound is returned when the target column does not exist.
	ErrColumnNotFound = errors.New("column not found")
	// ErrInvalidStatus is returned for an unknown workflow status.
	ErrInvalidStatus = errors.New("invalid task status")
)

// TaskRepository persists tasks and maintains their per-column ordering.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task into a column at the requested position, shifting
// later siblings. ordering.Append places it after the last task.
func (r *TaskRepository) Create(task *domain.Task, position int) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	return r.db.Transaction(func(tx *gorm.DB) error {
		var column domainboard.Column
		if err := tx.First(&column, "id = ?", task.ColumnID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrColumnNotFound
			}
			return fmt.Errorf("failed to find column: %w", err)
		}

		siblings, err := loadSiblings(tx, task.ColumnID, "")
		if err != nil {
			return err
		}

		slot := ordering.ClampInsert(position, len(siblings))
		if err := reindexTasks(tx, siblings, slot); err != nil {
			return err
		}

		task.Position = slot
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a task.
func (r *TaskRepository) FindByID(id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// List returns tasks matching the optional column and assignee filters,
// ordered by column then position. An empty result is an empty slice.
func (r *TaskRepository) List(columnID, assignedUserID string) ([]domain.Task, error) {
	tasks := []domain.Task{}
	query := r.db.Order("column_id ASC, position ASC")
	if columnID != "" {
		query = query.Where("column_id = ?", columnID)
	}
	if assignedUserID != "" {
		query = query.Where("assigned_user_id = ?", assignedUserID)
	}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListByStatus returns tasks in the given workflow status. Unknown statuses
// fail validation; an empty result is an empty slice.
func (r *TaskRepository) ListByStatus(status domain.Status) ([]domain.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	tasks := []domain.Task{}
	if err := r.db.Where("status = ?", status).
		Order("column_id ASC, position ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateFields describes a partial task update. Position and column changes
// resequence siblings inside the update transaction.
type UpdateFields struct {
	Title          *string
	Description    *string
	ColumnID       *string
	AssignedUserID *string
	ClearAssignee  bool
	Status         *domain.Status
	Position       *int
	Priority       *string
	StartDate      *time.Time
	EndDate        *time.Time
	DependencyID   *string
	ClearDeps      bool
}

// Update applies a partial update. When the column changes, the gap in the
// source column closes and a slot opens in the target column in the same
// transaction; a bare position change resequences the current column.
func (r *TaskRepository) Update(id string, fields UpdateFields) (*domain.Task, error) {
	var task domain.Task
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		updates := map[string]any{"updated_at": time.Now()}
		if fields.Title != nil {
			updates["title"] = *fields.Title
		}
		if fields.Description != nil {
			updates["description"] = *fields.Description
		}
		if fields.Status != nil {
			if !fields.Status.Valid() {
				return ErrInvalidStatus
			}
			updates["status"] = *fields.Status
		}
		if fields.Priority != nil {
			updates["priority"] = *fields.Priority
		}
		if fields.StartDate != nil {
			updates["start_date"] = *fields.StartDate
		}
		if fields.EndDate != nil {
			updates["end_date"] = *fields.EndDate
		}
		if fields.ClearAssignee {
			updates["assigned_user_id"] = nil
		} else if fields.AssignedUserID != nil {
			updates["assigned_user_id"] = *fields.AssignedUserID
		}
		if fields.ClearDeps {
			updates["dependency_id"] = nil
		} else if fields.DependencyID != nil {
			updates["dependency_id"] = *fields.DependencyID
		}

		switch {
		case fields.ColumnID != nil && *fields.ColumnID != task.ColumnID:
			// Cross-column move: validate the target, close the source gap,
			// then open a slot among the target's tasks.
			var column domainboard.Column
			if err := tx.First(&column, "id = ?", *fields.ColumnID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrColumnNotFound
				}
				return fmt.Errorf("failed to find column: %w", err)
			}

			source, err := loadSiblings(tx, task.ColumnID, task.ID)
			if err != nil {
				return err
			}
			if err := reindexTasks(tx, source, len(source)); err != nil {
				return err
			}

			target, err := loadSiblings(tx, *fields.ColumnID, task.ID)
			if err != nil {
				return err
			}
			slot := len(target) // append unless a position accompanies the move
			if fields.Position != nil {
				slot = ordering.ClampInsert(*fields.Position, len(target))
			}
			if err := reindexTasks(tx, target, slot); err != nil {
				return err
			}
			updates["column_id"] = *fields.ColumnID
			updates["position"] = slot

		case fields.Position != nil:
			siblings, err := loadSiblings(tx, task.ColumnID, task.ID)
			if err != nil {
				return err
			}
			slot := ordering.ClampMove(*fields.Position, len(siblings))
			if err := reindexTasks(tx, siblings, slot); err != nil {
				return err
			}
			updates["position"] = slot
		}

		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return tx.First(&task, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task, closes the position gap among its siblings, and
// nulls the dependency link of any task that pointed at it.
func (r *TaskRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task domain.Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		if err := tx.Model(&domain.Task{}).
			Where("dependency_id = ?", id).
			Update("dependency_id", nil).Error; err != nil {
			return fmt.Errorf("failed to clear dependency links: %w", err)
		}

		if err := tx.Delete(&task).Error; err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		siblings, err := loadSiblings(tx, task.ColumnID, "")
		if err != nil {
			return err
		}
		return reindexTasks(tx, siblings, len(siblings))
	})
}

func loadSiblings(tx *gorm.DB, columnID, excludeID string) ([]domain.Task, error) {
	var siblings []domain.Task
	query := tx.Where("column_id = ?", columnID).Order("position ASC")
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&siblings).Error; err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return siblings, nil
}

func reindexTasks(tx *gorm.DB, siblings []domain.Task, slot int) error {
	positions := ordering.Slots(len(siblings), slot)
	for i := range siblings {
		if siblings[i].Position == positions[i] {
			continue
		}
		if err := tx.Model(&domain.Task{}).
			Where("id = ?", siblings[i].ID).
			Update("position", positions[i]).Error; err != nil {
			return fmt.Errorf("failed to reindex task: %w", err)
		}
	}
	return nil
}
