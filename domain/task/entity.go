package task

import (
	"time"

	"github.com/example/kanban-backend/domain/user"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is one of the known workflow states.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Task is a unit of work within a column. Positions of a column's tasks form
// a dense 0..M-1 sequence. The dependency link is a plain nullable reference;
// deleting the target nulls it without touching the referencing task.
type Task struct {
	ID             string     `gorm:"primarykey;size:36" json:"id"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"size:2000" json:"description,omitempty"`
	ColumnID       string     `gorm:"size:36;not null;index" json:"column_id"`
	AssignedUserID *string    `gorm:"size:36" json:"assigned_user_id,omitempty"`
	AssignedUser   *user.User `gorm:"foreignKey:AssignedUserID;constraint:OnDelete:SET NULL" json:"-"`
	Status         Status     `gorm:"size:20;not null;default:todo" json:"status"`
	Position       int        `gorm:"not null;default:0" json:"position"`
	Priority       string     `gorm:"size:20;not null;default:medium" json:"priority"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	DependencyID   *string    `gorm:"size:36" json:"dependency_id,omitempty"`
	Dependency     *Task      `gorm:"foreignKey:DependencyID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}
