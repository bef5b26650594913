package task

import (
	"time"

	domain "github.com/example/kanban-backend/domain/task"
)

// CreateTaskRequest is the request for the create-task service. A nil
// position appends to the column.
type CreateTaskRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	ColumnID       string     `json:"column_id"`
	AssignedUserID *string    `json:"assigned_user_id,omitempty"`
	Status         string     `json:"status,omitempty"`
	Position       *int       `json:"position,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	DependencyID   *string    `json:"dependency_id,omitempty"`
}

// ListTasksRequest is the request for the list-tasks service. Empty filters
// match everything.
type ListTasksRequest struct {
	ColumnID       string `json:"column_id,omitempty"`
	AssignedUserID string `json:"assigned_user_id,omitempty"`
}

// ListTasksResponse is the response for the list-tasks and
// list-tasks-by-status services.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Count int           `json:"count"`
}

// ListTasksByStatusRequest is the request for the list-tasks-by-status
// service.
type ListTasksByStatusRequest struct {
	Status string `json:"status"`
}

// GetTaskRequest is the request for the get-task service.
type GetTaskRequest struct {
	TaskID string `json:"task_id"`
}

// UpdateTaskRequest is the request for the update-task service. Nil fields
// are left untouched; explicit nulls clear the assignee or dependency.
type UpdateTaskRequest struct {
	TaskID         string     `json:"task_id"`
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	ColumnID       *string    `json:"column_id,omitempty"`
	AssignedUserID *string    `json:"assigned_user_id,omitempty"`
	ClearAssignee  bool       `json:"clear_assignee,omitempty"`
	Status         *string    `json:"status,omitempty"`
	Position       *int       `json:"position,omitempty"`
	Priority       *string    `json:"priority,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	DependencyID   *string    `json:"dependency_id,omitempty"`
	ClearDeps      bool       `json:"clear_dependency,omitempty"`
}

// DeleteTaskRequest is the request for the delete-task service.
type DeleteTaskRequest struct {
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse is the response for the delete-task service.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	TaskID  string `json:"task_id"`
}
