package task

import (
	"context"
	"log"
	"time"

	"github.com/example/kanban-backend/domain/ordering"
	domain "github.com/example/kanban-backend/domain/task"
	"github.com/example/kanban-backend/events"
	"github.com/go-monolith/mono"
)

func (m *TaskModule) handleCreateTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	status := domain.StatusTodo
	if req.Status != "" {
		status = domain.Status(req.Status)
		if !status.Valid() {
			return domain.Task{}, ErrInvalidStatus
		}
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	task := &domain.Task{
		Title:          req.Title,
		Description:    req.Description,
		ColumnID:       req.ColumnID,
		AssignedUserID: req.AssignedUserID,
		Status:         status,
		Priority:       priority,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		DependencyID:   req.DependencyID,
	}

	position := ordering.Append
	if req.Position != nil {
		position = *req.Position
	}
	if err := m.repo.Create(task, position); err != nil {
		return domain.Task{}, err
	}
	return *task, nil
}

func (m *TaskModule) handleListTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.repo.List(req.ColumnID, req.AssignedUserID)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks, Count: len(tasks)}, nil
}

func (m *TaskModule) handleListTasksByStatus(_ context.Context, req ListTasksByStatusRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.repo.ListByStatus(domain.Status(req.Status))
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks, Count: len(tasks)}, nil
}

func (m *TaskModule) handleGetTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (domain.Task, error) {
	task, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		return domain.Task{}, err
	}
	return *task, nil
}

func (m *TaskModule) handleUpdateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	fields := UpdateFields{
		Title:          req.Title,
		Description:    req.Description,
		ColumnID:       req.ColumnID,
		AssignedUserID: req.AssignedUserID,
		ClearAssignee:  req.ClearAssignee,
		Position:       req.Position,
		Priority:       req.Priority,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		DependencyID:   req.DependencyID,
		ClearDeps:      req.ClearDeps,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		fields.Status = &status
	}

	before, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		return domain.Task{}, err
	}

	task, err := m.repo.Update(req.TaskID, fields)
	if err != nil {
		return domain.Task{}, err
	}

	moved := task.ColumnID != before.ColumnID || task.Position != before.Position
	if moved && m.eventBus != nil {
		event := events.TaskMovedEvent{
			TaskID:       task.ID,
			FromColumnID: before.ColumnID,
			ToColumnID:   task.ColumnID,
			Position:     task.Position,
			MovedAt:      time.Now(),
		}
		if err := events.TaskMovedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskMoved event for task %s: %v", task.ID, err)
		}
	}
	return *task, nil
}

func (m *TaskModule) handleDeleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.repo.Delete(req.TaskID); err != nil {
		return DeleteTaskResponse{Deleted: false, TaskID: req.TaskID}, err
	}
	return DeleteTaskResponse{Deleted: true, TaskID: req.TaskID}, nil
}
