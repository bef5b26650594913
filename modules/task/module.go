package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/example/kanban-backend/domain/task"
	"github.com/example/kanban-backend/events"
	"github.com/example/kanban-backend/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// TaskModule owns the tasks table and the per-column task ordering.
type TaskModule struct {
	db       *gorm.DB
	repo     *TaskRepository
	eventBus mono.EventBus
	dbPath   string
}

var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.DependentModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule() *TaskModule {
	return &TaskModule{dbPath: store.DefaultPath()}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Dependencies lists the modules whose tables must exist before this one
// migrates (tasks reference columns and users).
func (m *TaskModule) Dependencies() []string {
	return []string{"auth", "board"}
}

// SetDependencyServiceContainer is required by DependentModule; the task
// module depends on auth and board only for migration ordering.
func (m *TaskModule) SetDependencyServiceContainer(_ string, _ mono.ServiceContainer) {}

// SetEventBus stores the event bus for publishing.
func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskMovedV1.ToBase(),
	}
}

// Start opens the database and migrates the tasks table.
func (m *TaskModule) Start(_ context.Context) error {
	db, err := store.Open(m.dbPath)
	if err != nil {
		return err
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.repo = NewTaskRepository(db)
	log.Printf("[task] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *TaskModule) Stop(_ context.Context) error {
	if err := store.Close(m.db); err != nil {
		return err
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health reports the database connectivity of the module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
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

// RegisterServices registers the task request-reply services.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"create-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "create-task", json.Unmarshal, json.Marshal, m.handleCreateTask)
		},
		"list-tasks": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-tasks", json.Unmarshal, json.Marshal, m.handleListTasks)
		},
		"list-tasks-by-status": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-tasks-by-status", json.Unmarshal, json.Marshal, m.handleListTasksByStatus)
		},
		"get-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "get-task", json.Unmarshal, json.Marshal, m.handleGetTask)
		},
		"update-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "update-task", json.Unmarshal, json.Marshal, m.handleUpdateTask)
		},
		"delete-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "delete-task", json.Unmarshal, json.Marshal, m.handleDeleteTask)
		},
	}
	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[task] Registered services: create-task, list-tasks, list-tasks-by-status, get-task, update-task, delete-task")
	return nil
}
