package board

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/example/kanban-backend/domain/board"
	"github.com/example/kanban-backend/events"
	"github.com/example/kanban-backend/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// BoardModule owns the boards and columns tables. Board creation is an
// aggregate: the board row, the owner membership, and the default columns
// commit together.
type BoardModule struct {
	db       *gorm.DB
	repo     *BoardRepository
	eventBus mono.EventBus
	dbPath   string
}

var _ mono.Module = (*BoardModule)(nil)
var _ mono.ServiceProviderModule = (*BoardModule)(nil)
var _ mono.DependentModule = (*BoardModule)(nil)
var _ mono.EventEmitterModule = (*BoardModule)(nil)
var _ mono.HealthCheckableModule = (*BoardModule)(nil)

// NewModule creates a new BoardModule.
func NewModule() *BoardModule {
	return &BoardModule{dbPath: store.DefaultPath()}
}

// Name returns the module name.
func (m *BoardModule) Name() string {
	return "board"
}

// Dependencies lists the modules whose tables must exist before this one
// migrates (boards reference users).
func (m *BoardModule) Dependencies() []string {
	return []string{"auth"}
}

// SetDependencyServiceContainer is required by DependentModule; the board
// module depends on auth only for migration ordering.
func (m *BoardModule) SetDependencyServiceContainer(_ string, _ mono.ServiceContainer) {}

// SetEventBus stores the event bus for publishing.
func (m *BoardModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *BoardModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.BoardCreatedV1.ToBase(),
	}
}

// Start opens the database and migrates the boards and columns tables.
func (m *BoardModule) Start(_ context.Context) error {
	db, err := store.Open(m.dbPath)
	if err != nil {
		return err
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Board{}, &domain.Column{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.repo = NewBoardRepository(db)
	log.Printf("[board] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *BoardModule) Stop(_ context.Context) error {
	if err := store.Close(m.db); err != nil {
		return err
	}
	log.Println("[board] Module stopped")
	return nil
}

// Health reports the database connectivity of the module.
func (m *BoardModule) Health(ctx context.Context) mono.HealthStatus {
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

// RegisterServices registers the board and column request-reply services.
func (m *BoardModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"create-board": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "create-board", json.Unmarshal, json.Marshal, m.handleCreateBoard)
		},
		"list-boards": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-boards", json.Unmarshal, json.Marshal, m.handleListBoards)
		},
		"get-board": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "get-board", json.Unmarshal, json.Marshal, m.handleGetBoard)
		},
		"update-board": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "update-board", json.Unmarshal, json.Marshal, m.handleUpdateBoard)
		},
		"delete-board": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "delete-board", json.Unmarshal, json.Marshal, m.handleDeleteBoard)
		},
		"create-column": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "create-column", json.Unmarshal, json.Marshal, m.handleCreateColumn)
		},
		"list-columns": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-columns", json.Unmarshal, json.Marshal, m.handleListColumns)
		},
		"get-column": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "get-column", json.Unmarshal, json.Marshal, m.handleGetColumn)
		},
		"update-column": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "update-column", json.Unmarshal, json.Marshal, m.handleUpdateColumn)
		},
		"move-column": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "move-column", json.Unmarshal, json.Marshal, m.handleMoveColumn)
		},
		"delete-column": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "delete-column", json.Unmarshal, json.Marshal, m.handleDeleteColumn)
		},
	}
	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[board] Registered services: create-board, list-boards, get-board, update-board, delete-board, create-column, list-columns, get-column, update-column, move-column, delete-column")
	return nil
}
