package member

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/example/kanban-backend/domain/member"
	"github.com/example/kanban-backend/events"
	"github.com/example/kanban-backend/modules/auth"
	"github.com/example/kanban-backend/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// MemberModule owns the board_members table and the invitation flow. It
// resolves invitation candidates through the auth module and optionally
// throttles inviters through Redis.
type MemberModule struct {
	db       *gorm.DB
	repo     *MemberRepository
	authPort auth.AuthPort
	throttle *InviteThrottle
	eventBus mono.EventBus
	dbPath   string
}

var _ mono.Module = (*MemberModule)(nil)
var _ mono.ServiceProviderModule = (*MemberModule)(nil)
var _ mono.DependentModule = (*MemberModule)(nil)
var _ mono.EventEmitterModule = (*MemberModule)(nil)
var _ mono.HealthCheckableModule = (*MemberModule)(nil)

// NewModule creates a new MemberModule.
func NewModule() *MemberModule {
	return &MemberModule{dbPath: store.DefaultPath()}
}

// Name returns the module name.
func (m *MemberModule) Name() string {
	return "member"
}

// Dependencies lists the modules this one needs: auth for candidate lookup,
// board and notification for the tables memberships and invitations join.
func (m *MemberModule) Dependencies() []string {
	return []string{"auth", "board", "notification"}
}

// SetDependencyServiceContainer wires the auth port.
func (m *MemberModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "auth" {
		m.authPort = auth.NewAuthAdapter(container)
	}
}

// SetEventBus stores the event bus for publishing.
func (m *MemberModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *MemberModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.MemberInvitedV1.ToBase(),
		events.MemberJoinedV1.ToBase(),
	}
}

// Start opens the database, migrates the board_members table, and arms the
// optional invitation throttle.
func (m *MemberModule) Start(_ context.Context) error {
	if m.authPort == nil {
		return fmt.Errorf("authPort dependency not set")
	}

	db, err := store.Open(m.dbPath)
	if err != nil {
		return err
	}
	m.db = db

	if err := db.AutoMigrate(&domain.BoardMember{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.repo = NewMemberRepository(db)
	m.throttle = NewInviteThrottleFromEnv()
	if m.throttle != nil {
		log.Println("[member] Invitation throttle enabled")
	}

	log.Printf("[member] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database and Redis connections.
func (m *MemberModule) Stop(_ context.Context) error {
	if err := m.throttle.Close(); err != nil {
		log.Printf("[member] Warning: failed to close throttle: %v", err)
	}
	if err := store.Close(m.db); err != nil {
		return err
	}
	log.Println("[member] Module stopped")
	return nil
}

// Health reports the database connectivity of the module.
func (m *MemberModule) Health(ctx context.Context) mono.HealthStatus {
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
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"throttle": m.throttle != nil},
	}
}

// RegisterServices registers the membership request-reply services.
func (m *MemberModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"add-member": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "add-member", json.Unmarshal, json.Marshal, m.handleAddMember)
		},
		"request-membership": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "request-membership", json.Unmarshal, json.Marshal, m.handleRequestMembership)
		},
		"accept-invitation": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "accept-invitation", json.Unmarshal, json.Marshal, m.handleAcceptInvitation)
		},
		"list-members": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-members", json.Unmarshal, json.Marshal, m.handleListMembers)
		},
		"get-member": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "get-member", json.Unmarshal, json.Marshal, m.handleGetMember)
		},
		"update-member": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "update-member", json.Unmarshal, json.Marshal, m.handleUpdateMember)
		},
		"remove-member": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "remove-member", json.Unmarshal, json.Marshal, m.handleRemoveMember)
		},
	}
	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[member] Registered services: add-member, request-membership, accept-invitation, list-members, get-member, update-member, remove-member")
	return nil
}
