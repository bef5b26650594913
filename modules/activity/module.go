package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/kanban-backend/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// maxEntries bounds the in-memory log; older entries roll off.
const maxEntries = 1000

// Entry is one recorded domain event.
type Entry struct {
	Kind       string    `json:"kind"`
	SubjectID  string    `json:"subject_id"`
	Message    string    `json:"message"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ActivityModule passively consumes domain events and keeps a bounded
// in-memory log of recent activity.
type ActivityModule struct {
	entries []Entry
	mu      sync.RWMutex
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.ServiceProviderModule = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)

// RecentActivityRequest asks for the newest entries. A non-positive limit
// returns the whole log.
type RecentActivityRequest struct {
	Limit int `json:"limit"`
}

// RecentActivityResponse carries the requested slice of the feed.
type RecentActivityResponse struct {
	Entries []Entry `json:"entries"`
	Count   int     `json:"count"`
}

// NewModule creates a new ActivityModule.
func NewModule() *ActivityModule {
	return &ActivityModule{
		entries: make([]Entry, 0),
	}
}

// Name returns the module name.
func (m *ActivityModule) Name() string {
	return "activity"
}

// RegisterEventConsumers subscribes to the domain events worth recording.
func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.BoardCreatedV1, m.handleBoardCreated, m); err != nil {
		return fmt.Errorf("failed to register BoardCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.MemberInvitedV1, m.handleMemberInvited, m); err != nil {
		return fmt.Errorf("failed to register MemberInvited consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.MemberJoinedV1, m.handleMemberJoined, m); err != nil {
		return fmt.Errorf("failed to register MemberJoined consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskMovedV1, m.handleTaskMoved, m); err != nil {
		return fmt.Errorf("failed to register TaskMoved consumer: %w", err)
	}

	log.Printf("[activity] Registered event consumers: BoardCreated, MemberInvited, MemberJoined, TaskMoved")
	return nil
}

func (m *ActivityModule) handleBoardCreated(_ context.Context, event events.BoardCreatedEvent, _ *mono.Msg) error {
	m.record("board_created", event.BoardID,
		fmt.Sprintf("Board %q created by user %s", event.Name, event.OwnerID))
	return nil
}

func (m *ActivityModule) handleMemberInvited(_ context.Context, event events.MemberInvitedEvent, _ *mono.Msg) error {
	m.record("member_invited", event.NotificationID,
		fmt.Sprintf("User %s invited to board %s", event.UserID, event.BoardID))
	return nil
}

func (m *ActivityModule) handleMemberJoined(_ context.Context, event events.MemberJoinedEvent, _ *mono.Msg) error {
	m.record("member_joined", event.MemberID,
		fmt.Sprintf("User %s joined board %s", event.UserID, event.BoardID))
	return nil
}

func (m *ActivityModule) handleTaskMoved(_ context.Context, event events.TaskMovedEvent, _ *mono.Msg) error {
	m.record("task_moved", event.TaskID,
		fmt.Sprintf("Task %s moved to column %s position %d", event.TaskID, event.ToColumnID, event.Position))
	return nil
}

func (m *ActivityModule) record(kind, subjectID, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, Entry{
		Kind:       kind,
		SubjectID:  subjectID,
		Message:    message,
		RecordedAt: time.Now(),
	})
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

// Recent returns a copy of the recorded entries, oldest first.
func (m *ActivityModule) Recent() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// RegisterServices exposes the feed as a request-reply service.
func (m *ActivityModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(container, "recent-activity", json.Unmarshal, json.Marshal, m.handleRecentActivity); err != nil {
		return fmt.Errorf("failed to register recent-activity service: %w", err)
	}

	log.Printf("[activity] Registered services: recent-activity")
	return nil
}

func (m *ActivityModule) handleRecentActivity(_ context.Context, req RecentActivityRequest, _ *mono.Msg) (RecentActivityResponse, error) {
	entries := m.Recent()
	if req.Limit > 0 && req.Limit < len(entries) {
		entries = entries[len(entries)-req.Limit:]
	}
	return RecentActivityResponse{Entries: entries, Count: len(entries)}, nil
}

// Start marks the module ready.
func (m *ActivityModule) Start(_ context.Context) error {
	log.Println("[activity] Module started - listening for domain events")
	return nil
}

// Stop marks the module stopped.
func (m *ActivityModule) Stop(_ context.Context) error {
	log.Println("[activity] Module stopped")
	return nil
}
