package activity

import (
	"context"
	"fmt"
	"testing"
)

func TestActivityModule_RecordAndRecent(t *testing.T) {
	m := NewModule()

	m.record("board_created", "b1", "Board created")
	m.record("task_moved", "t1", "Task moved")

	entries := m.Recent()
	if len(entries) != 2 {
		t.Fatalf("Recent() = %d entries, want 2", len(entries))
	}
	if entries[0].Kind != "board_created" || entries[1].Kind != "task_moved" {
		t.Errorf("entries out of order: %v", entries)
	}

	// Recent returns a copy; mutating it must not touch the log.
	entries[0].Kind = "tampered"
	if m.Recent()[0].Kind != "board_created" {
		t.Error("Recent() exposed internal state")
	}
}

func TestActivityModule_Bounded(t *testing.T) {
	m := NewModule()

	for i := 0; i < maxEntries+10; i++ {
		m.record("task_moved", fmt.Sprintf("t%d", i), "moved")
	}

	entries := m.Recent()
	if len(entries) != maxEntries {
		t.Fatalf("Recent() = %d entries, want %d", len(entries), maxEntries)
	}
	// The oldest entries rolled off.
	if entries[0].SubjectID != "t10" {
		t.Errorf("entries[0].SubjectID = %s, want t10", entries[0].SubjectID)
	}
}

func TestActivityModule_RecentActivityService(t *testing.T) {
	m := NewModule()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		m.record("task_moved", fmt.Sprintf("t%d", i), "moved")
	}

	// A limit returns the newest entries, oldest first.
	resp, err := m.handleRecentActivity(ctx, RecentActivityRequest{Limit: 2}, nil)
	if err != nil {
		t.Fatalf("handleRecentActivity() error = %v", err)
	}
	if resp.Count != 2 || len(resp.Entries) != 2 {
		t.Fatalf("handleRecentActivity() count = %d, want 2", resp.Count)
	}
	if resp.Entries[0].SubjectID != "t3" || resp.Entries[1].SubjectID != "t4" {
		t.Errorf("entries = %v, want the two newest", resp.Entries)
	}

	// No limit returns the whole log.
	resp, err = m.handleRecentActivity(ctx, RecentActivityRequest{}, nil)
	if err != nil {
		t.Fatalf("handleRecentActivity() error = %v", err)
	}
	if resp.Count != 5 {
		t.Errorf("handleRecentActivity() count = %d, want 5", resp.Count)
	}
}
