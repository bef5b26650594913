package notification

import (
	"errors"
	"testing"

	domain "github.com/example/kanban-backend/domain/notification"
	domainuser "github.com/example/kanban-backend/domain/user"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domainuser.User{}, &domain.Notification{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *domainuser.User {
	t.Helper()
	user := &domainuser.User{
		ID:           uuid.New().String(),
		Name:         "Test User",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestNotificationRepository_CreateAndPayloadRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	user := createTestUser(t, db)

	note := &domain.Notification{
		UserID:          user.ID,
		Type:            domain.TypeBoardInvitation,
		Message:         "invited",
		RelatedItemID:   "board-1",
		RelatedItemType: "board",
		Payload: domain.Payload{
			domain.PayloadBoardID:   "board-1",
			domain.PayloadBoardName: "Roadmap",
		},
	}
	if err := repo.Create(note); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	loaded, err := repo.FindByID(note.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if loaded.Payload[domain.PayloadBoardName] != "Roadmap" {
		t.Errorf("payload board_name = %v, want %q", loaded.Payload[domain.PayloadBoardName], "Roadmap")
	}
	if loaded.IsRead {
		t.Error("new notification is marked read")
	}
}

func TestNotificationRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)

	for _, n := range []*domain.Notification{
		{UserID: alice.ID, Type: "message", Message: "one"},
		{UserID: alice.ID, Type: "message", Message: "two"},
		{UserID: bob.ID, Type: "message", Message: "three"},
	} {
		if err := repo.Create(n); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	forAlice, err := repo.List(alice.ID, nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(forAlice) != 2 {
		t.Errorf("List(alice) = %d notifications, want 2", len(forAlice))
	}

	read := true
	none, err := repo.List(alice.ID, &read)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("List(alice, read) = %v, want empty slice", none)
	}
}

func TestNotificationRepository_MarkRead_PreservesRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	user := createTestUser(t, db)

	note := &domain.Notification{UserID: user.ID, Type: "message", Message: "hello"}
	if err := repo.Create(note); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	marked, err := repo.MarkRead(note.ID)
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if !marked.IsRead {
		t.Error("MarkRead() did not set the read flag")
	}

	// The row stays retrievable; marking read is not a delete.
	loaded, err := repo.FindByID(note.ID)
	if err != nil {
		t.Fatalf("FindByID() after MarkRead error = %v", err)
	}
	if !loaded.IsRead {
		t.Error("read flag not persisted")
	}

	if _, err := repo.MarkRead("missing-id"); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("MarkRead() of missing notification error = %v, want ErrNotificationNotFound", err)
	}
}

func TestNotificationRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	user := createTestUser(t, db)

	note := &domain.Notification{UserID: user.ID, Type: "message", Message: "bye"}
	if err := repo.Create(note); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(note.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(note.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("Delete() of missing notification error = %v, want ErrNotificationNotFound", err)
	}
}
