package task

import (
	"errors"
	"testing"

	domainboard "github.com/example/kanban-backend/domain/board"
	domain "github.com/example/kanban-backend/domain/task"
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

	if err := db.AutoMigrate(
		&domainuser.User{},
		&domainboard.Board{},
		&domainboard.Column{},
		&domain.Task{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestColumn(t *testing.T, db *gorm.DB) *domainboard.Column {
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
	board := &domainboard.Board{
		ID:     uuid.New().String(),
		Name:   "Test Board",
		UserID: user.ID,
	}
	if err := db.Create(board).Error; err != nil {
		t.Fatalf("failed to create test board: %v", err)
	}
	column := &domainboard.Column{
		ID:      uuid.New().String(),
		Title:   "To Do",
		BoardID: board.ID,
	}
	if err := db.Create(column).Error; err != nil {
		t.Fatalf("failed to create test column: %v", err)
	}
	return column
}

func createTestTask(t *testing.T, repo *TaskRepository, columnID, title string) *domain.Task {
	t.Helper()
	task := &domain.Task{
		Title:    title,
		ColumnID: columnID,
		Status:   domain.StatusTodo,
		Priority: "medium",
	}
	if err := repo.Create(task, -1); err != nil {
		t.Fatalf("Create(%q) error = %v", title, err)
	}
	return task
}

func columnOrder(t *testing.T, repo *TaskRepository, columnID string) []string {
	t.Helper()
	tasks, err := repo.List(columnID, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	titles := make([]string, len(tasks))
	for i, task := range tasks {
		if task.Position != i {
			t.Fatalf("task %q at position %d, want dense sequence", task.Title, task.Position)
		}
		titles[i] = task.Title
	}
	return titles
}

func TestTaskRepository_Create_AppendsAndInserts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	column := createTestColumn(t, db)

	a := createTestTask(t, repo, column.ID, "A")
	b := createTestTask(t, repo, column.ID, "B")
	if a.Position != 0 || b.Position != 1 {
		t.Errorf("append positions = %d, %d, want 0, 1", a.Position, b.Position)
	}

	// Insert at the front shifts the others.
	front := &domain.Task{Title: "Front", ColumnID: column.ID, Status: domain.StatusTodo}
	if err := repo.Create(front, 0); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got := columnOrder(t, repo, column.ID)
	want := []string{"Front", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestTaskRepository_Create_MissingColumn(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := &domain.Task{Title: "Orphan", ColumnID: "missing", Status: domain.StatusTodo}
	if err := repo.Create(task, -1); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Create() error = %v, want ErrColumnNotFound", err)
	}
}

func TestTaskRepository_Update_MoveWithinColumn(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	column := createTestColumn(t, db)

	createTestTask(t, repo, column.ID, "A")
	createTestTask(t, repo, column.ID, "B")
	c := createTestTask(t, repo, column.ID, "C")

	// Moving C from position 2 to position 0 yields [C, A, B].
	pos := 0
	moved, err := repo.Update(c.ID, UpdateFields{Position: &pos})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if moved.Position != 0 {
		t.Errorf("moved.Position = %d, want 0", moved.Position)
	}
	got := columnOrder(t, repo, column.ID)
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	// Moving to the current position is idempotent.
	if _, err := repo.Update(c.ID, UpdateFields{Position: &pos}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got = columnOrder(t, repo, column.ID)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after self-move = %v, want %v", got, want)
		}
	}
}

func TestTaskRepository_Update_CrossColumnMove(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	source := createTestColumn(t, db)
	target := &domainboard.Column{
		ID:       uuid.New().String(),
		Title:    "Done",
		BoardID:  source.BoardID,
		Position: 1,
	}
	if err := db.Create(target).Error; err != nil {
		t.Fatalf("failed to create target column: %v", err)
	}

	createTestTask(t, repo, source.ID, "A")
	b := createTestTask(t, repo, source.ID, "B")
	createTestTask(t, repo, source.ID, "C")
	createTestTask(t, repo, target.ID, "X")

	// Move B into the target column at position 0; the source closes its gap
	// and the target shifts X back, all in one operation.
	pos := 0
	moved, err := repo.Update(b.ID, UpdateFields{ColumnID: &target.ID, Position: &pos})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if moved.ColumnID != target.ID || moved.Position != 0 {
		t.Errorf("moved = {column: %s, position: %d}, want {%s, 0}", moved.ColumnID, moved.Position, target.ID)
	}

	gotSource := columnOrder(t, repo, source.ID)
	wantSource := []string{"A", "C"}
	for i := range wantSource {
		if gotSource[i] != wantSource[i] {
			t.Fatalf("source order = %v, want %v", gotSource, wantSource)
		}
	}
	gotTarget := columnOrder(t, repo, target.ID)
	wantTarget := []string{"B", "X"}
	for i := range wantTarget {
		if gotTarget[i] != wantTarget[i] {
			t.Fatalf("target order = %v, want %v", gotTarget, wantTarget)
		}
	}
}

func TestTaskRepository_Update_InvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	column := createTestColumn(t, db)
	task := createTestTask(t, repo, column.ID, "A")

	bad := domain.Status("not-a-status")
	if _, err := repo.Update(task.ID, UpdateFields{Status: &bad}); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Update() error = %v, want ErrInvalidStatus", err)
	}
}

func TestTaskRepository_Delete_ClosesGapAndNullsDependents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	column := createTestColumn(t, db)

	createTestTask(t, repo, column.ID, "A")
	b := createTestTask(t, repo, column.ID, "B")
	createTestTask(t, repo, column.ID, "C")

	// D depends on B.
	d := &domain.Task{
		Title:        "D",
		ColumnID:     column.ID,
		Status:       domain.StatusTodo,
		DependencyID: &b.ID,
	}
	if err := repo.Create(d, -1); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Deleting B from [A(0), B(1), C(2), D(3)] closes the gap.
	if err := repo.Delete(b.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got := columnOrder(t, repo, column.ID)
	want := []string{"A", "C", "D"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	// D survives with its dependency link nulled.
	survivor, err := repo.FindByID(d.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if survivor.DependencyID != nil {
		t.Errorf("survivor.DependencyID = %v, want nil", *survivor.DependencyID)
	}

	if err := repo.Delete(b.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Delete() of missing task error = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	column := createTestColumn(t, db)

	task := createTestTask(t, repo, column.ID, "A")
	status := domain.StatusDone
	if _, err := repo.Update(task.ID, UpdateFields{Status: &status}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	done, err := repo.ListByStatus(domain.StatusDone)
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if len(done) != 1 {
		t.Errorf("ListByStatus(done) = %d tasks, want 1", len(done))
	}

	// Empty results are empty slices, not errors.
	review, err := repo.ListByStatus(domain.StatusReview)
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if review == nil || len(review) != 0 {
		t.Errorf("ListByStatus(review) = %v, want empty slice", review)
	}

	if _, err := repo.ListByStatus(domain.Status("bogus")); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("ListByStatus(bogus) error = %v, want ErrInvalidStatus", err)
	}

	none, err := repo.List("no-such-column", "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("List(no-such-column) = %v, want empty slice", none)
	}
}
