package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskhub/taskhub-backend/internal/domain"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedTask inserts a task with an explicit creation time so ordering
// assertions are deterministic.
func seedTask(t *testing.T, db *gorm.DB, userID, title string, completed bool, priority domain.Priority, dueDate *time.Time, createdAt time.Time) domain.Task {
	t.Helper()

	task := domain.Task{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Completed: completed,
		Priority:  priority,
		DueDate:   dueDate,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("failed to seed task %q: %v", title, err)
	}
	return task
}

func TestTaskRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTaskRepository(db)

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	desc := "milk, eggs, bread"
	task := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      uuid.New().String(),
		Title:       "Buy groceries",
		Description: &desc,
		Priority:    domain.PriorityMedium,
		DueDate:     &due,
	}

	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID(task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != task.Title {
		t.Errorf("expected title %q, got %q", task.Title, found.Title)
	}
	if found.Description == nil || *found.Description != desc {
		t.Errorf("expected description %q, got %v", desc, found.Description)
	}
	if found.Completed {
		t.Error("expected new task to be pending")
	}
	if found.DueDate == nil || !found.DueDate.Equal(due) {
		t.Errorf("expected due date %v, got %v", due, found.DueDate)
	}
}

func TestTaskRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTaskRepository(db)

	if _, err := repo.FindByID(uuid.New().String()); err != ErrTaskNotFound {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTaskRepository(db)
	userID := uuid.New().String()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedTask(t, db, userID, "pending low", false, domain.PriorityLow, nil, base)
	seedTask(t, db, userID, "pending high", false, domain.PriorityHigh, nil, base.Add(time.Minute))
	seedTask(t, db, userID, "done high", true, domain.PriorityHigh, nil, base.Add(2*time.Minute))
	seedTask(t, db, userID, "done medium", true, domain.PriorityMedium, nil, base.Add(3*time.Minute))
	// Another user's task must never leak into the listing.
	seedTask(t, db, uuid.New().String(), "other user", false, domain.PriorityHigh, nil, base.Add(4*time.Minute))

	cases := []struct {
		name    string
		filters domain.TaskFilters
		want    []string
	}{
		{"all", domain.TaskFilters{}, []string{"done medium", "done high", "pending high", "pending low"}},
		{"pending", domain.TaskFilters{Status: domain.StatusPending}, []string{"pending high", "pending low"}},
		{"completed", domain.TaskFilters{Status: domain.StatusCompleted}, []string{"done medium", "done high"}},
		{"high", domain.TaskFilters{Priority: domain.PriorityOnlyHigh}, []string{"done high", "pending high"}},
		{"pending+high", domain.TaskFilters{Status: domain.StatusPending, Priority: domain.PriorityOnlyHigh}, []string{"pending high"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tasks, total, err := repo.List(userID, tc.filters, 1, 10)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if total != int64(len(tc.want)) {
				t.Errorf("expected total %d, got %d", len(tc.want), total)
			}
			if len(tasks) != len(tc.want) {
				t.Fatalf("expected %d tasks, got %d", len(tc.want), len(tasks))
			}
			for i, title := range tc.want {
				if tasks[i].Title != title {
					t.Errorf("position %d: expected %q, got %q", i, title, tasks[i].Title)
				}
			}
		})
	}
}

func TestTaskRepository_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTaskRepository(db)
	userID := uuid.New().String()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		seedTask(t, db, userID, fmt.Sprintf("task %02d", i), false, domain.PriorityLow, nil, base.Add(time.Duration(i)*time.Minute))
	}

	cases := []struct {
		page     int
		wantLen  int
		wantRows int64
	}{
		{1, 10, 25},
		{2, 10, 25},
		{3, 5, 25},
		{4, 0, 25},
	}

	for _, tc := range cases {
		tasks, total, err := repo.List(userID, domain.TaskFilters{}, tc.page, 10)
		if err != nil {
			t.Fatalf("List(page=%d) error = %v", tc.page, err)
		}
		if len(tasks) != tc.wantLen {
			t.Errorf("page %d: expected %d tasks, got %d", tc.page, tc.wantLen, len(tasks))
		}
		if total != tc.wantRows {
			t.Errorf("page %d: expected total %d, got %d", tc.page, tc.wantRows, total)
		}
	}

	// Newest first: page 1 starts at the most recently created task.
	tasks, _, err := repo.List(userID, domain.TaskFilters{}, 1, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if tasks[0].Title != "task 24" {
		t.Errorf("expected newest task first, got %q", tasks[0].Title)
	}
}

func TestTaskRepository_Stats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTaskRepository(db)
	userID := uuid.New().String()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	seedTask(t, db, userID, "overdue", false, domain.PriorityHigh, &yesterday, now)
	seedTask(t, db, userID, "was overdue but done", true, domain.PriorityLow, &yesterday, now)
	seedTask(t, db, userID, "upcoming", false, domain.PriorityMedium, &tomorrow, now)
	seedTask(t, db, userID, "no due date", false, domain.PriorityLow, nil, now)

	stats, err := repo.Stats(userID, now)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	if stats.Total != 4 {
		t.Errorf("expected total 4, got %d", stats.Total)
	}
	if stats.Pending != 3 {
		t.Errorf("expected pending 3, got %d", stats.Pending)
	}
	if stats.Completed != 1 {
		t.Errorf("expected completed 1, got %d", stats.Completed)
	}
	if stats.Overdue != 1 {
		t.Errorf("expected overdue 1, got %d", stats.Overdue)
	}
}

func TestTaskRepository_Recent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTaskRepository(db)
	userID := uuid.New().String()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		seedTask(t, db, userID, fmt.Sprintf("task %d", i), false, domain.PriorityLow, nil, base.Add(time.Duration(i)*time.Hour))
	}

	recent, err := repo.Recent(userID, 5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("expected 5 recent tasks, got %d", len(recent))
	}
	if recent[0].Title != "task 6" {
		t.Errorf("expected newest task first, got %q", recent[0].Title)
	}
	if recent[4].Title != "task 2" {
		t.Errorf("expected truncation at 5, got %q last", recent[4].Title)
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTaskRepository(db)
	task := seedTask(t, db, uuid.New().String(), "gone", false, domain.PriorityLow, nil, time.Now())

	if err := repo.Delete(task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.FindByID(task.ID); err != ErrTaskNotFound {
		t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
	}

	// Hard delete: the row is gone, not tombstoned.
	var count int64
	if err := db.Model(&domain.Task{}).Where("id = ?", task.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 rows after delete, got %d", count)
	}

	if err := repo.Delete(task.ID); err != ErrTaskNotFound {
		t.Errorf("expected ErrTaskNotFound on double delete, got %v", err)
	}
}
