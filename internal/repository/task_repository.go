package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskhub/taskhub-backend/internal/domain"

	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when no task matches the given ID.
var ErrTaskNotFound = errors.New("task not found")

// TaskStats holds the dashboard counters for a single user.
type TaskStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Overdue   int64 `json:"overdue"`
}

// TaskRepository defines the persistence operations for tasks.
type TaskRepository interface {
	Create(task *domain.Task) error
	FindByID(id string) (*domain.Task, error)
	// List returns one page of the user's tasks, newest first, plus the
	// total row count across all pages for the same filters.
	List(userID string, filters domain.TaskFilters, page, perPage int) ([]domain.Task, int64, error)
	Recent(userID string, limit int) ([]domain.Task, error)
	Stats(userID string, now time.Time) (TaskStats, error)
	Update(task *domain.Task) error
	Delete(id string) error
}

type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a task repository backed by GORM.
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *gormTaskRepository) FindByID(id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// scoped builds the base query for a user's tasks with filters applied.
func (r *gormTaskRepository) scoped(userID string, filters domain.TaskFilters) *gorm.DB {
	q := r.db.Model(&domain.Task{}).Where("user_id = ?", userID)

	switch filters.Status {
	case domain.StatusPending:
		q = q.Where("completed = ?", false)
	case domain.StatusCompleted:
		q = q.Where("completed = ?", true)
	}

	if level, ok := filters.Priority.Level(); ok {
		q = q.Where("priority = ?", level)
	}

	return q
}

func (r *gormTaskRepository) List(userID string, filters domain.TaskFilters, page, perPage int) ([]domain.Task, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := r.scoped(userID, filters).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	var tasks []domain.Task
	err := r.scoped(userID, filters).
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

func (r *gormTaskRepository) Recent(userID string, limit int) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent tasks: %w", err)
	}
	return tasks, nil
}

func (r *gormTaskRepository) Stats(userID string, now time.Time) (TaskStats, error) {
	var stats TaskStats

	base := func() *gorm.DB {
		return r.db.Model(&domain.Task{}).Where("user_id = ?", userID)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return stats, fmt.Errorf("failed to count tasks: %w", err)
	}
	if err := base().Where("completed = ?", false).Count(&stats.Pending).Error; err != nil {
		return stats, fmt.Errorf("failed to count pending tasks: %w", err)
	}
	if err := base().Where("completed = ?", true).Count(&stats.Completed).Error; err != nil {
		return stats, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	err := base().
		Where("completed = ?", false).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Count(&stats.Overdue).Error
	if err != nil {
		return stats, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	return stats, nil
}

func (r *gormTaskRepository) Update(task *domain.Task) error {
	// Save writes every column. The task carries no DeletedAt field, so
	// there is no soft-delete scope to fight with.
	if err := r.db.Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (r *gormTaskRepository) Delete(id string) error {
	result := r.db.Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
