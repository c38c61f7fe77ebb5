package service

import (
	"context"
	"fmt"
	"time"

	"github.com/taskhub/taskhub-backend/internal/repository"
)

// RecentTasksLimit is how many tasks the dashboard shows.
const RecentTasksLimit = 5

// DashboardStats are the per-user summary counters.
type DashboardStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Overdue   int64 `json:"overdue"`
}

// DashboardService computes the dashboard payload. Everything is recomputed
// fresh on every call; the per-user scan is small so nothing is cached.
type DashboardService interface {
	Summarize(ctx context.Context, userID string) (*DashboardStats, error)
	Recent(ctx context.Context, userID string, limit int) ([]TaskResponse, error)
}

type dashboardService struct {
	repo repository.TaskRepository
	now  func() time.Time
}

// NewDashboardService creates a DashboardService on top of the task repository.
func NewDashboardService(repo repository.TaskRepository) DashboardService {
	return &dashboardService{repo: repo, now: time.Now}
}

func (s *dashboardService) Summarize(ctx context.Context, userID string) (*DashboardStats, error) {
	stats, err := s.repo.Stats(userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to summarize tasks: %w", err)
	}
	return &DashboardStats{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Completed: stats.Completed,
		Overdue:   stats.Overdue,
	}, nil
}

func (s *dashboardService) Recent(ctx context.Context, userID string, limit int) ([]TaskResponse, error) {
	if limit <= 0 {
		limit = RecentTasksLimit
	}

	tasks, err := s.repo.Recent(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent tasks: %w", err)
	}

	now := s.now()
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, taskResponse(&tasks[i], now))
	}

	return responses, nil
}
