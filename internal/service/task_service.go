package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskhub/taskhub-backend/internal/domain"
	"github.com/taskhub/taskhub-backend/internal/repository"
)

// TasksPerPage is the fixed page size for task listings.
const TasksPerPage = 10

// CreateTaskRequest holds the data needed to create a new task. Ownership is
// never part of the payload; it is stamped from the authenticated user.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
}

// UpdateTaskRequest holds the fields of a partial update. Pointers
// distinguish an omitted field from one set to its zero value; omitted
// fields retain their prior value.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

// TaskResponse is the standard representation of a task returned by the
// service. Overdue is derived at response time, never stored.
type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	Overdue     bool    `json:"overdue"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ListFilters echoes the normalized filters back to the caller so page links
// can preserve them.
type ListFilters struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// TaskPage is one page of a filtered task listing.
type TaskPage struct {
	Data        []TaskResponse `json:"data"`
	CurrentPage int            `json:"current_page"`
	PerPage     int            `json:"per_page"`
	Total       int64          `json:"total"`
	LastPage    int            `json:"last_page"`
	Filters     ListFilters    `json:"filters"`
}

// TaskService bundles the command and query operations on a user's tasks.
// Every method takes the acting user explicitly; there is no ambient
// current-user state.
type TaskService interface {
	// Create validates the payload, stamps ownership and inserts the task.
	Create(ctx context.Context, userID string, req CreateTaskRequest) (*TaskResponse, error)

	// Show returns the task, or ErrForbidden when userID is not the owner.
	Show(ctx context.Context, userID, taskID string) (*TaskResponse, error)

	// List returns one page of the user's tasks, newest first. A page past
	// the end of the result set comes back empty, not as an error.
	List(ctx context.Context, userID string, filters domain.TaskFilters, page int) (*TaskPage, error)

	// Update validates and applies a partial update, re-checking ownership.
	Update(ctx context.Context, userID, taskID string, req UpdateTaskRequest) (*TaskResponse, error)

	// Delete permanently removes the task after the ownership check.
	Delete(ctx context.Context, userID, taskID string) error
}

type taskService struct {
	repo repository.TaskRepository
	now  func() time.Time
}

// NewTaskService creates a TaskService on top of the given repository.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo, now: time.Now}
}

// authorize loads a task and enforces ownership. Every read or mutation of
// an existing task goes through here; the check is never repeated inline.
func (s *taskService) authorize(userID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrForbidden
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, userID string, req CreateTaskRequest) (*TaskResponse, error) {
	validated, errs := validateCreate(req, s.now())
	if errs.Any() {
		return nil, errs
	}

	task := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       validated.title,
		Description: validated.description,
		Completed:   false,
		DueDate:     validated.dueDate,
		Priority:    validated.priority,
	}

	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.toResponse(task), nil
}

func (s *taskService) Show(ctx context.Context, userID, taskID string) (*TaskResponse, error) {
	task, err := s.authorize(userID, taskID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(task), nil
}

func (s *taskService) List(ctx context.Context, userID string, filters domain.TaskFilters, page int) (*TaskPage, error) {
	if page < 1 {
		page = 1
	}

	tasks, total, err := s.repo.List(userID, filters, page, TasksPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	lastPage := int((total + TasksPerPage - 1) / TasksPerPage)
	if lastPage < 1 {
		lastPage = 1
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *s.toResponse(&tasks[i]))
	}

	return &TaskPage{
		Data:        responses,
		CurrentPage: page,
		PerPage:     TasksPerPage,
		Total:       total,
		LastPage:    lastPage,
		Filters: ListFilters{
			Status:   filters.Status.String(),
			Priority: filters.Priority.String(),
		},
	}, nil
}

func (s *taskService) Update(ctx context.Context, userID, taskID string, req UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.authorize(userID, taskID)
	if err != nil {
		return nil, err
	}

	if errs := validateUpdate(req); errs.Any() {
		return nil, errs
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		if *req.Description == "" {
			task.Description = nil
		} else {
			task.Description = req.Description
		}
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			// Already validated; a past date is allowed on update.
			parsed, _ := time.Parse(DueDateLayout, *req.DueDate)
			task.DueDate = &parsed
		}
	}
	if req.Priority != nil {
		task.Priority = domain.Priority(*req.Priority)
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := s.repo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.toResponse(task), nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID string) error {
	task, err := s.authorize(userID, taskID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *taskService) toResponse(task *domain.Task) *TaskResponse {
	resp := taskResponse(task, s.now())
	return &resp
}

// taskResponse converts a domain task into its wire representation,
// deriving the overdue flag against now.
func taskResponse(task *domain.Task, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		Overdue:     task.Overdue(now),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
	if task.DueDate != nil {
		due := task.DueDate.Format(DueDateLayout)
		resp.DueDate = &due
	}
	return resp
}
