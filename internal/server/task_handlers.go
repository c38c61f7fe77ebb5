package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskhub/taskhub-backend/internal/domain"
	"github.com/taskhub/taskhub-backend/internal/repository"
	"github.com/taskhub/taskhub-backend/internal/service"
)

var priorityOptions = []string{"low", "medium", "high"}

// currentUser unwraps the user stored by requireAuth. The middleware always
// runs first on these routes, so a miss is a programming error worth a 401.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required.")
	}
	return user, ok
}

// renderTaskError maps service errors onto the HTTP surface: field errors to
// 422, ownership denials to 403, missing tasks to 404.
func renderTaskError(w http.ResponseWriter, err error, action string) {
	var verrs service.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respondWithJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"message": "The given data was invalid.",
			"errors":  verrs,
		})
	case errors.Is(err, service.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "This action is unauthorized.")
	case errors.Is(err, repository.ErrTaskNotFound):
		respondWithError(w, http.StatusNotFound, "Task not found.")
	default:
		log.Printf("Error during %s: %v", action, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	stats, err := s.dashboard.Summarize(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error summarizing dashboard: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	recent, err := s.dashboard.Recent(r.Context(), user.ID, service.RecentTasksLimit)
	if err != nil {
		log.Printf("Error loading recent tasks: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"stats":       stats,
		"recentTasks": recent,
	})
}

func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filters := domain.TaskFilters{
		Status:   domain.ParseStatusFilter(q.Get("status")),
		Priority: domain.ParsePriorityFilter(q.Get("priority")),
	}
	page, _ := strconv.Atoi(q.Get("page"))

	result, err := s.tasks.List(r.Context(), user.ID, filters, page)
	if err != nil {
		renderTaskError(w, err, "list tasks")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tasks":   result,
		"filters": result.Filters,
	})
}

func (s *Server) newTaskFormHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"priorities": priorityOptions,
	})
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req service.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := s.tasks.Create(r.Context(), user.ID, req)
	if err != nil {
		renderTaskError(w, err, "create task")
		return
	}

	w.Header().Set("Location", "/tasks/"+task.ID)
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully.",
		"task":    task,
	})
}

func (s *Server) showTaskHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	task, err := s.tasks.Show(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		renderTaskError(w, err, "retrieve task")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"task": task})
}

func (s *Server) editTaskFormHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	task, err := s.tasks.Show(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		renderTaskError(w, err, "retrieve task")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"task":       task,
		"priorities": priorityOptions,
	})
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req service.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := s.tasks.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		renderTaskError(w, err, "update task")
		return
	}

	w.Header().Set("Location", "/tasks/"+task.ID)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully.",
		"task":    task,
	})
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	if err := s.tasks.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		renderTaskError(w, err, "delete task")
		return
	}

	w.Header().Set("Location", "/tasks")
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Task deleted successfully.",
	})
}
