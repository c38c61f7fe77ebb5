package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RegisterRoutes builds the route table. It mirrors a resource-style layout:
// public landing and health probes, an auth group, and the verified-only
// dashboard and task resources.
func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.landingHandler)
	r.Get("/health-check", s.healthCheckHandler)
	r.Get("/health", s.dbHealthHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.registerHandler)
		r.Post("/login", s.loginHandler)
		r.Post("/refresh", s.refreshHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/me", s.meHandler)
			r.Post("/verify-email", s.verifyEmailHandler)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Use(s.requireVerified)

		r.Get("/dashboard", s.dashboardHandler)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.listTasksHandler)
			r.Post("/", s.createTaskHandler)
			r.Get("/create", s.newTaskFormHandler)
			r.Get("/{id}", s.showTaskHandler)
			r.Get("/{id}/edit", s.editTaskFormHandler)
			r.Put("/{id}", s.updateTaskHandler)
			r.Patch("/{id}", s.updateTaskHandler)
			r.Delete("/{id}", s.deleteTaskHandler)
		})
	})

	return r
}

func (s *Server) landingHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the TaskHub API.",
	})
}

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) dbHealthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}
