package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/taskhub/taskhub-backend/internal/database"
	"github.com/taskhub/taskhub-backend/internal/service"
)

// Server holds the handler dependencies. Handlers always receive the acting
// user from the request context; no service keeps ambient user state.
type Server struct {
	port      int
	tasks     service.TaskService
	dashboard service.DashboardService
	auth      service.AuthService
	db        database.Service
}

// New creates a Server with its dependencies. Exposed separately from
// NewServer so tests can mount RegisterRoutes on an httptest server.
func New(tasks service.TaskService, dashboard service.DashboardService, auth service.AuthService, db database.Service) *Server {
	return &Server{
		tasks:     tasks,
		dashboard: dashboard,
		auth:      auth,
		db:        db,
	}
}

// NewServer builds the http.Server listening on PORT (default 8080).
func NewServer(tasks service.TaskService, dashboard service.DashboardService, auth service.AuthService, db database.Service) *http.Server {
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		fmt.Printf("Warning: Invalid PORT environment variable '%s'. Using default 8080. Error: %v", portStr, err)
		port = 8080
	}

	appServer := New(tasks, dashboard, auth, db)
	appServer.port = port

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
