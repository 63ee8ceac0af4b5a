// Package server exposes the task, auth, and chat HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"taskdeck/internal/auth"
	"taskdeck/internal/chat"
	"taskdeck/internal/conversations"
	"taskdeck/internal/tasks"
	"taskdeck/internal/users"
)

// Server is the taskdeck HTTP server.
type Server struct {
	httpServer    *http.Server
	users         *users.Service
	minter        *auth.Minter
	tasks         tasks.Store
	conversations *conversations.Store
	interpreter   *chat.Interpreter
	formatter     *chat.Formatter
	host          string
	port          int
}

// Deps carries everything the server needs.
type Deps struct {
	Users         *users.Service
	Minter        *auth.Minter
	Tasks         tasks.Store
	Conversations *conversations.Store
	Interpreter   *chat.Interpreter
	Formatter     *chat.Formatter
}

// NewServer creates a new HTTP server with all routes mounted.
func NewServer(deps Deps, host string, port int) *Server {
	s := &Server{
		users:         deps.Users,
		minter:        deps.Minter,
		tasks:         deps.Tasks,
		conversations: deps.Conversations,
		interpreter:   deps.Interpreter,
		formatter:     deps.Formatter,
		host:          host,
		port:          port,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/api/health", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
	})

	r.Route("/api/v1/tasks", func(r chi.Router) {
		r.Use(auth.Middleware(deps.Minter, deps.Users))
		r.Get("/", s.handleListTasks)
		r.Post("/", s.handleCreateTask)
		r.Get("/{task_id}", s.handleGetTask)
		r.Put("/{task_id}", s.handleUpdateTask)
		r.Delete("/{task_id}", s.handleDeleteTask)
		r.Patch("/{task_id}/toggle-completion", s.handleToggleTask)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(deps.Minter, deps.Users))
		r.Post("/api/{user_id}/chat", s.handleChat)
		r.Get("/api/{user_id}/conversations/{conversation_id}/messages", s.handleMessages)
	})

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: r,
	}

	return s
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	slog.Info("taskdeck listening", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "taskdeck",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
