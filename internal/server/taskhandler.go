package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"taskdeck/internal/auth"
	"taskdeck/internal/tasks"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"is_completed"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	filter := tasks.StatusFilter(r.URL.Query().Get("status"))
	if filter == "" {
		filter = tasks.StatusAll
	}

	list, err := s.tasks.List(r.Context(), user.ID, filter)
	if err != nil {
		slog.Error("list tasks failed", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while listing tasks")
		return
	}
	if list == nil {
		list = []*tasks.Task{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task := &tasks.Task{
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.tasks.Create(r.Context(), task); err != nil {
		if isValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("create task failed", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while adding task")
		return
	}

	slog.Info("task created", "user", user.ID, "task", task.ID)
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	task, err := s.tasks.Get(r.Context(), user.ID, taskID)
	if err != nil {
		s.taskError(w, user.ID, taskID, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := tasks.Patch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	task, err := s.tasks.Update(r.Context(), user.ID, taskID, patch)
	if err != nil {
		s.taskError(w, user.ID, taskID, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	if err := s.tasks.Delete(r.Context(), user.ID, taskID); err != nil {
		s.taskError(w, user.ID, taskID, err)
		return
	}
	slog.Info("task deleted", "user", user.ID, "task", taskID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	current, err := s.tasks.Get(r.Context(), user.ID, taskID)
	if err != nil {
		s.taskError(w, user.ID, taskID, err)
		return
	}

	toggled := !current.Completed
	task, err := s.tasks.Update(r.Context(), user.ID, taskID, tasks.Patch{Completed: &toggled})
	if err != nil {
		s.taskError(w, user.ID, taskID, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) taskError(w http.ResponseWriter, userID string, taskID int64, err error) {
	if errors.Is(err, tasks.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if isValidation(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error("task operation failed", "user", userID, "task", taskID, "error", err)
	writeError(w, http.StatusInternalServerError, "An error occurred")
}

func taskIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "task_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "task id must be a number")
		return 0, false
	}
	return id, true
}

func isValidation(err error) bool {
	return errors.Is(err, tasks.ErrEmptyTitle) ||
		errors.Is(err, tasks.ErrTitleTooLong) ||
		errors.Is(err, tasks.ErrDescriptionTooLong)
}
