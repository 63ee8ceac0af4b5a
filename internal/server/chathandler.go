package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskdeck/internal/auth"
	"taskdeck/internal/conversations"
)

type chatRequest struct {
	ConversationID *int64 `json:"conversation_id"`
	Message        string `json:"message"`
}

// handleChat runs one conversational turn: record the user message, let the
// model interpret it, execute at most one task operation, record the reply.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	pathUserID := chi.URLParam(r, "user_id")
	if pathUserID != user.ID {
		slog.Warn("user id mismatch", "path", pathUserID, "token", user.ID)
		writeError(w, http.StatusForbidden, "User ID in path does not match authenticated user")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	conv, err := s.conversations.GetOrCreate(r.Context(), user.ID, req.ConversationID)
	if err != nil {
		slog.Error("conversation lookup failed", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while processing your message")
		return
	}

	if _, err := s.conversations.AppendMessage(r.Context(), conv.ID, user.ID, conversations.RoleUser, req.Message); err != nil {
		slog.Error("saving user message failed", "user", user.ID, "conversation", conv.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while processing your message")
		return
	}

	result := s.interpreter.Interpret(r.Context(), user.ID, req.Message)

	if _, err := s.conversations.AppendMessage(r.Context(), conv.ID, user.ID, conversations.RoleAssistant, result.Reply); err != nil {
		slog.Error("saving assistant message failed", "user", user.ID, "conversation", conv.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while processing your message")
		return
	}

	resp := s.formatter.Format(r.Context(), conv.ID, result)

	slog.Info("chat processed", "user", user.ID, "conversation", conv.ID, "kind", result.Kind)
	writeJSON(w, http.StatusOK, resp)
}

// handleMessages returns the latest messages of one of the caller's
// conversations. A conversation the caller does not own reads as empty.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	pathUserID := chi.URLParam(r, "user_id")
	if pathUserID != user.ID {
		writeError(w, http.StatusForbidden, "User ID in path does not match authenticated user")
		return
	}

	convID, err := strconv.ParseInt(chi.URLParam(r, "conversation_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "conversation id must be a number")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	history, err := s.conversations.History(r.Context(), convID, user.ID, limit)
	if err != nil {
		slog.Error("history lookup failed", "user", user.ID, "conversation", convID, "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while listing messages")
		return
	}
	if history == nil {
		history = []*conversations.Message{}
	}
	writeJSON(w, http.StatusOK, history)
}
