package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"taskdeck/internal/users"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password, req.Name)
	switch {
	case errors.Is(err, users.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	case errors.Is(err, users.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, "Password must not exceed 72 bytes")
		return
	case errors.Is(err, users.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	case err != nil:
		slog.Error("registration failed", "error", err)
		writeError(w, http.StatusBadRequest, "Registration failed")
		return
	}

	slog.Info("user registered", "user", user.ID)
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred during login")
		return
	}
	if user == nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, err := s.minter.Mint(user)
	if err != nil {
		slog.Error("token minting failed", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred during login")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// handleLogout exists for clients; a stateless token is simply discarded.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}
