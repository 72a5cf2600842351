package handlers

import (
	"net/http"

	"ledger/internal/validator"

	"github.com/go-chi/chi/v5"
)

type sessionRequest struct {
	UserID string `json:"userId" validate:"notblank"`
}

// CreateSession does not check that the user exists; GetSession resolves
// the user on every read.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validator.Struct(req); errs != nil {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	id, session := h.sessions.Create(req.UserID)
	respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"sessionId": id,
		"userId":    session.UserID,
	})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, user, err := h.sessions.Resolve(chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"session": session,
		"user":    user,
	})
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(chi.URLParam(r, "id"))
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out"})
}
