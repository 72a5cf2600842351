package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ledger/internal/models"
	"ledger/internal/store"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// respondServiceError maps registry, session and ledger errors onto status
// codes. Anything unrecognised is logged and reported as a 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, models.ErrInsufficientBalance):
		respondError(w, http.StatusBadRequest, "Insufficient balance")
	case errors.Is(err, models.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads a JSON object body into dest. An empty body leaves dest
// at its zero value so field validation reports what is missing.
func decodeJSON(r *http.Request, dest any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dest)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
