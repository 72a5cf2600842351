package handlers

import (
	"net/http"
	"strings"

	"ledger/internal/websocket"
)

// WSBalances streams balance updates for ?userId=<id>, or for every user
// when userId is "*".
func (h *Handler) WSBalances(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if userID != websocket.AllUsers {
		if _, err := h.users.FindByID(userID); err != nil {
			h.respondServiceError(w, err)
			return
		}
	}
	websocket.ServeWS(w, r, h.hub, userID)
}
