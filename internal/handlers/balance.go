package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ledger/internal/models"
	"ledger/internal/money"
	"ledger/internal/services"
	"ledger/internal/validator"

	"github.com/go-chi/chi/v5"
)

type balanceRequest struct {
	Amount      json.RawMessage `json:"amount"`
	Description string          `json:"description" validate:"notblank"`
	Type        string          `json:"type" validate:"required,oneof=add deduct"`
	AdminName   string          `json:"adminName"`
}

func (h *Handler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	amount, amountErr := money.ParseAmount(req.Amount)
	errs := validator.Struct(req)
	if errors.Is(amountErr, money.ErrMissingAmount) ||
		validator.Failed(errs, "Description") ||
		validator.Failed(errs, "Type", "required") {
		respondError(w, http.StatusBadRequest, "Amount, description, and type are required")
		return
	}
	if validator.Failed(errs, "Type", "oneof") {
		respondError(w, http.StatusBadRequest, "Type must be add or deduct")
		return
	}
	if amountErr != nil {
		respondError(w, http.StatusBadRequest, "Amount must be a positive whole number")
		return
	}
	direction := models.Direction(req.Type)

	user, err := h.ledger.AdjustBalance(r.Context(), services.AdjustRequest{
		UserID:      chi.URLParam(r, "id"),
		Amount:      amount,
		Description: req.Description,
		Direction:   direction,
		AdminName:   req.AdminName,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	message := "Balance added successfully"
	if direction == models.DirectionDeduct {
		message = "Balance deducted successfully"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
		"user":    user.BalanceView(),
	})
}
