package handlers

import (
	"net/http"
	"net/url"

	"ledger/internal/validator"

	"github.com/go-chi/chi/v5"
)

type registerRequest struct {
	Name  string `json:"name" validate:"notblank"`
	Phone string `json:"phone" validate:"notblank"`
}

type statusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   h.users.List(),
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindByID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

func (h *Handler) GetUserByPhone(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")
	// chi routes on RawPath when the request carried escapes that Path
	// cannot represent (such as %2F); only then is the param still encoded.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(phone)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid phone")
			return
		}
		phone = unescaped
	}
	user, err := h.users.FindByPhone(phone)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validator.Struct(req); errs != nil {
		respondError(w, http.StatusBadRequest, "Name and phone are required")
		return
	}

	user, isNew, err := h.users.RegisterOrLogin(req.Name, req.Phone)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.saver.Save(r.Context())

	message := "User logged in"
	if isNew {
		message = "User registered successfully"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
		"user":    user,
		"isNew":   isNew,
	})
}

func (h *Handler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validator.Struct(req); errs != nil {
		respondError(w, http.StatusBadRequest, "isActive must be a boolean")
		return
	}

	user, err := h.users.SetActive(chi.URLParam(r, "id"), *req.IsActive)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.saver.Save(r.Context())

	message := "User deactivated"
	if user.IsActive {
		message = "User activated"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
		"user":    user,
	})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Delete(chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.saver.Save(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "User deleted successfully",
		"user":    user,
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   h.users.Stats(),
	})
}
