package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlenaMolokova/payhook/internal/usecase"
	"github.com/AlenaMolokova/payhook/internal/utils"
	"github.com/AlenaMolokova/payhook/internal/validation"
)

const passwordTooLongMessage = "Password must be at most 72 bytes"

type RegisterHandler struct {
	auth Registrar
	log  *slog.Logger
}

func NewRegisterHandler(auth Registrar, log *slog.Logger) *RegisterHandler {
	return &RegisterHandler{auth: auth, log: log}
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("failed to decode register request", slog.Any("error", err))
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID, err := h.auth.Register(r.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTaken):
			h.log.Info("registration rejected: email taken")
			utils.WriteJSONError(w, http.StatusBadRequest, "User with this email already exists")
		case errors.Is(err, validation.ErrPasswordTooLong):
			h.log.Info("registration rejected", slog.Any("error", err))
			utils.WriteJSONError(w, http.StatusBadRequest, passwordTooLongMessage)
		case errors.Is(err, usecase.ErrInvalidInput):
			h.log.Info("registration rejected", slog.Any("error", err))
			utils.WriteJSONError(w, http.StatusBadRequest, "Email, full_name and password are required")
		default:
			h.log.Error("failed to register user", slog.Any("error", err))
			utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.log.Info("user registered", slog.Int64("user_id", userID))
	utils.WriteJSONMessage(w, http.StatusCreated, "User registered successfully")
}
