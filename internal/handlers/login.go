package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlenaMolokova/payhook/internal/usecase"
	"github.com/AlenaMolokova/payhook/internal/utils"
)

type LoginHandler struct {
	auth LoginService
	log  *slog.Logger
}

func NewLoginHandler(auth LoginService, log *slog.Logger) *LoginHandler {
	return &LoginHandler{auth: auth, log: log}
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("failed to decode login request", slog.Any("error", err))
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			h.log.Info("login rejected")
			utils.WriteJSONError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		h.log.Error("failed to log in", slog.Any("error", err))
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.log.Info("user logged in", slog.Int64("user_id", userID))
	utils.WriteJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		UserID:  userID,
		Token:   token,
	})
}
