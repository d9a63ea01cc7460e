package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlenaMolokova/payhook/internal/middleware"
	"github.com/AlenaMolokova/payhook/internal/usecase"
	"github.com/AlenaMolokova/payhook/internal/utils"
)

type AboutHandler struct {
	users ProfileService
	log   *slog.Logger
}

func NewAboutHandler(users ProfileService, log *slog.Logger) *AboutHandler {
	return &AboutHandler{users: users, log: log}
}

func (h *AboutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("failed to get profile", slog.Int64("user_id", userID), slog.Any("error", err))
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, profileResponse{ID: user.ID, Email: user.Email, FullName: user.FullName})
}

type AccountsHandler struct {
	users ProfileService
	log   *slog.Logger
}

func NewAccountsHandler(users ProfileService, log *slog.Logger) *AccountsHandler {
	return &AccountsHandler{users: users, log: log}
}

func (h *AccountsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accounts, err := h.users.Accounts(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to get accounts", slog.Int64("user_id", userID), slog.Any("error", err))
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, toAccounts(accounts))
}

type PaymentsHandler struct {
	users ProfileService
	log   *slog.Logger
}

func NewPaymentsHandler(users ProfileService, log *slog.Logger) *PaymentsHandler {
	return &PaymentsHandler{users: users, log: log}
}

func (h *PaymentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	payments, err := h.users.Payments(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to get payments", slog.Int64("user_id", userID), slog.Any("error", err))
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, toPayments(payments))
}
