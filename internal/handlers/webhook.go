package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlenaMolokova/payhook/internal/constants"
	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/AlenaMolokova/payhook/internal/usecase"
	"github.com/AlenaMolokova/payhook/internal/utils"
)

type WebhookHandler struct {
	payments WebhookProcessor
	log      *slog.Logger
}

func NewWebhookHandler(payments WebhookProcessor, log *slog.Logger) *WebhookHandler {
	return &WebhookHandler{payments: payments, log: log}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var ev models.PaymentEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		h.log.Info("failed to decode payment event", slog.Any("error", err))
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if _, err := h.payments.ProcessWebhook(r.Context(), ev); err != nil {
		status, message := webhookError(err)
		if status == http.StatusInternalServerError {
			h.log.Error("payment event failed", slog.String("transaction_id", ev.TransactionID), slog.Any("error", err))
		}
		utils.WriteJSONError(w, status, message)
		return
	}

	utils.WriteJSONMessage(w, http.StatusOK, "Payment processed successfully")
}

func webhookError(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidSignature):
		return http.StatusBadRequest, "Invalid signature"
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request format"
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, usecase.ErrDuplicateTransaction):
		return http.StatusBadRequest, constants.DuplicateTransactionMessage
	case errors.Is(err, usecase.ErrAccountOwnership):
		return http.StatusBadRequest, "Account belongs to another user"
	case errors.Is(err, usecase.ErrApplyFailed):
		return http.StatusInternalServerError, "Failed to process payment"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
