package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type messageResponse struct {
	Message string `json:"message"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
	return err
}

func WriteJSONMessage(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, messageResponse{Message: message})
}

// WriteJSONError writes {"message": ...}; errors and successes share one body shape.
func WriteJSONError(w http.ResponseWriter, status int, message string) error {
	return WriteJSONMessage(w, status, message)
}
