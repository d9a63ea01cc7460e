package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlenaMolokova/payhook/internal/handlers"
	"github.com/AlenaMolokova/payhook/internal/logger"
	"github.com/AlenaMolokova/payhook/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedBody   string
	}{
		{name: "database up", expectedStatus: http.StatusOK, expectedBody: `{"status":"ok"}`},
		{name: "database down", pingErr: errors.New("refused"), expectedStatus: http.StatusServiceUnavailable, expectedBody: `{"status":"unavailable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := &testutils.MockStorage{}
			ms.On("Ping", mock.Anything).Return(tt.pingErr)
			handler := handlers.NewHealthHandler(ms, logger.Discard())

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			ms.AssertExpectations(t)
		})
	}
}
