package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlenaMolokova/payhook/internal/auth"
	"github.com/AlenaMolokova/payhook/internal/logger"
	"github.com/AlenaMolokova/payhook/internal/middleware"
	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/AlenaMolokova/payhook/internal/testutils"
	"github.com/AlenaMolokova/payhook/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Register(ctx context.Context, email, fullName, password string) (int64, error) {
	args := m.Called(ctx, email, fullName, password)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (int64, string, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

type mockProfile struct {
	mock.Mock
}

func (m *mockProfile) Profile(ctx context.Context, userID int64) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockProfile) Accounts(ctx context.Context, userID int64) ([]models.Account, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *mockProfile) Payments(ctx context.Context, userID int64) ([]models.Payment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Payment), args.Error(1)
}

type mockAdmin struct {
	mock.Mock
}

func (m *mockAdmin) CreateUser(ctx context.Context, in usecase.NewUser) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAdmin) UpdateUser(ctx context.Context, id int64, in usecase.UserChanges) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *mockAdmin) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAdmin) ListUsers(ctx context.Context) ([]models.UserWithAccounts, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.UserWithAccounts), args.Error(1)
}

type mockWebhook struct {
	mock.Mock
}

func (m *mockWebhook) ProcessWebhook(ctx context.Context, ev models.PaymentEvent) (usecase.PaymentResult, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(usecase.PaymentResult), args.Error(1)
}

// serveAs runs h behind the bearer guard with a token for userID.
func serveAs(t *testing.T, h http.Handler, userID int64, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	tokens := auth.NewTokenManager("handler-secret", time.Hour)
	token, err := tokens.Issue(userID, false)
	require.NoError(t, err)

	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	guard := middleware.NewGuard(tokens, testutils.NewMemoryStore(), logger.Discard())
	guard.Auth(h).ServeHTTP(w, req)
	return w
}

func withUserIDParam(req *http.Request, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("user_id", value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
