package testutils

import (
	"context"

	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of every storage method the use cases call.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockStorage) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) ListUsersWithAccounts(ctx context.Context) ([]models.UserWithAccounts, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.UserWithAccounts), args.Error(1)
}

func (m *MockStorage) GetAccountsByOwner(ctx context.Context, ownerID int64) ([]models.Account, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockStorage) GetPaymentsByOwner(ctx context.Context, ownerID int64) ([]models.Payment, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockStorage) GetPaymentByTransactionID(ctx context.Context, transactionID string) (models.Payment, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(models.Payment), args.Error(1)
}

func (m *MockStorage) GetAccount(ctx context.Context, accountID, ownerID int64) (models.Account, error) {
	args := m.Called(ctx, accountID, ownerID)
	return args.Get(0).(models.Account), args.Error(1)
}

func (m *MockStorage) EnsureAccount(ctx context.Context, accountID, ownerID int64) (models.Account, error) {
	args := m.Called(ctx, accountID, ownerID)
	return args.Get(0).(models.Account), args.Error(1)
}

func (m *MockStorage) ApplyPayment(ctx context.Context, p models.Payment) (models.Payment, models.Account, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.Payment), args.Get(1).(models.Account), args.Error(2)
}
