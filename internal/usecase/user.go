package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/AlenaMolokova/payhook/internal/storage"
)

type ProfileStorage interface {
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	GetAccountsByOwner(ctx context.Context, ownerID int64) ([]models.Account, error)
	GetPaymentsByOwner(ctx context.Context, ownerID int64) ([]models.Payment, error)
}

type UserUseCase struct {
	storage ProfileStorage
}

func NewUserUseCase(storage ProfileStorage) *UserUseCase {
	return &UserUseCase{storage: storage}
}

func (uc *UserUseCase) Profile(ctx context.Context, userID int64) (models.User, error) {
	user, err := uc.storage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (uc *UserUseCase) Accounts(ctx context.Context, userID int64) ([]models.Account, error) {
	accounts, err := uc.storage.GetAccountsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, nil
}

func (uc *UserUseCase) Payments(ctx context.Context, userID int64) ([]models.Payment, error) {
	payments, err := uc.storage.GetPaymentsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	return payments, nil
}
