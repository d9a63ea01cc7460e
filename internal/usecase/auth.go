package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlenaMolokova/payhook/internal/credentials"
	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/AlenaMolokova/payhook/internal/storage"
	"github.com/AlenaMolokova/payhook/internal/validation"
)

type UserStorage interface {
	CreateUser(ctx context.Context, user models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

type TokenIssuer interface {
	Issue(userID int64, isAdmin bool) (string, error)
}

type AuthUseCase struct {
	storage   UserStorage
	tokens    TokenIssuer
	validator validation.UserValidator
}

func NewAuthUseCase(storage UserStorage, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		storage:   storage,
		tokens:    tokens,
		validator: validation.NewDefaultUserValidator(),
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, email, fullName, password string) (int64, error) {
	if err := uc.validator.ValidateNewUser(email, fullName, password); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	hashed, err := credentials.HashPassword(password)
	if err != nil {
		return 0, err
	}

	id, err := uc.storage.CreateUser(ctx, models.User{
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashed,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// Login checks the password and issues a session token. An unknown email and
// a wrong password are indistinguishable to the caller.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (int64, string, error) {
	if email == "" || password == "" {
		return 0, "", ErrInvalidCredentials
	}

	user, err := uc.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, "", ErrInvalidCredentials
		}
		return 0, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !credentials.VerifyPassword(password, user.HashedPassword) {
		return 0, "", ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return 0, "", err
	}
	return user.ID, token, nil
}
