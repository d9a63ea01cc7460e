package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlenaMolokova/payhook/internal/credentials"
	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/AlenaMolokova/payhook/internal/storage"
	"github.com/AlenaMolokova/payhook/internal/validation"
)

type AdminStorage interface {
	CreateUser(ctx context.Context, user models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsersWithAccounts(ctx context.Context) ([]models.UserWithAccounts, error)
}

type NewUser struct {
	Email    string
	FullName string
	Password string
	IsAdmin  bool
}

// UserChanges is a partial update; zero values mean "keep".
type UserChanges struct {
	Email    string
	FullName string
	Password string
	IsAdmin  *bool
}

type AdminUseCase struct {
	storage   AdminStorage
	validator validation.UserValidator
}

func NewAdminUseCase(storage AdminStorage) *AdminUseCase {
	return &AdminUseCase{
		storage:   storage,
		validator: validation.NewDefaultUserValidator(),
	}
}

func (uc *AdminUseCase) CreateUser(ctx context.Context, in NewUser) (int64, error) {
	if err := uc.validator.ValidateNewUser(in.Email, in.FullName, in.Password); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	hashed, err := credentials.HashPassword(in.Password)
	if err != nil {
		return 0, err
	}

	id, err := uc.storage.CreateUser(ctx, models.User{
		Email:          in.Email,
		FullName:       in.FullName,
		HashedPassword: hashed,
		IsAdmin:        in.IsAdmin,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (uc *AdminUseCase) UpdateUser(ctx context.Context, id int64, in UserChanges) error {
	if in.Email != "" {
		if err := uc.validator.ValidateEmail(in.Email); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	fullName := strings.TrimSpace(in.FullName)
	if in.FullName != "" && fullName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.ErrFullNameRequired)
	}
	if in.Password != "" {
		if err := uc.validator.ValidatePassword(in.Password); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	upd := models.UserUpdate{
		Email:    in.Email,
		FullName: fullName,
		IsAdmin:  in.IsAdmin,
	}
	if in.Password != "" {
		hashed, err := credentials.HashPassword(in.Password)
		if err != nil {
			return err
		}
		upd.HashedPassword = hashed
	}

	if err := uc.storage.UpdateUser(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return ErrUserNotFound
		case errors.Is(err, storage.ErrDuplicate):
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// DeleteUser removes the user together with its accounts and payments.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, id int64) error {
	if err := uc.storage.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (uc *AdminUseCase) ListUsers(ctx context.Context) ([]models.UserWithAccounts, error) {
	users, err := uc.storage.ListUsersWithAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// EnsureAdmin makes sure a user with email exists and has the admin flag.
// An existing user keeps its password.
func (uc *AdminUseCase) EnsureAdmin(ctx context.Context, email, password string) (created bool, err error) {
	user, err := uc.storage.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		_, err = uc.CreateUser(ctx, NewUser{
			Email:    email,
			FullName: "Administrator",
			Password: password,
			IsAdmin:  true,
		})
		return err == nil, err
	}
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	if user.IsAdmin {
		return false, nil
	}

	isAdmin := true
	return false, uc.UpdateUser(ctx, user.ID, UserChanges{IsAdmin: &isAdmin})
}
