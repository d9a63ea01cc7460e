package handlers

import (
	"context"

	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/AlenaMolokova/payhook/internal/usecase"
)

type Registrar interface {
	Register(ctx context.Context, email, fullName, password string) (int64, error)
}

type LoginService interface {
	Login(ctx context.Context, email, password string) (int64, string, error)
}

type ProfileService interface {
	Profile(ctx context.Context, userID int64) (models.User, error)
	Accounts(ctx context.Context, userID int64) ([]models.Account, error)
	Payments(ctx context.Context, userID int64) ([]models.Payment, error)
}

type AdminService interface {
	CreateUser(ctx context.Context, in usecase.NewUser) (int64, error)
	UpdateUser(ctx context.Context, id int64, in usecase.UserChanges) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]models.UserWithAccounts, error)
}

type WebhookProcessor interface {
	ProcessWebhook(ctx context.Context, ev models.PaymentEvent) (usecase.PaymentResult, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
