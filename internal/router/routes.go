package router

import (
	"log/slog"

	"github.com/AlenaMolokova/payhook/internal/auth"
	"github.com/AlenaMolokova/payhook/internal/constants"
	"github.com/AlenaMolokova/payhook/internal/handlers"
	"github.com/AlenaMolokova/payhook/internal/middleware"
	"github.com/AlenaMolokova/payhook/internal/usecase"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	RegisterPath = "/register"
	LoginPath    = "/login"
	HealthPath   = "/healthz"
	WebhookPath  = constants.WebhookPath

	UserPrefix   = "/user"
	AboutPath    = "/about"
	AccountsPath = "/accounts"
	PaymentsPath = "/payments"

	AdminPrefix    = "/admin"
	UsersPath      = "/users"
	CreateUserPath = "/users/create"
	DeleteUserPath = "/users/delete/{user_id}"
	UpdateUserPath = "/users/update/{user_id}"
)

// Store is everything the routes need from persistence.
type Store interface {
	usecase.UserStorage
	usecase.ProfileStorage
	usecase.AdminStorage
	usecase.PaymentStorage
	handlers.Pinger
}

func SetupRoutes(store Store, tokens *auth.TokenManager, webhookSecret string, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	authUC := usecase.NewAuthUseCase(store, tokens)
	userUC := usecase.NewUserUseCase(store)
	adminUC := usecase.NewAdminUseCase(store)
	paymentUC := usecase.NewPaymentUseCase(store, webhookSecret, log)
	guard := middleware.NewGuard(tokens, store, log)

	r.Get(HealthPath, handlers.NewHealthHandler(store, log).ServeHTTP)
	r.Post(RegisterPath, handlers.NewRegisterHandler(authUC, log).ServeHTTP)
	r.Post(LoginPath, handlers.NewLoginHandler(authUC, log).ServeHTTP)
	r.Post(WebhookPath, handlers.NewWebhookHandler(paymentUC, log).ServeHTTP)

	r.Route(UserPrefix, func(r chi.Router) {
		r.Use(guard.Auth)
		r.Get(AboutPath, handlers.NewAboutHandler(userUC, log).ServeHTTP)
		r.Get(AccountsPath, handlers.NewAccountsHandler(userUC, log).ServeHTTP)
		r.Get(PaymentsPath, handlers.NewPaymentsHandler(userUC, log).ServeHTTP)
	})

	r.Route(AdminPrefix, func(r chi.Router) {
		r.Use(guard.Auth, guard.AdminOnly)
		r.Get(UsersPath, handlers.NewListUsersHandler(adminUC, log).ServeHTTP)
		r.Post(CreateUserPath, handlers.NewCreateUserHandler(adminUC, log).ServeHTTP)
		r.Delete(DeleteUserPath, handlers.NewDeleteUserHandler(adminUC, log).ServeHTTP)
		r.Put(UpdateUserPath, handlers.NewUpdateUserHandler(adminUC, log).ServeHTTP)
	})

	return r
}
