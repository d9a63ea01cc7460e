package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlenaMolokova/payhook/internal/auth"
	"github.com/AlenaMolokova/payhook/internal/config"
	"github.com/AlenaMolokova/payhook/internal/logger"
	"github.com/AlenaMolokova/payhook/internal/migrations"
	"github.com/AlenaMolokova/payhook/internal/router"
	"github.com/AlenaMolokova/payhook/internal/storage"
	"github.com/AlenaMolokova/payhook/internal/usecase"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	if err := run(); err != nil {
		slog.Error("payhook stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Env, os.Stdout)
	slog.SetDefault(log)
	log.Info("starting payhook", slog.String("env", cfg.Env), slog.String("addr", cfg.RunAddr))

	if cfg.UsesDefaultJWTSecret() {
		log.Warn("JWT_SECRET not set, using the built-in default")
	}

	applied, err := migrations.Apply(cfg.DatabaseURI)
	if err != nil {
		return err
	}
	if applied {
		log.Info("database migrations applied")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURI)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := storage.NewStorage(pool)
	if err != nil {
		return err
	}

	if cfg.BootstrapAdmin() {
		created, err := usecase.NewAdminUseCase(store).EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return err
		}
		log.Info("admin account ensured", slog.String("email", cfg.AdminEmail), slog.Bool("created", created))
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	srv := &http.Server{
		Addr:    cfg.RunAddr,
		Handler: router.SetupRoutes(store, tokens, cfg.WebhookSecret, log),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
