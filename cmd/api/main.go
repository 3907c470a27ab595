package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahorraya/savings-backend/internal/config"
	"github.com/ahorraya/savings-backend/internal/handler"
	"github.com/ahorraya/savings-backend/internal/logging"
	"github.com/ahorraya/savings-backend/internal/middleware"
	"github.com/ahorraya/savings-backend/internal/repository"
	"github.com/ahorraya/savings-backend/internal/service"
)

//go:embed openapi.yaml
var openAPISpec []byte

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("savings-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	users := repository.NewUserRepository(db)
	accounts := repository.NewAccountRepository(db)
	movements := repository.NewMovementRepository(db)
	expenses := repository.NewExpenseRepository(db)
	configs := repository.NewSavingsConfigRepository(db)

	configSvc := service.NewSavingsConfigService(configs, users)
	userSvc := service.NewUserService(users, configSvc)
	accountSvc := service.NewAccountService(accounts, movements, users, db)
	movementSvc := service.NewMovementService(accounts, movements, db)
	expenseSvc := service.NewExpenseService(expenses, accounts, movements, configs, users, db)

	authHandler := handler.NewAuthHandler(userSvc, cfg.JWTSecret, cfg.JWTExpiry)
	accountHandler := handler.NewAccountHandler(accountSvc)
	movementHandler := handler.NewMovementHandler(movementSvc, accountSvc)
	expenseHandler := handler.NewExpenseHandler(expenseSvc)
	configHandler := handler.NewConfigHandler(configSvc)
	healthHandler := handler.NewHealthHandler(db)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Liveness)
	mux.HandleFunc("GET /health/ready", healthHandler.Readiness)
	mux.HandleFunc("GET /docs", handler.ServeDocs())
	mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec(openAPISpec))

	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	authed := http.NewServeMux()
	authed.HandleFunc("GET /api/v1/me", authHandler.Me)

	authed.HandleFunc("POST /api/v1/users/{id}/account", accountHandler.Create)
	authed.HandleFunc("GET /api/v1/users/{id}/account", accountHandler.Get)
	authed.HandleFunc("GET /api/v1/users/{id}/account/summary", accountHandler.Summary)
	authed.HandleFunc("DELETE /api/v1/users/{id}/account", accountHandler.Close)

	authed.HandleFunc("POST /api/v1/users/{id}/expenses", expenseHandler.Record)
	authed.HandleFunc("GET /api/v1/users/{id}/expenses", expenseHandler.List)
	authed.HandleFunc("GET /api/v1/users/{id}/expenses/{expenseID}", expenseHandler.Get)
	authed.HandleFunc("DELETE /api/v1/users/{id}/expenses/{expenseID}", expenseHandler.Delete)

	authed.HandleFunc("POST /api/v1/users/{id}/movements", movementHandler.Create)
	authed.HandleFunc("GET /api/v1/users/{id}/movements", movementHandler.List)
	authed.HandleFunc("GET /api/v1/users/{id}/movements/{movementID}", movementHandler.Get)
	authed.HandleFunc("POST /api/v1/users/{id}/movements/{movementID}/revert", movementHandler.Revert)

	authed.HandleFunc("POST /api/v1/users/{id}/config", configHandler.Create)
	authed.HandleFunc("GET /api/v1/users/{id}/config", configHandler.GetActive)
	authed.HandleFunc("PUT /api/v1/users/{id}/config/{configID}/activate", configHandler.Activate)
	authed.HandleFunc("PUT /api/v1/users/{id}/config/{configID}/deactivate", configHandler.Deactivate)

	mux.Handle("/api/v1/", middleware.Auth(cfg.JWTSecret)(authed))

	root := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
