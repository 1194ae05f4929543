package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/propertyhub/propertyhub-go/internal/config"
	"github.com/propertyhub/propertyhub-go/internal/handler"
	"github.com/propertyhub/propertyhub-go/internal/repository/mongodb"
	"github.com/propertyhub/propertyhub-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Warn("mongo disconnect", "error", err)
		}
	}()

	db := client.Database(cfg.MongoDB)

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.Init(ctx); err != nil {
		slog.Error("init user repository", "error", err)
		os.Exit(1)
	}

	propertyRepo := mongodb.NewPropertyRepository(db)
	if err := propertyRepo.Init(ctx); err != nil {
		slog.Error("init property repository", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	authHandler := handler.NewAuthHandler(authService)

	propertyService := service.NewPropertyService(propertyRepo)
	propertyHandler := handler.NewPropertyHandler(propertyService)

	router := handler.NewRouter(authHandler, propertyHandler, userRepo, cfg.JWTSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
