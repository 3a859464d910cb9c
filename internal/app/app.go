package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photoshare/internal/auth"
	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/handler"
	"photoshare/internal/middleware"
	"photoshare/internal/repository"
	"photoshare/internal/router"
	"photoshare/internal/service"
	"photoshare/internal/upload"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	pipeline, err := upload.New(cfg.UploadRoot, cfg.ThumbnailRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload pipeline: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool)
	photoRepo := repository.NewPhotoRepository(db.Pool)
	slog.Info("database ready")

	// The signing secret is loaded once here and never mutated afterwards.
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	authService := service.NewAuthService(userRepo, tokenService)
	userService := service.NewUserService(userRepo, pipeline)
	photoService := service.NewPhotoService(photoRepo, pipeline)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:  handler.NewAuthHandler(authService),
		User:  handler.NewUserHandler(userService, cfg.MaxUploadSize),
		Admin: handler.NewAdminHandler(userService, cfg.MaxUploadSize),
		Photo: handler.NewPhotoHandler(photoService, cfg.MaxUploadSize),
	}, pipeline.Root())

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()

	slog.Info("server stopped")
	return nil
}
