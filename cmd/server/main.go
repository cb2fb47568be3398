package main

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

	"github.com/damacus/iron-gallery/internal/config"
	"github.com/damacus/iron-gallery/internal/gallery"
	"github.com/damacus/iron-gallery/internal/handlers"
	customMiddleware "github.com/damacus/iron-gallery/internal/middleware"
	"github.com/damacus/iron-gallery/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// backend is what every storage implementation provides
type backend interface {
	services.ObjectStore
	services.Readiness
}

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newBackend(ctx, cfg)
	if err != nil {
		return err
	}
	notifier, err := newNotifier(ctx, cfg, logger)
	if err != nil {
		return err
	}

	svc := gallery.NewService(store, notifier, gallery.Options{
		DefaultFolder: cfg.DefaultFolder,
		SuggestFolder: cfg.SuggestFolder,
		PageSize:      cfg.PageSize,
	}, logger)

	e := newServer(svc, store, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr(), "backend", cfg.Backend, "bucket", cfg.Bucket)
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newBackend(ctx context.Context, cfg *config.Config) (backend, error) {
	switch cfg.Backend {
	case config.BackendMinio:
		store, err := services.NewMinioStore(services.MinioCredentials{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
		}, cfg.Bucket)
		if err != nil {
			return nil, fmt.Errorf("connect to minio: %w", err)
		}
		return store, nil
	case config.BackendS3:
		awsCfg, err := services.LoadAWSConfig(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
		if err != nil {
			return nil, err
		}
		return services.NewS3Store(awsCfg, cfg.Bucket), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func newNotifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Notifier, error) {
	if cfg.SNSTopicARN == "" {
		logger.Info("SNS_TOPIC_ARN not set, suggestion notifications disabled")
		return services.NopNotifier{}, nil
	}
	awsCfg, err := services.LoadAWSConfig(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
	if err != nil {
		return nil, err
	}
	return services.NewSNSNotifier(awsCfg, cfg.SNSTopicARN, cfg.Bucket, logger), nil
}

func newServer(svc *gallery.Service, readiness services.Readiness, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	imagesHandler := handlers.NewImagesHandler(svc, logger)
	healthHandler := handlers.NewHealthHandler(readiness, logger)

	// Middleware
	e.Use(customMiddleware.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("10M"))
	e.Use(customMiddleware.SecurityHeaders())

	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)

	e.GET("/folders", imagesHandler.ListFolders)
	e.GET("/folders/:folderName/images", imagesHandler.ListFolderContent)
	e.POST("/folders/:folderName/images", imagesHandler.UploadImage)
	e.DELETE("/folders/:folderName/images/:imageId", imagesHandler.DeleteImage)
	e.PATCH("/folders/:folderName/images/:imageId", imagesHandler.MoveImage)
	e.POST("/folders/:folderName/images/:imageId/move", imagesHandler.MoveImage)

	return e
}
