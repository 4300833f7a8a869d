package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DukeRupert/progressly/internal"
	"github.com/DukeRupert/progressly/internal/auth"
	"github.com/DukeRupert/progressly/internal/email"
	"github.com/DukeRupert/progressly/internal/handler"
	"github.com/DukeRupert/progressly/internal/invite"
	"github.com/DukeRupert/progressly/internal/metrics"
	"github.com/DukeRupert/progressly/internal/middleware"
	"github.com/DukeRupert/progressly/internal/repository"
	"github.com/DukeRupert/progressly/internal/service"
	"github.com/DukeRupert/progressly/internal/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	if err := internal.RunMigrations(ctx, db, logger); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	repo := repository.New(db)

	store, err := newStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}

	transport := email.NewSMTPTransport(email.Options{
		ConnectionTimeout: cfg.SMTPConnectionTimeout,
		SocketTimeout:     cfg.SMTPSocketTimeout,
		HeloName:          cfg.SMTPHeloName,
		AllowInsecureTLS:  cfg.SMTPAllowInsecureTLS,
	}, logger)

	// Initialize services
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)
	userService := service.NewUserService(repo, tokens, logger)
	dispatcher := service.NewDispatcher(repo, transport, logger)
	reportService := service.NewReportService(
		service.NewReportAssembler(repo, logger),
		service.NewAttachmentLoader(store, logger),
		dispatcher,
		logger,
	)
	historyService := service.NewHistoryService(repo, dispatcher, logger)
	emailConfigService := service.NewEmailConfigService(repo, logger)

	// Initialize middleware
	authMw := middleware.NewAuthMiddleware(tokens, userService, logger)
	authLimiter := middleware.NewAuthRateLimiter(cfg.LoginRateLimit, logger)
	go authLimiter.Run(ctx)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)
	if !metricsAuth.Enabled() {
		logger.Warn("metrics endpoint is unprotected; set METRICS_USERNAME and METRICS_PASSWORD")
	}
	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	requireUser := authMw.RequireUser
	invites := invite.New(cfg.InviteCodes)
	if !invites.Required() {
		logger.Info("registration is open; set INVITE_CODES to require an invite code")
	}
	handler.NewAuthHandler(userService, invites, logger).
		RegisterRoutes(mux, requireUser, authLimiter.LimitLogin, authLimiter.LimitRegister)
	handler.NewReportHandler(reportService, logger).RegisterRoutes(mux, requireUser)
	handler.NewHistoryHandler(historyService, logger).RegisterRoutes(mux, requireUser)
	handler.NewEmailConfigHandler(emailConfigService, dispatcher, logger).RegisterRoutes(mux, requireUser)

	stack := middleware.Stack(
		middleware.NewRequestLoggingMiddleware(logger).Handler,
		middleware.NewSecurityHeadersMiddleware(!cfg.IsDevelopment()).Handler,
		metrics.Middleware,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           stack(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Sends in flight finish their bookkeeping before the process exits.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// newStorage selects the attachment store named by STORAGE_PROVIDER.
func newStorage(cfg *internal.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.StorageProvider == "s3" {
		return storage.NewS3Storage(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3BucketName,
			PublicURL:       cfg.S3PublicURL,
		}, logger)
	}
	return storage.NewLocalStorage(storage.LocalConfig{
		BasePath: cfg.LocalStoragePath,
		BaseURL:  cfg.LocalStorageURL,
	}, logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
