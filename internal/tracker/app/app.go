package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/uptrack/uptrack/internal/tracker/http"
	"github.com/uptrack/uptrack/internal/tracker/service"
	"github.com/uptrack/uptrack/internal/tracker/storage"
	"github.com/uptrack/uptrack/internal/tracker/store"
	"github.com/uptrack/uptrack/internal/tracker/store/drivers/sqlite"
	"github.com/uptrack/uptrack/pkg/cryptox"
	"github.com/uptrack/uptrack/pkg/jwtx"
	"github.com/uptrack/uptrack/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the tracker service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	files    storage.Storage
	signer   jwtx.Signer
	verifier jwtx.Verifier

	// Services
	authService   *service.AuthService
	userService   *service.UserService
	uploadService *service.UploadService
	statsService  *service.StatsService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "uptrack",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initTokens(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initStorage(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("uptrack starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down uptrack...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("uptrack stopped")
	return nil
}

// initTokens builds the HS256 signer/verifier pair from the configured secret.
func (app *Application) initTokens() error {
	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.TokenSecret))
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer
	app.verifier = jwtx.NewCommonHS256([]byte(app.cfg.TokenSecret), app.cfg.Issuer)
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initStorage prepares the on-disk home for uploaded bytes.
func (app *Application) initStorage() error {
	files, err := storage.NewLocal(app.cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}
	app.files = files
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:    app.db,
		Signer:   app.signer,
		Verifier: app.verifier,
		Issuer:   app.cfg.Issuer,
		Timeout:  app.cfg.StoreTimeout,
	}
	app.userService = &service.UserService{
		Store:   app.db,
		Timeout: app.cfg.StoreTimeout,
	}
	app.uploadService = &service.UploadService{
		Store:          app.db,
		Files:          app.files,
		MaxUploadBytes: app.maxUploadBytes(),
		Timeout:        app.cfg.StoreTimeout,
	}
	app.statsService = &service.StatsService{
		Store:   app.db,
		Timeout: app.cfg.StoreTimeout,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.files,
		app.cfg.UploadDir,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.UploadService = app.uploadService
	router.StatsService = app.statsService
	router.MaxUploadBytes = app.maxUploadBytes()
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

func (app *Application) maxUploadBytes() int64 {
	if app.cfg.MaxUploadMB <= 0 {
		return service.DefaultMaxUploadBytes
	}
	return int64(app.cfg.MaxUploadMB) << 20
}
