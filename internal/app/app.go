package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"readboard/internal/config"
	"readboard/internal/roster"
	"readboard/internal/server"
	"readboard/internal/storage"
	"readboard/internal/storage/ch"
	"readboard/internal/storage/stubs"
)

// App represents the application
type App struct {
	config *config.Config
	logger *zap.Logger
	db     storage.Storage
	server *http.Server
}

// New creates and initializes a new application instance
func New() (*App, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Load configuration from environment variables
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	app := &App{config: cfg, logger: logger}

	logger.Info("Starting reading progress dashboard")

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initHTTPServer()

	return app, nil
}

// newLogger builds the zap logger: development config in mock mode,
// production config otherwise.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.UseMockDB {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// initDatabase initializes the storage backend
func (a *App) initDatabase() error {
	var db storage.Storage
	if a.config.UseMockDB {
		a.logger.Info("Using mock storage with demo data")
		db = stubs.NewMockDB()
	} else {
		a.logger.Info("Connecting to ClickHouse",
			zap.String("host", a.config.ClickHouseHost),
			zap.Int("port", a.config.ClickHousePort),
			zap.String("database", a.config.ClickHouseDatabase),
			zap.String("user", a.config.ClickHouseUser),
			zap.Bool("tls", a.config.ClickHouseUseTLS),
		)
		clickhouseDB, err := ch.NewClickHouseDB(
			a.config.ClickHouseHost,
			a.config.ClickHousePort,
			a.config.ClickHouseDatabase,
			a.config.ClickHouseUser,
			a.config.ClickHousePassword,
			a.config.ClickHouseUseTLS,
		)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		db = clickhouseDB
	}

	ctx := context.Background()
	if err := db.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Mock mode seeds its own teacher account
	if a.config.UseMockDB && a.config.TeacherID == "" {
		if mock, ok := db.(*stubs.MockDB); ok {
			a.config.TeacherID = mock.SeedTeacherID()
		}
	}

	a.logger.Info("Storage initialized")
	a.db = db
	return nil
}

// initHTTPServer wires the loader and the dashboard router
func (a *App) initHTTPServer() {
	loader := roster.NewLoader(a.db, a.logger)
	handler := server.New(loader, a.config.TeacherID, a.logger)

	a.server = &http.Server{
		Addr:         ":" + a.config.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	<-sigChan

	a.logger.Info("Shutting down")
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing storage", zap.Error(err))
		return err
	}

	a.logger.Info("Shutdown complete")
	return nil
}
