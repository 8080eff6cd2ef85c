// Package app assembles the auth service: config, logger, store, cache,
// codec, mailer, metrics, and the HTTP server with graceful shutdown.
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

	"github.com/prometheus/client_golang/prometheus"

	"github.com/brandu/auth/internal/auth/cache"
	httpapi "github.com/brandu/auth/internal/auth/http"
	"github.com/brandu/auth/internal/auth/mail"
	"github.com/brandu/auth/internal/auth/metrics"
	"github.com/brandu/auth/internal/auth/service"
	"github.com/brandu/auth/internal/auth/store"
	"github.com/brandu/auth/internal/auth/store/drivers/sqlite"
	"github.com/brandu/auth/pkg/jwtx"
	"github.com/brandu/auth/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	cache *cache.Cache

	auth *service.AuthService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully stops the server and releases resources.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.cache.Close(); err != nil {
		app.logger.Error("error closing redis client", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
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

func (app *Application) initServices() error {
	app.cache = cache.New(cache.Options{
		Addr:        app.cfg.RedisAddr,
		Password:    app.cfg.RedisPassword,
		DB:          app.cfg.RedisDB,
		DialTimeout: app.cfg.RedisDialTimeout,
		ReadTimeout: app.cfg.RedisReadTimeout,
	})

	codec, err := jwtx.NewCodec(
		[]byte(app.cfg.SecretKey),
		app.cfg.AccessTokenTTL,
		app.cfg.RefreshTokenTTL,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}

	var mailer mail.Mailer
	if app.cfg.SMTPHost != "" {
		mailer, err = mail.NewSMTPMailer(mail.SMTPOptions{
			Host:                app.cfg.SMTPHost,
			Port:                app.cfg.SMTPPort,
			Username:            app.cfg.SMTPUsername,
			Password:            app.cfg.SMTPPassword,
			From:                app.cfg.MailFrom,
			ChallengeTTLMinutes: int(cache.ChallengeTTL / time.Minute),
		})
		if err != nil {
			return err
		}
	} else {
		app.logger.Warn("SMTP_HOST not set, challenge codes will be logged instead of mailed")
		mailer = &mail.LogMailer{Log: app.logger}
	}

	registry := prometheus.NewRegistry()

	app.auth = &service.AuthService{
		Store:   app.db,
		Cache:   app.cache,
		Codec:   codec,
		Mailer:  mailer,
		Metrics: metrics.NewCollector(registry),
	}

	app.router = httpapi.NewRouter(
		app.auth,
		registry,
		app.logger,
		BuildVersion,
		app.cfg.OAuthRedirectURL,
	)
	return nil
}

func (app *Application) initHTTP() {
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
