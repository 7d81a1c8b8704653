// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/bissquit/hotel-desk/internal/admin"
	"github.com/bissquit/hotel-desk/internal/bookings"
	bookingsfilestore "github.com/bissquit/hotel-desk/internal/bookings/filestore"
	"github.com/bissquit/hotel-desk/internal/cli"
	"github.com/bissquit/hotel-desk/internal/config"
	"github.com/bissquit/hotel-desk/internal/domain"
	"github.com/bissquit/hotel-desk/internal/identity"
	identityfilestore "github.com/bissquit/hotel-desk/internal/identity/filestore"
	"github.com/bissquit/hotel-desk/internal/pkg/ctxlog"
	"github.com/bissquit/hotel-desk/internal/pkg/httputil"
	"github.com/bissquit/hotel-desk/internal/version"
	"golang.org/x/time/rate"
)

// App represents the application instance.
type App struct {
	config        *config.Config
	logger        *slog.Logger
	identity      *identity.Service
	console       *cli.Console
	metricsServer *http.Server
}

// New creates a new application instance reading menu input from in and
// writing menus to out. Logs go to logOut.
func New(cfg *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger := initLogger(cfg.Log, logOut)

	scheme, err := identity.NewPasswordScheme(cfg.Auth.PasswordScheme, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("password scheme: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.Auth.LoginRate > 0 {
		burst := cfg.Auth.LoginBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.Auth.LoginRate), burst)
	}

	accounts := identityfilestore.NewRepository(identityfilestore.Config{
		Dir:          cfg.Storage.DataDir,
		AdminFile:    cfg.Storage.AdminFile,
		StaffFile:    cfg.Storage.StaffFile,
		CustomerFile: cfg.Storage.CustomerFile,
	})
	ledger := bookingsfilestore.NewLedger(bookingsfilestore.Config{
		Dir:        cfg.Storage.DataDir,
		RoomsFile:  cfg.Storage.RoomsFile,
		FoodFile:   cfg.Storage.FoodFile,
		EventsFile: cfg.Storage.EventsFile,
	})

	identityService := identity.NewService(accounts, scheme, limiter)
	adminService := admin.NewService(accounts)
	bookingsService := bookings.NewService(ledger)

	app := &App{
		config:   cfg,
		logger:   logger,
		identity: identityService,
		console:  cli.NewConsole(in, out, identityService, adminService, bookingsService),
	}

	if f, ok := in.(*os.File); ok {
		app.console.UseTerminal(int(f.Fd()))
	}

	if cfg.Metrics.Enabled {
		metricsRouter := httputil.NewRouter(logger, func(ctx context.Context) error {
			_, err := accounts.Exists(ctx, domain.RoleAdmin)
			return err
		})

		app.metricsServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Metrics.Host, cfg.Metrics.Port),
			Handler:           metricsRouter,
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}

	return app, nil
}

// Run creates the default admin if needed and runs the menus until the
// user exits.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	if a.metricsServer != nil {
		go func() {
			a.logger.Info("starting metrics server",
				"host", a.config.Metrics.Host,
				"port", a.config.Metrics.Port,
			)
			if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.logger.Error("metrics server error", "error", err)
			}
		}()
	}

	created, err := a.identity.Bootstrap(ctx, a.config.Bootstrap.AdminUsername, a.config.Bootstrap.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		a.logger.Info("admin account created",
			"username", a.config.Bootstrap.AdminUsername,
			"data_dir", a.config.Storage.DataDir,
		)
	}

	a.logger.Debug("console started", "version", version.Version)

	return a.console.Run(ctx)
}

// Shutdown stops the metrics server if it is running.
func (a *App) Shutdown(ctx context.Context) error {
	if a.metricsServer == nil {
		return nil
	}

	a.logger.Info("shutting down metrics server")
	if err := a.metricsServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	return nil
}

func initLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
