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

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/events"
	httpapi "github.com/globalgrad/counsellor/internal/counsel/http"
	"github.com/globalgrad/counsellor/internal/counsel/service"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/pkg/cryptox"
	"github.com/globalgrad/counsellor/pkg/jwtx"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application is the HTTP API process with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	bus      events.Bus
	catalog  *domain.Catalog
	sessions *jwtx.SessionSigner
	hasher   *cryptox.PasswordHasher

	// Services
	userService       *service.UserService
	onboardingService *service.OnboardingService
	selectionService  *service.SelectionService
	voiceService      *service.VoiceService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "counsellor-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := context.Background()

	db, err := OpenStore(ctx, cfg.DatabaseURL, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := app.initSecurity(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.catalog, err = LoadCatalog(cfg.CatalogFile)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.bus, err = OpenBus(ctx, cfg.RedisURL, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("counsellor api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down counsellor api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Closing the bus ends open /events streams.
	if err := app.bus.Close(); err != nil {
		app.logger.Error("error closing event bus", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("counsellor api stopped")
	return nil
}

// initSecurity prepares the session signer and password hasher.
func (app *Application) initSecurity() error {
	key := app.cfg.SecretKey
	if key == "" {
		// Sessions do not survive a restart with a generated key.
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return fmt.Errorf("failed to generate session key: %w", err)
		}
		key = generated
		app.logger.Warn("SECRET_KEY not set; using a random session key")
	}

	sessions, err := jwtx.NewSessionSigner(app.cfg.Algorithm, []byte(key))
	if err != nil {
		return fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.sessions = sessions

	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.userService = &service.UserService{Store: app.db, Hasher: app.hasher}
	if app.cfg.GoogleClientID != "" {
		app.userService.Google = jwtx.NewGoogleVerifier(
			jwtx.NewRemoteKeySet(jwtx.GoogleJWKSURL),
			app.cfg.GoogleClientID,
		)
	} else {
		app.logger.Info("google login disabled (GOOGLE_CLIENT_ID not set)")
	}

	app.onboardingService = &service.OnboardingService{Store: app.db}
	app.selectionService = &service.SelectionService{Store: app.db, Events: app.bus}
	app.voiceService = &service.VoiceService{
		Keys: jwtx.LiveKitKeys{APIKey: app.cfg.LiveKitAPIKey, APISecret: app.cfg.LiveKitAPISecret},
		URL:  app.cfg.LiveKitURL,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		httpapi.Config{
			ProjectName: app.cfg.ProjectName,
			Prefix:      app.cfg.APIPrefix,
			Version:     BuildVersion,
			CORSOrigins: app.cfg.CORSOrigins,
			Cookie: httpapi.CookieConfig{
				TTL:      app.cfg.AccessTokenTTL,
				SameSite: httpapi.ParseSameSite(app.cfg.CookieSameSite),
				Secure:   app.cfg.CookieSecure,
			},
		},
		app.sessions,
		app.db,
		app.catalog,
		app.bus,
		app.logger,
	)

	router.UserService = app.userService
	router.OnboardingService = app.onboardingService
	router.SelectionService = app.selectionService
	router.VoiceService = app.voiceService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
