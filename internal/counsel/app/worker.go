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

	"github.com/go-chi/chi/v5/middleware"

	"github.com/globalgrad/counsellor/internal/counsel/agent"
	"github.com/globalgrad/counsellor/internal/counsel/agent/gemini"
	"github.com/globalgrad/counsellor/internal/counsel/agent/livekit"
	"github.com/globalgrad/counsellor/internal/counsel/events"
	httpapi "github.com/globalgrad/counsellor/internal/counsel/http"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/pkg/httpx"
	"github.com/globalgrad/counsellor/pkg/jwtx"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

// WebhookPath receives LiveKit webhooks.
const WebhookPath = "/livekit/webhook"

// Worker is the voice agent process: it listens for LiveKit room webhooks
// and runs one counsellor session per room.
type Worker struct {
	cfg    Config
	logger *slog.Logger

	db  store.Store
	bus events.Bus

	ctx    context.Context
	cancel context.CancelFunc

	dispatcher *agent.Dispatcher
	hub        *livekit.Hub
	server     *http.Server
}

// NewWorker connects the model and wires the session dispatcher.
func NewWorker(cfg Config) (*Worker, error) {
	w := &Worker{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "counsellor-agent",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	keys := jwtx.LiveKitKeys{APIKey: cfg.LiveKitAPIKey, APISecret: cfg.LiveKitAPISecret}
	if !keys.Configured() || cfg.LiveKitURL == "" {
		return nil, errors.New("LIVEKIT_URL, LIVEKIT_API_KEY and LIVEKIT_API_SECRET are required")
	}

	catalog, err := LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	instructions, err := agent.SystemInstruction(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to render system instruction: %w", err)
	}

	w.ctx, w.cancel = context.WithCancel(context.Background())

	model, err := gemini.New(w.ctx, gemini.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}, w.logger)
	if err != nil {
		w.cancel()
		return nil, fmt.Errorf("failed to initialize gemini: %w", err)
	}

	w.db, err = OpenStore(w.ctx, cfg.DatabaseURL, w.logger)
	if err != nil {
		w.cancel()
		return nil, err
	}

	w.bus, err = OpenBus(w.ctx, cfg.RedisURL, w.logger)
	if err != nil {
		w.cancel()
		_ = w.db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	w.dispatcher = agent.NewDispatcher(
		w.ctx,
		model,
		agent.NewRegistry(agent.CounsellorTools(w.db)...),
		w.bus,
		agent.SessionConfig{
			Instructions: instructions,
			Voice:        agent.DefaultVoice,
			Language:     agent.DefaultLanguage,
			Temperature:  agent.DefaultTemperature,
		},
		w.logger,
	)

	rooms := livekit.NewRoomService(cfg.LiveKitURL, keys, &http.Client{Timeout: 10 * time.Second})
	w.hub = livekit.NewHub(rooms, w.dispatcher, w.logger)

	startTime := time.Now()
	mux := http.NewServeMux()
	mux.Handle("POST "+WebhookPath, livekit.NewWebhookHandler(keys, w.hub, w.logger))
	mux.Handle("GET /livez", httpapi.LivezHandler(startTime, BuildVersion))
	mux.Handle("GET /readyz", httpapi.ReadyzHandler(startTime, BuildVersion, w.db, w.bus))

	w.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AgentPort),
		Handler:           httpx.Chain(mux, slogx.HTTPMiddleware(w.logger), middleware.Recoverer),
		ReadHeaderTimeout: 3 * time.Second,
	}

	return w, nil
}

// Run serves webhooks until a shutdown signal arrives.
func (w *Worker) Run() error {
	w.logger.Info("counsellor agent starting", "port", w.cfg.AgentPort, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- w.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		w.logger.Info("shutdown signal received", "signal", sig)

		if err := w.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops accepting webhooks, ends every session and waits for them.
func (w *Worker) Shutdown() error {
	w.logger.Info("shutting down counsellor agent...", "sessions", w.dispatcher.Count())

	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := w.server.Shutdown(ctx); err != nil {
		w.logger.Error("graceful server shutdown failed", "error", err)
		_ = w.server.Close()
	}

	w.hub.CloseAll()
	if err := w.dispatcher.Shutdown(ctx); err != nil {
		w.logger.Error("sessions did not end in time", "error", err)
	}
	w.cancel()

	if err := w.bus.Close(); err != nil {
		w.logger.Error("error closing event bus", "error", err)
	}
	if err := w.db.Close(); err != nil {
		w.logger.Error("error closing database", "error", err)
		return err
	}

	w.logger.Info("counsellor agent stopped")
	return nil
}
