// Package gemini implements agent.Model on the Gemini Live API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/globalgrad/counsellor/internal/counsel/agent"
)

// DefaultModel is used when GEMINI_MODEL is unset.
const DefaultModel = "gemini-2.0-flash-live-001"

var ErrNoAPIKey = errors.New("gemini: api key is required")

type Config struct {
	APIKey string
	Model  string
}

// Model opens Live API sessions.
type Model struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Model, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Model{client: client, model: model, logger: logger.With(slog.String("model", model))}, nil
}

func (m *Model) Connect(ctx context.Context, cfg agent.SessionConfig) (agent.ModelSession, error) {
	sess, err := m.client.Live.Connect(ctx, m.model, LiveConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("gemini: live connect: %w", err)
	}
	m.logger.Debug("live session opened", slog.Int("tools", len(cfg.Tools)))
	return newSession(sess, m.logger), nil
}
