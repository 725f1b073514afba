package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/events"
	"github.com/globalgrad/counsellor/pkg/idx"
)

// State is the lifecycle position of a Session.
type State int32

const (
	StateAwaitingParticipant State = iota
	StateActive
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateAwaitingParticipant:
		return "awaiting_participant"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Default voice settings of the counsellor.
const (
	DefaultVoice       = "Puck"
	DefaultLanguage    = "en-US"
	DefaultTemperature = 0.8
)

// Session is one voice conversation between a user and the counsellor. It
// moves AwaitingParticipant -> Active -> Ended exactly once.
type Session struct {
	ID idx.ID

	room   Room
	model  Model
	tools  *Registry
	events events.Bus
	config SessionConfig
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	userID   int64
	identity string
}

// NewSession prepares a session for room. bus may be nil.
func NewSession(room Room, model Model, tools *Registry, bus events.Bus, cfg SessionConfig, logger *slog.Logger) *Session {
	id := idx.New()
	return &Session{
		ID:     id,
		room:   room,
		model:  model,
		tools:  tools,
		events: bus,
		config: cfg,
		logger: logger.With(slog.String("session_id", id.String()), slog.String("room", room.Name())),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UserID is the numeric identity of the participant, or 0 when the identity
// was not a number.
func (s *Session) UserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Run drives the session until the room closes, the model hangs up or ctx
// is cancelled. It returns nil on a normal end.
func (s *Session) Run(ctx context.Context) error {
	if s.State() != StateAwaitingParticipant {
		return errors.New("agent: session already ran")
	}
	defer s.setState(StateEnded)

	s.logger.Info("waiting for participant")
	p, err := s.room.WaitForParticipant(ctx)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, ErrRoomClosed) {
			return nil
		}
		return fmt.Errorf("wait for participant: %w", err)
	}
	s.start(p)

	cfg := s.config
	cfg.Tools = s.tools.Declarations()
	ms, err := s.model.Connect(ctx, cfg)
	if err != nil {
		s.logger.Error("failed to connect realtime model", slog.Any("error", err))
		return fmt.Errorf("connect model: %w", err)
	}
	defer func() {
		if err := ms.Close(); err != nil {
			s.logger.Debug("model session close", slog.Any("error", err))
		}
	}()
	s.logger.Info("agent session started")

	if err := ms.GenerateReply(ctx, GreetingInstruction()); err != nil {
		s.logger.Error("failed to send greeting", slog.Any("error", err))
	}

	modelEvents := ms.Events()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session cancelled")
			return nil
		case <-s.room.Done():
			s.logger.Info("room closed, ending session")
			return nil
		case ev, ok := <-modelEvents:
			if !ok {
				s.logger.Info("model session ended")
				return nil
			}
			s.handle(ctx, ms, ev)
		}
	}
}

func (s *Session) start(p Participant) {
	userID, err := domain.ParseIdentity(p.Identity)
	if err != nil {
		s.logger.Warn("could not parse user id from identity, using 0",
			slog.String("identity", p.Identity),
		)
		userID = 0
	}

	s.mu.Lock()
	s.userID = userID
	s.identity = p.Identity
	s.state = StateActive
	s.mu.Unlock()

	s.logger = s.logger.With(slog.Int64("user_id", userID))
	s.logger.Info("starting voice assistant for participant", slog.String("identity", p.Identity))
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

func (s *Session) handle(ctx context.Context, ms ModelSession, ev ModelEvent) {
	switch ev.Kind {
	case EventToolCall:
		result := s.tools.Execute(ctx, s, ev.ToolCall)
		if err := ms.SendToolResult(ctx, ev.ToolCall, result); err != nil {
			s.logger.Error("failed to return tool result",
				slog.String("tool", ev.ToolCall.Name),
				slog.Any("error", err),
			)
		}
	case EventUserTranscript:
		s.logger.Info("user_input_transcribed",
			slog.Bool("final", ev.Final),
			slog.String("speaker_id", ev.SpeakerID),
			slog.String("transcript", ev.Transcript),
		)
	case EventUserState, EventAgentState:
		s.logger.Info(ev.Kind.String(),
			slog.String("old_state", ev.OldState),
			slog.String("new_state", ev.NewState),
		)
	case EventError:
		s.logger.Error("agent_session_error", slog.Any("error", ev.Err))
	}
}

// Notify tells the browser and any dashboards that a selection changed.
// Failures are logged; the tool call that caused them still succeeded.
func (s *Session) Notify(ctx context.Context, ev domain.UniversityUpdate) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("failed to encode update", slog.Any("error", err))
		return
	}
	if err := s.room.PublishData(ctx, domain.UniversityUpdateTopic, payload); err != nil {
		s.logger.Warn("failed to publish data to room", slog.Any("error", err))
	}
	if s.events != nil {
		if err := s.events.Publish(ctx, s.UserID(), ev); err != nil {
			s.logger.Warn("failed to publish update event", slog.Any("error", err))
		}
	}
}
