package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/genai"

	"github.com/globalgrad/counsellor/internal/counsel/agent"
)

// conn is the part of *genai.Session the adapter uses.
type conn interface {
	Receive() (*genai.LiveServerMessage, error)
	SendClientContent(genai.LiveClientContentInput) error
	SendToolResponse(genai.LiveToolResponseInput) error
	Close() error
}

const (
	stateListening = "listening"
	stateSpeaking  = "speaking"
	stateThinking  = "thinking"
)

type session struct {
	conn   conn
	logger *slog.Logger
	events chan agent.ModelEvent

	// The websocket allows a single concurrent writer.
	sendMu sync.Mutex

	closeOnce sync.Once
	closed    chan struct{}

	// Owned by the read loop.
	agentState string
	userState  string
}

func newSession(c conn, logger *slog.Logger) *session {
	s := &session{
		conn:       c,
		logger:     logger,
		events:     make(chan agent.ModelEvent, 16),
		closed:     make(chan struct{}),
		agentState: stateListening,
		userState:  stateListening,
	}
	go s.readLoop()
	return s
}

func (s *session) Events() <-chan agent.ModelEvent { return s.events }

func (s *session) SendToolResult(ctx context.Context, call agent.ToolCall, result string) error {
	return s.send(ctx, func() error {
		return s.conn.SendToolResponse(genai.LiveToolResponseInput{
			FunctionResponses: []*genai.FunctionResponse{{
				ID:       call.ID,
				Name:     call.Name,
				Response: map[string]any{"output": result},
			}},
		})
	})
}

func (s *session) GenerateReply(ctx context.Context, instructions string) error {
	return s.send(ctx, func() error {
		return s.conn.SendClientContent(genai.LiveClientContentInput{
			Turns:        []*genai.Content{genai.NewContentFromText(instructions, genai.RoleUser)},
			TurnComplete: genai.Ptr(true),
		})
	})
}

func (s *session) send(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-s.closed:
		return agent.ErrRoomClosed
	default:
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := fn(); err != nil {
		return fmt.Errorf("gemini: send: %w", err)
	}
	return nil
}

func (s *session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		err = s.conn.Close()
	})
	return err
}

func (s *session) readLoop() {
	defer close(s.events)
	for {
		msg, err := s.conn.Receive()
		if err != nil {
			select {
			case <-s.closed:
			default:
				s.emit(agent.ModelEvent{Kind: agent.EventError, Err: fmt.Errorf("gemini: receive: %w", err)})
			}
			return
		}
		if !s.dispatch(msg) {
			return
		}
	}
}

// dispatch turns one server message into events. It returns false once the
// session was closed.
func (s *session) dispatch(msg *genai.LiveServerMessage) bool {
	if msg.GoAway != nil {
		s.logger.Warn("live server going away", slog.Duration("time_left", msg.GoAway.TimeLeft))
	}

	if tc := msg.ToolCall; tc != nil {
		if !s.setAgentState(stateThinking) {
			return false
		}
		for _, fc := range tc.FunctionCalls {
			if fc == nil {
				continue
			}
			ok := s.emit(agent.ModelEvent{Kind: agent.EventToolCall, ToolCall: agent.ToolCall{
				ID:   fc.ID,
				Name: fc.Name,
				Args: agent.Args(fc.Args),
			}})
			if !ok {
				return false
			}
		}
	}

	sc := msg.ServerContent
	if sc == nil {
		return true
	}
	if tr := sc.InputTranscription; tr != nil {
		if !s.setUserState(stateSpeaking) {
			return false
		}
		if tr.Text != "" || tr.Finished {
			if !s.emit(agent.ModelEvent{Kind: agent.EventUserTranscript, Transcript: tr.Text, Final: tr.Finished}) {
				return false
			}
		}
		if tr.Finished && !s.setUserState(stateListening) {
			return false
		}
	}
	if sc.ModelTurn != nil {
		if !s.setUserState(stateListening) || !s.setAgentState(stateSpeaking) {
			return false
		}
	}
	if sc.Interrupted || sc.TurnComplete {
		if !s.setAgentState(stateListening) {
			return false
		}
	}
	return true
}

func (s *session) setAgentState(st string) bool {
	if s.agentState == st {
		return true
	}
	old := s.agentState
	s.agentState = st
	return s.emit(agent.ModelEvent{Kind: agent.EventAgentState, OldState: old, NewState: st})
}

func (s *session) setUserState(st string) bool {
	if s.userState == st {
		return true
	}
	old := s.userState
	s.userState = st
	return s.emit(agent.ModelEvent{Kind: agent.EventUserState, OldState: old, NewState: st})
}

func (s *session) emit(ev agent.ModelEvent) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.closed:
		return false
	}
}
