// Package agent runs the voice counsellor: one Session per LiveKit room,
// bridging a realtime model's tool calls onto the counselling data.
//
// The package owns no transport. Rooms and models are supplied through the
// Room and Model interfaces; see the livekit and gemini subpackages.
package agent

import (
	"context"
	"errors"
)

// ErrRoomClosed is returned by Room methods after the room ended.
var ErrRoomClosed = errors.New("agent: room closed")

// Participant is a remote member of a room.
type Participant struct {
	Identity string
	Name     string
}

// Room is the agent's view of a realtime room.
type Room interface {
	Name() string

	// WaitForParticipant blocks until a non-agent participant is present.
	WaitForParticipant(ctx context.Context) (Participant, error)

	// PublishData sends a reliable data packet to every participant.
	PublishData(ctx context.Context, topic string, payload []byte) error

	// Done is closed when the room finishes or the participant leaves.
	Done() <-chan struct{}

	Close() error
}

// Parameter describes one argument of a tool.
type Parameter struct {
	Name        string
	Type        string // "string", "integer", "boolean"
	Description string
	Required    bool
}

// ToolDeclaration is what the model is told about a tool.
type ToolDeclaration struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// SessionConfig configures a realtime model connection.
type SessionConfig struct {
	Instructions string
	Voice        string
	Language     string
	Temperature  float32
	Tools        []ToolDeclaration
}

// Model opens realtime conversations.
type Model interface {
	Connect(ctx context.Context, cfg SessionConfig) (ModelSession, error)
}

// ModelSession is one open realtime conversation.
type ModelSession interface {
	// Events is closed when the conversation ends.
	Events() <-chan ModelEvent

	SendToolResult(ctx context.Context, call ToolCall, result string) error

	// GenerateReply asks the model to speak following instructions.
	GenerateReply(ctx context.Context, instructions string) error

	Close() error
}

// EventKind discriminates ModelEvent.
type EventKind int

const (
	EventToolCall EventKind = iota + 1
	EventUserTranscript
	EventUserState
	EventAgentState
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventToolCall:
		return "tool_call"
	case EventUserTranscript:
		return "user_input_transcribed"
	case EventUserState:
		return "user_state_changed"
	case EventAgentState:
		return "agent_state_changed"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args Args
}

// ModelEvent is emitted by a ModelSession. Which fields are set depends on
// Kind.
type ModelEvent struct {
	Kind EventKind

	ToolCall ToolCall

	Transcript string
	Final      bool
	SpeakerID  string

	OldState string
	NewState string

	Err error
}
