package agent

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/internal/counsel/store/drivers/sqlite"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "agent.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, st store.Store, email string) int64 {
	t.Helper()
	id, err := st.Users().CreateUser(context.Background(), domain.User{
		Email:          email,
		HashedPassword: "x",
		IsActive:       true,
	})
	require.NoError(t, err)
	return id
}

type published struct {
	topic   string
	payload []byte
}

type fakeRoom struct {
	name         string
	participants chan Participant
	done         chan struct{}
	closeOnce    sync.Once

	mu         sync.Mutex
	published  []published
	publishErr error
	closed     int
}

func newFakeRoom(name string) *fakeRoom {
	return &fakeRoom{
		name:         name,
		participants: make(chan Participant, 1),
		done:         make(chan struct{}),
	}
}

func (r *fakeRoom) Name() string { return r.name }

func (r *fakeRoom) WaitForParticipant(ctx context.Context) (Participant, error) {
	select {
	case p := <-r.participants:
		return p, nil
	case <-r.done:
		return Participant{}, ErrRoomClosed
	case <-ctx.Done():
		return Participant{}, ctx.Err()
	}
}

func (r *fakeRoom) PublishData(_ context.Context, topic string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, published{topic: topic, payload: payload})
	return r.publishErr
}

func (r *fakeRoom) Done() <-chan struct{} { return r.done }

func (r *fakeRoom) finish() { r.closeOnce.Do(func() { close(r.done) }) }

func (r *fakeRoom) Close() error {
	r.mu.Lock()
	r.closed++
	r.mu.Unlock()
	r.finish()
	return nil
}

func (r *fakeRoom) Published() []published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]published(nil), r.published...)
}

type toolResult struct {
	call   ToolCall
	result string
}

type fakeModelSession struct {
	events  chan ModelEvent
	results chan toolResult

	// closeGate, when set, holds Close until it is closed.
	closeGate chan struct{}

	mu      sync.Mutex
	replies []string
	closing bool
	closed  bool
}

func newFakeModelSession() *fakeModelSession {
	return &fakeModelSession{
		events:  make(chan ModelEvent, 8),
		results: make(chan toolResult, 8),
	}
}

func (m *fakeModelSession) Events() <-chan ModelEvent { return m.events }

func (m *fakeModelSession) SendToolResult(_ context.Context, call ToolCall, result string) error {
	m.results <- toolResult{call: call, result: result}
	return nil
}

func (m *fakeModelSession) GenerateReply(_ context.Context, instructions string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, instructions)
	return nil
}

func (m *fakeModelSession) Close() error {
	m.mu.Lock()
	m.closing = true
	m.mu.Unlock()

	if m.closeGate != nil {
		<-m.closeGate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *fakeModelSession) Closing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closing
}

func (m *fakeModelSession) Replies() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.replies...)
}

func (m *fakeModelSession) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

type fakeModel struct {
	session *fakeModelSession
	err     error

	mu      sync.Mutex
	configs []SessionConfig
}

func (m *fakeModel) Connect(_ context.Context, cfg SessionConfig) (ModelSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs = append(m.configs, cfg)
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func (m *fakeModel) Configs() []SessionConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SessionConfig(nil), m.configs...)
}

type recordingBus struct {
	mu     sync.Mutex
	users  []int64
	events []domain.UniversityUpdate
}

func (b *recordingBus) Publish(_ context.Context, userID int64, ev domain.UniversityUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users = append(b.users, userID)
	b.events = append(b.events, ev)
	return nil
}

func (b *recordingBus) Subscribe(context.Context, int64) (<-chan domain.UniversityUpdate, func(), error) {
	return nil, nil, errors.New("not supported")
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) Events() []domain.UniversityUpdate {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.UniversityUpdate(nil), b.events...)
}

// newToolSession builds a session already bound to userID, for calling
// handlers directly.
func newToolSession(room Room, bus *recordingBus, userID int64) *Session {
	s := NewSession(room, &fakeModel{}, NewRegistry(), nil, SessionConfig{}, slogx.Discard())
	if bus != nil {
		s.events = bus
	}
	s.userID = userID
	s.state = StateActive
	return s
}
