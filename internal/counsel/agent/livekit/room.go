package livekit

import (
	"context"
	"sync"

	"github.com/globalgrad/counsellor/internal/counsel/agent"
)

// room is the agent.Room fed by webhook events.
type room struct {
	name      string
	publisher Publisher

	joined   chan agent.Participant
	joinOnce sync.Once

	done      chan struct{}
	closeOnce sync.Once
	onClose   func()

	mu       sync.Mutex
	identity string
}

func newRoom(name string, publisher Publisher, onClose func()) *room {
	return &room{
		name:      name,
		publisher: publisher,
		joined:    make(chan agent.Participant, 1),
		done:      make(chan struct{}),
		onClose:   onClose,
	}
}

func (r *room) Name() string { return r.name }

// join records the first participant; later joins are ignored.
func (r *room) join(p agent.Participant) bool {
	first := false
	r.joinOnce.Do(func() {
		r.mu.Lock()
		r.identity = p.Identity
		r.mu.Unlock()
		r.joined <- p
		first = true
	})
	return first
}

// owner is the identity the session is bound to, if any.
func (r *room) owner() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.identity
}

func (r *room) WaitForParticipant(ctx context.Context) (agent.Participant, error) {
	select {
	case p := <-r.joined:
		return p, nil
	case <-r.done:
		return agent.Participant{}, agent.ErrRoomClosed
	case <-ctx.Done():
		return agent.Participant{}, ctx.Err()
	}
}

func (r *room) PublishData(ctx context.Context, topic string, payload []byte) error {
	select {
	case <-r.done:
		return agent.ErrRoomClosed
	default:
	}
	return r.publisher.SendData(ctx, r.name, topic, payload)
}

func (r *room) Done() <-chan struct{} { return r.done }

func (r *room) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		if r.onClose != nil {
			r.onClose()
		}
	})
	return nil
}
