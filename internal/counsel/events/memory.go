package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
)

// MemoryBus is an in-process Bus. Publishing never blocks: a subscriber
// whose buffer is full misses the event.
type MemoryBus struct {
	logger *slog.Logger

	mu     sync.Mutex
	subs   map[int64]map[*memorySub]struct{}
	closed bool
}

type memorySub struct {
	ch   chan domain.UniversityUpdate
	done chan struct{}
	once sync.Once
}

// stop must only be called once the sub is unreachable from Publish.
func (s *memorySub) stop() {
	s.once.Do(func() {
		close(s.ch)
		close(s.done)
	})
}

func NewMemoryBus(logger *slog.Logger) *MemoryBus {
	return &MemoryBus{
		logger: logger,
		subs:   make(map[int64]map[*memorySub]struct{}),
	}
}

func (b *MemoryBus) Publish(_ context.Context, userID int64, ev domain.UniversityUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	for sub := range b.subs[userID] {
		select {
		case sub.ch <- ev:
		default:
			b.logger.Warn("events: subscriber buffer full, dropping event",
				slog.Int64("user_id", userID),
				slog.String("action", ev.Action),
			)
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, userID int64) (<-chan domain.UniversityUpdate, func(), error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, nil, ErrClosed
	}
	sub := &memorySub{
		ch:   make(chan domain.UniversityUpdate, subscriberBuffer),
		done: make(chan struct{}),
	}
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[*memorySub]struct{})
	}
	b.subs[userID][sub] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[userID]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(b.subs, userID)
			}
		}
		b.mu.Unlock()
		sub.stop()
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-sub.done:
		}
	}()

	return sub.ch, cancel, nil
}

// Close closes every subscription.
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	var all []*memorySub
	for _, set := range b.subs {
		for sub := range set {
			all = append(all, sub)
		}
	}
	b.subs = make(map[int64]map[*memorySub]struct{})
	b.mu.Unlock()

	for _, sub := range all {
		sub.stop()
	}
	return nil
}
