package agent

import (
	"context"
	"sync"
)

// Handle controls a running session from outside. Done, when set, closes
// once the session's room has ended; the room name is free again from then
// on even if the session is still tearing down.
type Handle struct {
	Cancel func()
	Done   <-chan struct{}
}

func (h Handle) ended() bool {
	if h.Done == nil {
		return false
	}
	select {
	case <-h.Done:
		return true
	default:
		return false
	}
}

// Tracker keeps one running session per room and lets shutdown cancel and
// drain them.
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]*trackedSession
	draining map[*trackedSession]struct{}
	wg       sync.WaitGroup
}

type trackedSession struct {
	handle Handle
	once   sync.Once
}

func NewTracker() *Tracker {
	return &Tracker{
		sessions: make(map[string]*trackedSession),
		draining: make(map[*trackedSession]struct{}),
	}
}

// Register records a session for room. It returns ok=false without
// registering when the room already has a session whose room is still open.
// A session whose room has ended is displaced; Wait still waits for it.
func (t *Tracker) Register(room string, h Handle) (unregister func(), ok bool) {
	entry := &trackedSession{handle: h}

	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, exists := t.sessions[room]; exists {
		if !prev.handle.ended() {
			return func() {}, false
		}
		t.draining[prev] = struct{}{}
	}
	t.sessions[room] = entry
	t.wg.Add(1)

	return func() { t.unregister(room, entry) }, true
}

func (t *Tracker) unregister(room string, entry *trackedSession) {
	entry.once.Do(func() {
		t.mu.Lock()
		if t.sessions[room] == entry {
			delete(t.sessions, room)
		}
		delete(t.draining, entry)
		t.mu.Unlock()
		t.wg.Done()
	})
}

func (t *Tracker) Has(room string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.sessions[room]
	return ok
}

func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Cancel stops the session of one room, if any.
func (t *Tracker) Cancel(room string) bool {
	t.mu.Lock()
	entry, ok := t.sessions[room]
	t.mu.Unlock()
	if !ok || entry.handle.Cancel == nil {
		return false
	}
	entry.handle.Cancel()
	return true
}

func (t *Tracker) CancelAll() (canceled int) {
	var cancels []func()
	t.mu.Lock()
	for _, entry := range t.sessions {
		if entry.handle.Cancel != nil {
			cancels = append(cancels, entry.handle.Cancel)
		}
	}
	for entry := range t.draining {
		if entry.handle.Cancel != nil {
			cancels = append(cancels, entry.handle.Cancel)
		}
	}
	t.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
		canceled++
	}
	return canceled
}

// Wait blocks until every registered session unregistered or ctx is done.
func (t *Tracker) Wait(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		t.wg.Wait()
	}()

	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}
