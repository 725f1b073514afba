package livekit

import (
	"log/slog"
	"sync"

	"github.com/globalgrad/counsellor/internal/counsel/agent"
	"github.com/globalgrad/counsellor/internal/counsel/domain"
)

// Webhook event names handled by the hub.
const (
	EventRoomStarted       = "room_started"
	EventRoomFinished      = "room_finished"
	EventParticipantJoined = "participant_joined"
	EventParticipantLeft   = "participant_left"
)

// Event is the JSON body of a LiveKit webhook.
type Event struct {
	ID          string           `json:"id"`
	Event       string           `json:"event"`
	Room        *RoomInfo        `json:"room,omitempty"`
	Participant *ParticipantInfo `json:"participant,omitempty"`
}

type RoomInfo struct {
	SID  string `json:"sid"`
	Name string `json:"name"`
}

type ParticipantInfo struct {
	SID      string `json:"sid"`
	Identity string `json:"identity"`
	Name     string `json:"name"`
	Kind     string `json:"kind,omitempty"`
}

// Dispatcher starts sessions for rooms.
type Dispatcher interface {
	Dispatch(room agent.Room) bool
}

// Hub tracks open counsellor rooms and turns webhook events into
// agent.Room state changes.
type Hub struct {
	publisher  Publisher
	dispatcher Dispatcher
	logger     *slog.Logger

	mu    sync.Mutex
	rooms map[string]*room
}

func NewHub(publisher Publisher, dispatcher Dispatcher, logger *slog.Logger) *Hub {
	return &Hub{
		publisher:  publisher,
		dispatcher: dispatcher,
		logger:     logger,
		rooms:      make(map[string]*room),
	}
}

// Handle applies one webhook event. Events for foreign rooms are ignored.
func (h *Hub) Handle(ev Event) {
	if ev.Room == nil || !domain.IsCounsellorRoom(ev.Room.Name) {
		return
	}
	name := ev.Room.Name
	log := h.logger.With(slog.String("room", name), slog.String("event", ev.Event))

	switch ev.Event {
	case EventRoomStarted:
		h.ensure(name)

	case EventParticipantJoined:
		p := ev.Participant
		if p == nil || p.Kind == "AGENT" {
			return
		}
		log.Info("participant connected", slog.String("identity", p.Identity))
		r := h.ensure(name)
		if r == nil {
			return
		}
		if !r.join(agent.Participant{Identity: p.Identity, Name: p.Name}) {
			log.Debug("room already has a participant", slog.String("identity", p.Identity))
		}

	case EventParticipantLeft:
		p := ev.Participant
		if p == nil {
			return
		}
		log.Info("participant disconnected", slog.String("identity", p.Identity))
		if r := h.get(name); r != nil && r.owner() == p.Identity {
			_ = r.Close()
		}

	case EventRoomFinished:
		log.Info("room finished")
		if r := h.get(name); r != nil {
			_ = r.Close()
		}
	}
}

// Open is the number of rooms with a live session.
func (h *Hub) Open() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

func (h *Hub) get(name string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[name]
}

// ensure returns the open room for name, dispatching a session when it is
// new. It returns nil when the dispatcher refused the room.
func (h *Hub) ensure(name string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[name]; ok {
		return r
	}

	var r *room
	r = newRoom(name, h.publisher, func() { h.remove(name, r) })
	if !h.dispatcher.Dispatch(r) {
		h.logger.Warn("dispatcher refused room", slog.String("room", name))
		return nil
	}
	h.rooms[name] = r
	return r
}

func (h *Hub) remove(name string, r *room) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[name] == r {
		delete(h.rooms, name)
	}
}

// CloseAll ends every open room.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	rooms := make([]*room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.Unlock()

	for _, r := range rooms {
		_ = r.Close()
	}
}
