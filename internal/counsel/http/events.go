package http

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/globalgrad/counsellor/internal/counsel/events"
	"github.com/globalgrad/counsellor/pkg/counselsdk"
	"github.com/globalgrad/counsellor/pkg/httpx"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

const (
	eventsWriteWait  = 10 * time.Second
	eventsPongWait   = 60 * time.Second
	eventsPingPeriod = eventsPongWait * 9 / 10
)

// EventsHandler streams the caller's selection changes over a websocket.
type EventsHandler struct {
	Bus events.Bus

	// AllowedOrigins lists browser origins permitted to connect. Requests
	// without an Origin header are not browsers and are always allowed.
	AllowedOrigins []string
}

// ServeHTTP upgrades the request and forwards university_update events.
//
//	@Summary		Selection events
//	@Description	Websocket stream of {"type":"university_update","action","id"} messages for the signed-in user.
//	@Tags			Events
//	@Security		CookieAuth
//	@Success		101
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/api/v1/events [get].
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	user, _ := currentUser(ctx)

	if h.Bus == nil {
		httpx.WriteError(w, http.StatusServiceUnavailable, counselsdk.CodeUnavailable, "event stream unavailable")
		return
	}
	if !h.originAllowed(r) {
		httpx.WriteError(w, http.StatusForbidden, "forbidden_origin", "origin is not allowed")
		return
	}

	updates, cancel, err := h.Bus.Subscribe(ctx, user.ID)
	if err != nil {
		log.Error("event subscribe failed", "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, counselsdk.CodeUnavailable, "event stream unavailable")
		return
	}
	defer cancel()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Reader: handles pongs and notices the client going away.
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(eventsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(eventsPongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Debug("event stream opened")
	ping := time.NewTicker(eventsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			log.Debug("event stream closed by client")
			return
		case ev, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(eventsWriteWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(eventsWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				log.Debug("event write failed", "err", err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventsWriteWait)); err != nil {
				return
			}
		}
	}
}

func (h *EventsHandler) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(h.AllowedOrigins, "*") || slices.Contains(h.AllowedOrigins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}
