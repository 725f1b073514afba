package counselsdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// Stream is an open /events subscription.
type Stream struct {
	conn *websocket.Conn
}

// Subscribe opens the websocket stream of the user's selection changes.
func (c *Client) Subscribe(ctx context.Context) (*Stream, error) {
	u := c.url("/events")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}

	dialer := websocket.Dialer{
		Jar:              c.HTTPClient.Jar,
		HandshakeTimeout: c.HTTPClient.Timeout,
	}
	conn, resp, err := dialer.DialContext(ctx, u, nil)
	if err != nil {
		if resp != nil && resp.StatusCode != http.StatusSwitchingProtocols {
			return nil, decodeJSON(resp, nil, http.StatusSwitchingProtocols)
		}
		return nil, fmt.Errorf("failed to open event stream: %w", err)
	}
	return &Stream{conn: conn}, nil
}

// Next blocks for the next event.
func (s *Stream) Next() (UniversityUpdate, error) {
	var ev UniversityUpdate
	if err := s.conn.ReadJSON(&ev); err != nil {
		return UniversityUpdate{}, err
	}
	return ev, nil
}

func (s *Stream) Close() error { return s.conn.Close() }
