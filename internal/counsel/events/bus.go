// Package events fans university selection changes out to dashboard
// subscribers. The voice agent and the HTTP API publish; websocket clients
// subscribe per user.
package events

import (
	"context"
	"errors"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
)

// ErrClosed is returned once the bus has been closed.
var ErrClosed = errors.New("events: bus closed")

// Bus delivers UniversityUpdate events to the subscribers of a single user.
type Bus interface {
	Publish(ctx context.Context, userID int64, ev domain.UniversityUpdate) error

	// Subscribe returns a channel of events for userID and a cancel func.
	// The channel is closed after cancel is called or ctx is done.
	Subscribe(ctx context.Context, userID int64) (<-chan domain.UniversityUpdate, func(), error)

	Close() error
}

// subscriberBuffer bounds how far a slow websocket may fall behind before
// events are dropped for it.
const subscriberBuffer = 16
