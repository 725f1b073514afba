package agent

import (
	"context"
	"log/slog"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/events"
)

// Dispatcher starts one Session per counsellor room.
type Dispatcher struct {
	ctx     context.Context
	model   Model
	tools   *Registry
	events  events.Bus
	config  SessionConfig
	logger  *slog.Logger
	tracker *Tracker
}

// NewDispatcher binds sessions to ctx: cancelling it ends all of them.
func NewDispatcher(
	ctx context.Context,
	model Model,
	tools *Registry,
	bus events.Bus,
	cfg SessionConfig,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		ctx:     ctx,
		model:   model,
		tools:   tools,
		events:  bus,
		config:  cfg,
		logger:  logger,
		tracker: NewTracker(),
	}
}

// Dispatch starts a session for room in the background. It returns false
// for rooms that are not counsellor rooms or already have a session on an
// open room; the room is left untouched in that case. A rejoin that arrives
// while the previous session of the same name is still winding down gets a
// fresh session.
func (d *Dispatcher) Dispatch(room Room) bool {
	if !domain.IsCounsellorRoom(room.Name()) {
		d.logger.Debug("ignoring foreign room", slog.String("room", room.Name()))
		return false
	}

	ctx, cancel := context.WithCancel(d.ctx)
	unregister, ok := d.tracker.Register(room.Name(), Handle{Cancel: cancel, Done: room.Done()})
	if !ok {
		cancel()
		d.logger.Debug("room already has a session", slog.String("room", room.Name()))
		return false
	}

	sess := NewSession(room, d.model, d.tools, d.events, d.config, d.logger)
	d.logger.Info("connecting to room",
		slog.String("room", room.Name()),
		slog.String("session_id", sess.ID.String()),
	)

	go func() {
		defer unregister()
		defer cancel()
		defer func() {
			if err := room.Close(); err != nil {
				d.logger.Debug("room close", slog.String("room", room.Name()), slog.Any("error", err))
			}
		}()

		if err := sess.Run(ctx); err != nil {
			d.logger.Error("voice session failed",
				slog.String("room", room.Name()),
				slog.String("session_id", sess.ID.String()),
				slog.Any("error", err),
			)
			return
		}
		d.logger.Info("voice session ended",
			slog.String("room", room.Name()),
			slog.String("session_id", sess.ID.String()),
		)
	}()
	return true
}

// Active reports whether room has a running session.
func (d *Dispatcher) Active(room string) bool { return d.tracker.Has(room) }

// Count is the number of running sessions.
func (d *Dispatcher) Count() int { return d.tracker.Count() }

// End cancels the session of room.
func (d *Dispatcher) End(room string) bool { return d.tracker.Cancel(room) }

// Shutdown cancels every session and waits for them to finish.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	n := d.tracker.CancelAll()
	d.logger.Info("cancelling voice sessions", slog.Int("count", n))
	if !d.tracker.Wait(ctx) {
		return ctx.Err()
	}
	return nil
}
