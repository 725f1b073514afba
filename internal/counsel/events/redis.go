package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
)

// ChannelPrefix namespaces the per-user pub/sub channels.
const ChannelPrefix = "counsel:events:"

// Channel returns the Redis channel for userID.
func Channel(userID int64) string {
	return ChannelPrefix + strconv.FormatInt(userID, 10)
}

// RedisBus shares events between the API and agent processes through Redis
// pub/sub. Delivery is at-most-once.
type RedisBus struct {
	client *redis.Client
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewRedisBus connects using a redis:// or rediss:// URL and verifies the
// connection with PING.
func NewRedisBus(ctx context.Context, url string, logger *slog.Logger) (*RedisBus, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("events: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("events: ping redis: %w", err)
	}
	return &RedisBus{client: client, logger: logger}, nil
}

func (b *RedisBus) Publish(ctx context.Context, userID int64, ev domain.UniversityUpdate) error {
	if b.isClosed() {
		return ErrClosed
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, Channel(userID), payload).Err(); err != nil {
		return fmt.Errorf("events: publish: %w", err)
	}
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context, userID int64) (<-chan domain.UniversityUpdate, func(), error) {
	if b.isClosed() {
		return nil, nil, ErrClosed
	}

	ps := b.client.Subscribe(ctx, Channel(userID))
	// Wait for the subscription confirmation so no publish is missed after
	// Subscribe returns.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("events: subscribe: %w", err)
	}

	out := make(chan domain.UniversityUpdate, subscriberBuffer)
	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(stop)
			_ = ps.Close()
		})
	}

	go func() {
		defer close(out)
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case <-stop:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev domain.UniversityUpdate
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.logger.Warn("events: dropping malformed message",
						slog.String("channel", msg.Channel),
						slog.Any("error", err),
					)
					continue
				}
				select {
				case out <- ev:
				default:
					b.logger.Warn("events: subscriber buffer full, dropping event",
						slog.Int64("user_id", userID),
					)
				}
			}
		}
	}()

	return out, cancel, nil
}

// Ping is used by readiness checks.
func (b *RedisBus) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.client.Close()
}

func (b *RedisBus) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
