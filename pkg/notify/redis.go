package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/storefront/pkg/lifecycle"
)

// Redis publishes notifications on a Redis pub/sub channel so every server
// instance's subscribers receive them.
type Redis struct {
	client  *redis.Client
	channel string
	buffer  int
	logger  *slog.Logger
}

// NewRedis creates a Redis broker. No connection is made until first use.
func NewRedis(cfg *Config, logger *slog.Logger) *Redis {
	return NewRedisClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), cfg.Channel, cfg.BufferSize, logger)
}

// NewRedisClient wraps an existing client.
func NewRedisClient(client *redis.Client, channel string, buffer int, logger *slog.Logger) *Redis {
	if buffer <= 0 {
		buffer = 16
	}
	return &Redis{
		client:  client,
		channel: channel,
		buffer:  buffer,
		logger:  logger.With("system", "notify"),
	}
}

func (r *Redis) Publish(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (r *Redis) Subscribe(ctx context.Context) (<-chan Message, error) {
	ps := r.client.Subscribe(ctx, r.channel)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	out := make(chan Message, r.buffer)
	in := ps.Channel()

	go func() {
		defer close(out)
		defer ps.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-in:
				if !ok {
					return
				}
				var msg Message
				if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
					r.logger.Warn("dropping malformed notification", "error", err)
					continue
				}
				select {
				case out <- msg:
				default:
				}
			}
		}
	}()

	return out, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Start pings Redis on startup and closes the client on shutdown.
func (r *Redis) Start(lc *lifecycle.Coordinator) error {
	r.logger.Info("starting notification broker", "channel", r.channel)

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), 5*time.Second)
		defer cancel()

		if err := r.client.Ping(ctx).Err(); err != nil {
			r.logger.Error("redis ping failed", "error", err)
			return
		}
		r.logger.Info("redis connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := r.Close(); err != nil {
			r.logger.Error("redis close failed", "error", err)
			return
		}
		r.logger.Info("redis connection closed")
	})

	return nil
}

// New returns a Redis broker when enabled and an in-process broker otherwise.
func New(cfg *Config, logger *slog.Logger) System {
	if cfg.Enabled {
		return NewRedis(cfg, logger)
	}
	return NewMemory(cfg.BufferSize)
}
