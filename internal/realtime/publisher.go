package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ardentinvoicing/ardent/internal/config"
	"github.com/ardentinvoicing/ardent/internal/logger"
)

// Publisher pushes realtime messages out to subscribers. Publishing is
// best-effort: a failed publish is logged and never fails the caller's
// transaction.
type Publisher interface {
	Publish(ctx context.Context, channel, eventType string, payload any)

	// Ping reports whether the backing transport is reachable; a no-op
	// publisher always succeeds
	Ping(ctx context.Context) error
}

// NewRedisClient connects to redis; returns nil when redis is not
// configured so the rest of the wiring can fall back to the no-op path.
func NewRedisClient(cfg *config.Configuration, log *logger.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		log.Warnw("redis is not configured, realtime fan-out is disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

type redisPublisher struct {
	rdb    *redis.Client
	logger *logger.Logger
}

// NewPublisher creates a publisher backed by redis pub/sub. With a nil
// redis client it degrades to a no-op publisher.
func NewPublisher(rdb *redis.Client, log *logger.Logger) Publisher {
	if rdb == nil {
		return &noopPublisher{logger: log}
	}
	return &redisPublisher{rdb: rdb, logger: log}
}

func (p *redisPublisher) Publish(ctx context.Context, channel, eventType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		p.logger.Errorw("failed to marshal realtime payload",
			"channel", channel,
			"type", eventType,
			"error", err)
		return
	}

	msg := Message{
		Channel:   channel,
		Type:      eventType,
		Payload:   raw,
		Timestamp: time.Now().UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		p.logger.Errorw("failed to marshal realtime message", "error", err)
		return
	}

	if err := p.rdb.Publish(ctx, channel, body).Err(); err != nil {
		p.logger.Errorw("failed to publish realtime message",
			"channel", channel,
			"type", eventType,
			"error", err)
	}
}

func (p *redisPublisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

type noopPublisher struct {
	logger *logger.Logger
}

func (p *noopPublisher) Publish(_ context.Context, channel, eventType string, _ any) {
	p.logger.Debugw("realtime publish skipped, redis disabled",
		"channel", channel,
		"type", eventType)
}

func (p *noopPublisher) Ping(context.Context) error {
	return nil
}
