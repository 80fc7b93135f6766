package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Getter is the read side of the service catalogue.
type Getter interface {
	GetServices(ctx context.Context) ([]Service, error)
	GetService(ctx context.Context, id uuid.UUID) (Service, error)
}

const keyPrefix = "service:"

// Cache is a read-through Redis cache in front of a Getter. Redis failures
// are logged and the lookup falls back to the Getter.
type Cache struct {
	next   Getter
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCache(next Getter, client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *Cache) GetService(ctx context.Context, id uuid.UUID) (Service, error) {
	key := keyPrefix + id.String()

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var s Service
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, nil
		}
		c.logger.Warn("discarding corrupt cached service", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("service cache read failed", zap.String("key", key), zap.Error(err))
	}

	s, err := c.next.GetService(ctx, id)
	if err != nil {
		return Service{}, err
	}

	b, err := json.Marshal(s)
	if err != nil {
		return Service{}, fmt.Errorf("marshal: %w", err)
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("service cache write failed", zap.String("key", key), zap.Error(err))
	}
	return s, nil
}

// GetServices is not cached; the menu listing is only used by the admin console.
func (c *Cache) GetServices(ctx context.Context) ([]Service, error) {
	return c.next.GetServices(ctx)
}

// Invalidate drops the cached copy of one service.
func (c *Cache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		return fmt.Errorf("del: %w", err)
	}
	return nil
}
