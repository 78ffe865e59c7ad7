package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/estatehub/internal/domain"
)

const featuredKey = "estatehub:properties:featured"

// FeaturedCache implements repository.FeaturedCache using Redis.
type FeaturedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeaturedCache creates a Redis-backed cache for featured listings.
func NewFeaturedCache(client *redis.Client, ttl time.Duration) *FeaturedCache {
	return &FeaturedCache{client: client, ttl: ttl}
}

// Get returns the cached featured listings. ok is false on a miss.
func (c *FeaturedCache) Get(ctx context.Context) ([]domain.Property, bool, error) {
	data, err := c.client.Get(ctx, featuredKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get featured: %w", err)
	}

	var props []domain.Property
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, false, fmt.Errorf("unmarshal featured: %w", err)
	}
	return props, true, nil
}

// Set stores props with the configured TTL.
func (c *FeaturedCache) Set(ctx context.Context, props []domain.Property) error {
	if props == nil {
		props = []domain.Property{}
	}
	data, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("marshal featured: %w", err)
	}

	if err := c.client.Set(ctx, featuredKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set featured: %w", err)
	}
	return nil
}

// Invalidate drops the cached listings.
func (c *FeaturedCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, featuredKey).Err(); err != nil {
		return fmt.Errorf("redis del featured: %w", err)
	}
	return nil
}
