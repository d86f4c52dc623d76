package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultCacheKey is where the serialized catalog lives in Redis.
const DefaultCacheKey = "pitchviz:catalog"

// CachedSource is a read-through Redis cache in front of another source.
// With a nil client it simply delegates.
type CachedSource struct {
	inner Source
	rdb   *redis.Client
	key   string
	ttl   time.Duration
}

func NewCachedSource(inner Source, rdb *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{inner: inner, rdb: rdb, key: DefaultCacheKey, ttl: ttl}
}

func (s *CachedSource) Load(ctx context.Context) (*Catalog, error) {
	if s.rdb == nil {
		return s.inner.Load(ctx)
	}

	data, err := s.rdb.Get(ctx, s.key).Bytes()
	switch {
	case err == nil:
		c, perr := Parse(data)
		if perr == nil {
			log.Debug().Str("component", "catalog").Str("key", s.key).Int("pitches", c.Len()).Msg("catalog served from cache")
			return c, nil
		}
		log.Warn().Str("component", "catalog").Err(perr).Msg("cached catalog unreadable, reloading")
	case errors.Is(err, redis.Nil):
	default:
		log.Warn().Str("component", "catalog").Err(err).Msg("catalog cache read failed")
	}

	c, err := s.inner.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store(ctx, c); err != nil {
		log.Warn().Str("component", "catalog").Err(err).Msg("catalog cache write failed")
	}
	return c, nil
}

// Invalidate drops the cached copy so the next Load hits the inner source.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, s.key).Err()
}

func (s *CachedSource) Name() string {
	return "cached(" + s.inner.Name() + ")"
}

func (s *CachedSource) store(ctx context.Context, c *Catalog) error {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if s.ttl <= 0 {
		return s.rdb.Set(ctx, s.key, data, 0).Err()
	}
	return s.rdb.SetEx(ctx, s.key, data, s.ttl).Err()
}
