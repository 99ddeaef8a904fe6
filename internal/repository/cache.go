package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/carlos-rodrigo/margen-agro/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// jsonCache stores JSON-encoded values in Redis under prefix+key with a fixed TTL.
type jsonCache[T any] struct {
	rdb    *redis.Client
	name   string
	prefix string
	ttl    time.Duration
}

// get reports ok=false on a miss. A value that no longer decodes counts as a
// miss so a schema change never wedges the cache.
func (c *jsonCache[T]) get(ctx context.Context, key string) (T, bool, error) {
	var v T
	b, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookups.WithLabelValues(c.name, "miss").Inc()
		return v, false, nil
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues(c.name, "error").Inc()
		return v, false, fmt.Errorf("%s cache get: %w", c.name, err)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		metrics.CacheLookups.WithLabelValues(c.name, "miss").Inc()
		return v, false, nil
	}
	metrics.CacheLookups.WithLabelValues(c.name, "hit").Inc()
	return v, true, nil
}

func (c *jsonCache[T]) set(ctx context.Context, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s cache marshal: %w", c.name, err)
	}
	if err := c.rdb.Set(ctx, c.prefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s cache set: %w", c.name, err)
	}
	return nil
}
