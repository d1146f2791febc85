// Package cache implements the read-through and invalidate-on-write wrappers
// the resource services compose around their repositories.
//
// The wrappers are plain higher-order functions over a narrow Store interface:
// services call GetOrFill around a fetch closure and Invalidate after a
// committed write. The cache is an optimization, never a source of truth —
// every Store failure is logged, counted, and degraded to the fetch path, so
// a dead cache slows reads down but never fails them.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/specialists-api/internal/api/metrics"
)

// ErrMiss is the sentinel a Store returns from Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Store is the key-value surface the wrappers need. The Redis adapter in
// internal/infrastructure/db/redis implements it; tests use an in-memory map.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

const keyNamespace = "cache"

// Key identifies one cached read: the resource class, the originating
// operation, and the operation's argument values.
type Key struct {
	Resource string
	Op       string
	Args     []any
}

// NewKey builds a Key for op over resource with the given arguments.
func NewKey(resource, op string, args ...any) Key {
	return Key{Resource: resource, Op: op, Args: args}
}

// String renders the deterministic cache key. Arguments are serialized
// exactly (JSON, prefixed with their Go type), so two calls with equal
// operation and arguments always collide and calls differing in any argument
// value or type never do.
func (k Key) String() string {
	parts := make([]string, 0, len(k.Args)+3)
	parts = append(parts, keyNamespace, k.Resource, k.Op)
	for _, a := range k.Args {
		b, err := json.Marshal(a)
		if err != nil {
			// Non-serializable arguments should not reach here; fall back to
			// the verbose formatter rather than producing an ambiguous key.
			parts = append(parts, fmt.Sprintf("%T=%+v", a, a))
			continue
		}
		parts = append(parts, fmt.Sprintf("%T=%s", a, b))
	}
	return strings.Join(parts, ":")
}

// ResourcePrefix returns the key prefix shared by every cached read of a
// resource class. Invalidation deletes this whole prefix: one write wipes all
// cached reads for the type, not just the affected record.
func ResourcePrefix(resource string) string {
	return keyNamespace + ":" + resource + ":"
}

// GetOrFill is the read-through wrapper. On a hit the stored value is
// deserialized and returned without invoking fetch. On a miss, fetch runs and
// its result is stored under key with the given TTL. A failing fetch
// propagates unchanged and never populates the cache.
func GetOrFill[T any](ctx context.Context, store Store, log zerolog.Logger, key Key, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	ks := key.String()

	raw, err := store.Get(ctx, ks)
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			metrics.CacheHitsTotal.WithLabelValues(key.Resource, key.Op).Inc()
			return cached, nil
		}
		// Corrupt entry: treat as a miss and let the fresh value overwrite it.
		log.Warn().Str("key", ks).Msg("corrupt cache entry, refetching")
	case errors.Is(err, ErrMiss):
		// fall through to fetch
	default:
		metrics.CacheErrorsTotal.WithLabelValues("get").Inc()
		log.Warn().Err(err).Str("key", ks).Msg("cache get failed, serving from source")
	}
	metrics.CacheMissesTotal.WithLabelValues(key.Resource, key.Op).Inc()

	fresh, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if raw, err := json.Marshal(fresh); err == nil {
		if err := store.Set(ctx, ks, raw, ttl); err != nil {
			metrics.CacheErrorsTotal.WithLabelValues("set").Inc()
			log.Warn().Err(err).Str("key", ks).Msg("cache set failed")
		}
	}
	return fresh, nil
}

// Invalidate deletes every cached read for resource. Callers invoke it only
// after their mutation committed; its own failures are logged and swallowed,
// leaving stale entries to expire via TTL.
func Invalidate(ctx context.Context, store Store, log zerolog.Logger, resource string) {
	if err := store.DeletePrefix(ctx, ResourcePrefix(resource)); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("invalidate").Inc()
		log.Warn().Err(err).Str("resource", resource).Msg("cache invalidation failed")
		return
	}
	metrics.CacheInvalidationsTotal.WithLabelValues(resource).Inc()
}
