package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taskhub/taskhub-api/internal/platform/pokeapi"
)

// KeyPrefix namespaces every key written by the cache.
const KeyPrefix = "pokemon:"

// CreatureSource is the upstream the cache reads through to.
type CreatureSource interface {
	List(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error)
	Details(ctx context.Context, idOrName string) (*pokeapi.Details, error)
	NamesStartingWith(ctx context.Context, initial string) ([]pokeapi.Entry, error)
}

// CreatureCache is a read-through Redis cache in front of the PokeAPI client.
// Only successful responses are stored. Redis failures are logged and the
// request falls through to the upstream.
type CreatureCache struct {
	rdb    redis.Cmdable
	source CreatureSource
	ttl    time.Duration
	logger *slog.Logger
}

// Open connects to the Redis server at url and verifies it with a ping.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// NewCreatureCache wraps source. A ttl of zero stores entries without expiry.
func NewCreatureCache(rdb redis.Cmdable, source CreatureSource, ttl time.Duration, logger *slog.Logger) *CreatureCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreatureCache{
		rdb:    rdb,
		source: source,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "creature_cache")),
	}
}

// List returns one page of the species index.
func (c *CreatureCache) List(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error) {
	key := fmt.Sprintf("%slist:%d:%d", KeyPrefix, limit, offset)
	return readThrough(ctx, c, key, func() (*pokeapi.ListResponse, error) {
		return c.source.List(ctx, limit, offset)
	})
}

// Details returns one creature by numeric ID or name.
func (c *CreatureCache) Details(ctx context.Context, idOrName string) (*pokeapi.Details, error) {
	key := KeyPrefix + "details:" + strings.ToLower(strings.TrimSpace(idOrName))
	return readThrough(ctx, c, key, func() (*pokeapi.Details, error) {
		return c.source.Details(ctx, idOrName)
	})
}

// NamesStartingWith returns the species whose name begins with initial.
func (c *CreatureCache) NamesStartingWith(ctx context.Context, initial string) ([]pokeapi.Entry, error) {
	key := KeyPrefix + "initial:" + strings.ToLower(strings.TrimSpace(initial))
	entries, err := readThrough(ctx, c, key, func() (*[]pokeapi.Entry, error) {
		e, err := c.source.NamesStartingWith(ctx, initial)
		if err != nil {
			return nil, err
		}
		return &e, nil
	})
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func readThrough[T any](ctx context.Context, c *CreatureCache, key string, load func() (*T, error)) (*T, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			c.logger.DebugContext(ctx, "cache hit", slog.String("key", key))
			return &cached, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	value, err := load()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return value, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return value, nil
}
