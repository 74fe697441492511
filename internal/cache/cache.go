package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-api/internal/config"
)

// NewClient connects to the Redis server described by cfg. An empty address
// means caching is disabled and (nil, nil) is returned.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// ViewCache stores JSON encoded values of T under a key prefix.
// Cache failures are logged and treated as misses.
//
// Every entry has a version counter next to it. Invalidate bumps the counter,
// and SetIfVersion only writes when the counter still holds the version seen
// by Get, so a reader that loaded a row before a write cannot cache it after
// the write was invalidated.
type ViewCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    logrus.FieldLogger
}

var errVersionChanged = errors.New("cache: version changed")

func NewViewCache[T any](client *redis.Client, prefix string, ttl time.Duration, log logrus.FieldLogger) *ViewCache[T] {
	return &ViewCache[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

func (c *ViewCache[T]) key(id string) string {
	return c.prefix + ":" + id
}

func (c *ViewCache[T]) versionKey(id string) string {
	return c.prefix + ":" + id + ":version"
}

// Get returns the cached value and the entry's current version. The version
// is -1 when Redis could not be read, which makes a later SetIfVersion a no-op.
func (c *ViewCache[T]) Get(ctx context.Context, id string) (*T, int64, bool) {
	values, err := c.client.MGet(ctx, c.key(id), c.versionKey(id)).Result()
	if err != nil {
		c.log.WithError(err).WithField("key", c.key(id)).Warn("ViewCache.Get")
		return nil, -1, false
	}

	var version int64
	if raw, ok := values[1].(string); ok {
		version, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.log.WithError(err).WithField("key", c.versionKey(id)).Warn("ViewCache.Version")
			return nil, -1, false
		}
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, version, false
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		c.log.WithError(err).WithField("key", c.key(id)).Warn("ViewCache.Decode")
		return nil, version, false
	}
	return &value, version, true
}

// SetIfVersion stores value unless the entry was invalidated after version was read.
func (c *ViewCache[T]) SetIfVersion(ctx context.Context, id string, value *T, version int64) {
	if version < 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.log.WithError(err).WithField("key", c.key(id)).Warn("ViewCache.Encode")
		return
	}

	versionKey := c.versionKey(id)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errVersionChanged
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(id), data, c.ttl)
			return nil
		})
		return err
	}, versionKey)

	switch {
	case err == nil:
	case errors.Is(err, errVersionChanged), errors.Is(err, redis.TxFailedErr):
		c.log.WithField("key", c.key(id)).Debug("ViewCache.Set skipped, entry invalidated")
	default:
		c.log.WithError(err).WithField("key", c.key(id)).Warn("ViewCache.Set")
	}
}

// Invalidate drops the cached value and bumps its version.
func (c *ViewCache[T]) Invalidate(ctx context.Context, id string) {
	versionKey := c.versionKey(id)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		if c.ttl > 0 {
			pipe.Expire(ctx, versionKey, 2*c.ttl)
		}
		pipe.Del(ctx, c.key(id))
		return nil
	})
	if err != nil {
		c.log.WithError(err).WithField("key", c.key(id)).Warn("ViewCache.Invalidate")
	}
}
