package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/example/akura-order-service/internal/domain"
)

const keyPrefix = "akura:order:"

// RedisOrderCache keeps the working set in redis so several instances can
// share it. It satisfies the same port as the in-memory cache; redis
// failures degrade to cache misses rather than surfacing to handlers.
type RedisOrderCache struct {
	client    *redis.Client
	log       zerolog.Logger
	opTimeout time.Duration
}

func NewRedisOrderCache(client *redis.Client, log zerolog.Logger) *RedisOrderCache {
	return &RedisOrderCache{client: client, log: log, opTimeout: 2 * time.Second}
}

func (c *RedisOrderCache) Get(id string) (domain.Order, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Order{}, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("order_id", id).Msg("redis get failed")
		return domain.Order{}, false
	}
	var o domain.Order
	if err := json.Unmarshal(data, &o); err != nil {
		c.log.Warn().Err(err).Str("order_id", id).Msg("corrupt cached order")
		return domain.Order{}, false
	}
	return o, true
}

func (c *RedisOrderCache) Set(id string, o domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	data, err := json.Marshal(o)
	if err != nil {
		c.log.Warn().Err(err).Str("order_id", id).Msg("marshal order for cache")
		return
	}
	if err := c.client.Set(ctx, keyPrefix+id, data, 0).Err(); err != nil {
		c.log.Warn().Err(err).Str("order_id", id).Msg("redis set failed")
	}
}

func (c *RedisOrderCache) All() []domain.Order {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out []domain.Order
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := c.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}
		var o domain.Order
		if err := json.Unmarshal(data, &o); err != nil {
			continue
		}
		out = append(out, o)
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis scan failed")
	}
	return out
}

var _ domain.OrderCache = (*RedisOrderCache)(nil)
