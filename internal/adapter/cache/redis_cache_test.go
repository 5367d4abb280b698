package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/akura-order-service/internal/domain"
)

func redisTestOrder(id string) domain.Order {
	return domain.Order{
		OrderID: id,
		Items: []domain.OrderItem{
			{ProductName: "Grammar Book", Quantity: 1, PriceAtTime: 500},
		},
		Subtotal:    500,
		TotalAmount: 500,
		Status:      domain.StatusPending,
		CreatedAt:   time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
	}
}

// An unreachable server must read as an empty cache, never an error.
func TestRedisOrderCacheUnreachableDegradesToMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	defer client.Close()
	c := NewRedisOrderCache(client, zerolog.Nop())
	c.opTimeout = 200 * time.Millisecond

	c.Set("AK-0001", redisTestOrder("AK-0001"))

	_, ok := c.Get("AK-0001")
	assert.False(t, ok)
	assert.Empty(t, c.All())
}

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	t.Cleanup(func() {
		iter := client.Scan(context.Background(), 0, keyPrefix+"*", 0).Iterator()
		for iter.Next(context.Background()) {
			client.Del(context.Background(), iter.Val())
		}
		client.Close()
	})
	return client
}

func TestRedisOrderCacheRoundTrip(t *testing.T) {
	c := NewRedisOrderCache(setupRedis(t), zerolog.Nop())

	_, ok := c.Get("AK-0001")
	assert.False(t, ok)

	c.Set("AK-0001", redisTestOrder("AK-0001"))
	got, ok := c.Get("AK-0001")
	require.True(t, ok)
	assert.Equal(t, "AK-0001", got.OrderID)
	assert.Equal(t, domain.StatusPending, got.Status)

	c.Set("AK-0002", redisTestOrder("AK-0002"))
	assert.Len(t, c.All(), 2)
}

func TestRedisOrderCacheCorruptValueIsMiss(t *testing.T) {
	client := setupRedis(t)
	c := NewRedisOrderCache(client, zerolog.Nop())

	require.NoError(t, client.Set(context.Background(), keyPrefix+"AK-0009", "{broken", 0).Err())
	_, ok := c.Get("AK-0009")
	assert.False(t, ok)
}
