// The redisutils package simplifies and automates recurring operations like
// connecting to, formatting for, and parsing from Redis.
package redisutils

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// DefaultAddr is the address of the Redis server used when none is configured.
const DefaultAddr = "localhost:6379"

// NewClient() initializes a new Redis client for the server at addr, and
// checks that the server is reachable.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		addr = DefaultAddr
	}

	cl := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := cl.Ping(ctx).Err(); err != nil {
		cl.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return cl, nil
}

// SetupTestClient() starts an in-memory Redis server that lives as long as the
// test, and returns a client connected to it.
func SetupTestClient(t testing.TB) *redis.Client {
	t.Helper()

	server := miniredis.RunT(t)
	cl := redis.NewClient(&redis.Options{
		Addr: server.Addr(),
	})

	t.Cleanup(func() { cl.Close() })
	return cl
}

// CleanupRedis() cleans up the Redis database between tests to ensure isolation.
func CleanupRedis(cl *redis.Client) {
	cl.FlushAll(context.Background())
}
