//go:build integration

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisTestcontainer starts a throwaway redis container and returns a
// store bound to a key unique to the calling test.
func setupRedisTestcontainer(t *testing.T) (*RedisTaskStore, func()) {
	ctx := context.Background()

	uniqueKey := fmt.Sprintf("test_tasks_%s_%d", t.Name(), time.Now().UnixNano())

	redisContainer, err := redis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("6379/tcp").WithStartupTimeout(30*time.Second),
			wait.ForLog("Ready to accept connections").WithOccurrence(1).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("Failed to start Redis testcontainer: %v", err)
	}

	var redisURL string
	var connectionErr error

	for attempt := 0; attempt < 3; attempt++ {
		if connStr, err := redisContainer.ConnectionString(ctx); err == nil {
			redisURL = connStr + "/1"
			break
		}

		host, err := redisContainer.Host(ctx)
		if err != nil {
			connectionErr = fmt.Errorf("failed to get host (attempt %d): %w", attempt+1, err)
			time.Sleep(100 * time.Millisecond)
			continue
		}

		mappedPort, err := redisContainer.MappedPort(ctx, "6379/tcp")
		if err != nil {
			connectionErr = fmt.Errorf("failed to get port (attempt %d): %w", attempt+1, err)
			time.Sleep(100 * time.Millisecond)
			continue
		}

		redisURL = fmt.Sprintf("redis://%s:%s/1", host, mappedPort.Port())
		break
	}

	if redisURL == "" {
		redisContainer.Terminate(ctx)
		t.Fatalf("Failed to get Redis connection details after 3 attempts: %v", connectionErr)
	}

	t.Logf("Redis container started at: %s (key: %s)", redisURL, uniqueKey)

	var taskStore *RedisTaskStore
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		taskStore, err = NewRedisTaskStore(redisURL, uniqueKey)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			t.Logf("Failed to connect to Redis, retrying... (%d/%d): %v", i+1, maxRetries, err)
			time.Sleep(time.Duration(i+1) * 500 * time.Millisecond)
		}
	}

	if taskStore == nil {
		redisContainer.Terminate(ctx)
		t.Fatalf("Failed to create working Redis store after %d retries: %v", maxRetries, err)
	}

	cleanup := func() {
		ctx := context.Background()
		taskStore.client.Del(ctx, uniqueKey)
		taskStore.Close()
		if terminateErr := redisContainer.Terminate(ctx); terminateErr != nil {
			t.Logf("Failed to terminate container: %v", terminateErr)
		}
	}

	// Clear any existing test data
	taskStore.client.Del(ctx, uniqueKey)

	return taskStore, cleanup
}
