//go:build integration

package store

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"

	"tasklist/tasks"
)

func TestRedisTaskStore_NewRedisTaskStore(t *testing.T) {
	s, cleanup := setupRedisTestcontainer(t)
	defer cleanup()

	assert.Assert(t, s != nil)
	assert.Assert(t, len(s.key) > 0)
	assert.Assert(t, s.client != nil)
}

func TestRedisTaskStore_CreateAndList(t *testing.T) {
	s, cleanup := setupRedisTestcontainer(t)
	defer cleanup()

	ctx := context.Background()

	task, err := s.Create(ctx, "Buy milk", tasks.PriorityHigh)
	assert.NilError(t, err)
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, tasks.PriorityHigh, task.Priority)
	assert.Assert(t, !task.IsDone)

	task, err = s.Create(ctx, "Walk the dog", tasks.PriorityNormal)
	assert.NilError(t, err)
	assert.Equal(t, 2, task.ID)

	list, err := s.List(ctx)
	assert.NilError(t, err)
	assert.Equal(t, 2, len(list))
	assert.Equal(t, "Buy milk", list[0].Title)
	assert.Equal(t, "Walk the dog", list[1].Title)
}

func TestRedisTaskStore_CompleteAndDelete(t *testing.T) {
	s, cleanup := setupRedisTestcontainer(t)
	defer cleanup()

	ctx := context.Background()

	_, err := s.Create(ctx, "a", tasks.PriorityLow)
	assert.NilError(t, err)

	done, err := s.Complete(ctx, 1)
	assert.NilError(t, err)
	assert.Assert(t, done)

	// Completing again is idempotent
	done, err = s.Complete(ctx, 1)
	assert.NilError(t, err)
	assert.Assert(t, done)

	done, err = s.Complete(ctx, 999)
	assert.NilError(t, err)
	assert.Assert(t, !done)

	deleted, err := s.Delete(ctx, 1)
	assert.NilError(t, err)
	assert.Assert(t, deleted)

	deleted, err = s.Delete(ctx, 1)
	assert.NilError(t, err)
	assert.Assert(t, !deleted)

	list, err := s.List(ctx)
	assert.NilError(t, err)
	assert.Equal(t, 0, len(list))
}

func TestRedisTaskStore_LastElementIDRule(t *testing.T) {
	s, cleanup := setupRedisTestcontainer(t)
	defer cleanup()

	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Create(ctx, title, tasks.PriorityNormal)
		assert.NilError(t, err)
	}

	deleted, err := s.Delete(ctx, 3)
	assert.NilError(t, err)
	assert.Assert(t, deleted)

	task, err := s.Create(ctx, "d", tasks.PriorityNormal)
	assert.NilError(t, err)
	assert.Equal(t, 3, task.ID)
}

func TestRedisTaskStore_SharedKeyAcrossInstances(t *testing.T) {
	s, cleanup := setupRedisTestcontainer(t)
	defer cleanup()

	ctx := context.Background()

	_, err := s.Create(ctx, "shared", tasks.PriorityNormal)
	assert.NilError(t, err)

	// A second store on the same key sees the same list, the moral
	// equivalent of the file backend's restart round-trip.
	other, err := NewRedisTaskStore("redis://"+s.client.Options().Addr+"/1", s.key)
	assert.NilError(t, err)
	defer other.Close()

	list, err := other.List(ctx)
	assert.NilError(t, err)
	assert.Equal(t, 1, len(list))
	assert.Equal(t, "shared", list[0].Title)
}

func TestRedisTaskStore_ConnectionErrors(t *testing.T) {
	// Test invalid Redis URL
	_, err := NewRedisTaskStore("invalid://url", "test")
	assert.ErrorContains(t, err, "invalid Redis URL")

	// Test unreachable Redis
	_, err = NewRedisTaskStore("redis://localhost:1/0", "test")
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
