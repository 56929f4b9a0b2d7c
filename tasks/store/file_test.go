package store_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"

	"tasklist/logger"
	"tasklist/tasks"
	"tasklist/tasks/store"
)

func newFileStore(t *testing.T) (*store.FileTaskStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.txt")
	lg := logger.New("ERROR", os.Stderr)
	s := store.NewFileTaskStore(path, lg)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestFileTaskStore_CreateAssignsSequentialIDs(t *testing.T) {
	t.Parallel()
	s, _ := newFileStore(t)
	ctx := context.Background()

	for i, title := range []string{"one", "two", "three"} {
		task, err := s.Create(ctx, title, tasks.PriorityNormal)
		require.NoError(t, err)
		assert.Equal(t, i+1, task.ID)
		assert.Equal(t, title, task.Title)
		assert.Equal(t, tasks.PriorityNormal, task.Priority)
		assert.Assert(t, !task.IsDone)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, len(list))
}

func TestFileTaskStore_NextIDFollowsLastElement(t *testing.T) {
	t.Parallel()
	s, _ := newFileStore(t)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Create(ctx, title, tasks.PriorityLow)
		require.NoError(t, err)
	}

	// Deleting the last task rewinds the sequence: the next id follows the
	// last remaining element, not the historical maximum.
	deleted, err := s.Delete(ctx, 3)
	require.NoError(t, err)
	assert.Assert(t, deleted)

	task, err := s.Create(ctx, "d", tasks.PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, 3, task.ID)

	// Deleting a middle task does not affect the rule.
	deleted, err = s.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Assert(t, deleted)

	task, err = s.Create(ctx, "e", tasks.PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, 4, task.ID)
}

func TestFileTaskStore_RoundTrip(t *testing.T) {
	t.Parallel()
	s, path := newFileStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "Buy milk", tasks.PriorityHigh)
	require.NoError(t, err)
	_, err = s.Create(ctx, "молоко", tasks.PriorityLow)
	require.NoError(t, err)
	_, err = s.Complete(ctx, 1)
	require.NoError(t, err)

	before, err := s.List(ctx)
	require.NoError(t, err)

	// A second store on the same path simulates a process restart.
	reloaded := store.NewFileTaskStore(path, logger.New("ERROR", os.Stderr))
	defer reloaded.Close()

	after, err := reloaded.List(ctx)
	require.NoError(t, err)
	assert.DeepEqual(t, before, after)
}

func TestFileTaskStore_PersistedFormat(t *testing.T) {
	t.Parallel()
	s, path := newFileStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "Café & croissants", tasks.PriorityNormal)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Assert(t, strings.HasPrefix(content, "[\n  {"), "expected 2-space indented array, got %q", content)
	assert.Assert(t, strings.Contains(content, "Café & croissants"), "non-ASCII must stay literal, got %q", content)
	assert.Assert(t, !strings.Contains(content, `\u`), "no escape sequences expected, got %q", content)
}

func TestFileTaskStore_Complete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	testCases := []struct {
		name       string
		setup      func(t *testing.T, s *store.FileTaskStore)
		id         int
		expectDone bool
	}{
		{
			name: "existing task",
			setup: func(t *testing.T, s *store.FileTaskStore) {
				_, err := s.Create(ctx, "x", tasks.PriorityNormal)
				require.NoError(t, err)
			},
			id:         1,
			expectDone: true,
		},
		{
			name:       "missing task",
			setup:      func(t *testing.T, s *store.FileTaskStore) {},
			id:         999,
			expectDone: false,
		},
		{
			name: "already done task",
			setup: func(t *testing.T, s *store.FileTaskStore) {
				_, err := s.Create(ctx, "x", tasks.PriorityNormal)
				require.NoError(t, err)
				done, err := s.Complete(ctx, 1)
				require.NoError(t, err)
				require.True(t, done)
			},
			id:         1,
			expectDone: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, _ := newFileStore(t)
			tc.setup(t, s)

			done, err := s.Complete(ctx, tc.id)
			require.NoError(t, err)
			assert.Equal(t, tc.expectDone, done)

			if tc.expectDone {
				list, err := s.List(ctx)
				require.NoError(t, err)
				assert.Assert(t, list[0].IsDone)
			}
		})
	}
}

func TestFileTaskStore_CompleteMissingDoesNotTouchFile(t *testing.T) {
	t.Parallel()
	s, path := newFileStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "x", tasks.PriorityNormal)
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	done, err := s.Complete(ctx, 42)
	require.NoError(t, err)
	assert.Assert(t, !done)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.DeepEqual(t, before, after)
}

func TestFileTaskStore_Delete(t *testing.T) {
	t.Parallel()
	s, _ := newFileStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "a", tasks.PriorityNormal)
	require.NoError(t, err)
	_, err = s.Create(ctx, "b", tasks.PriorityHigh)
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Assert(t, deleted)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Title)

	deleted, err = s.Delete(ctx, 999)
	require.NoError(t, err)
	assert.Assert(t, !deleted)
}

func TestFileTaskStore_LoadTolerance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	testCases := []struct {
		name    string
		content *string // nil means no file
	}{
		{name: "missing file", content: nil},
		{name: "empty file", content: ptr("")},
		{name: "whitespace only", content: ptr("  \n\t")},
		{name: "malformed JSON", content: ptr(`[{"id": 1,`)},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "tasks.txt")
			if tc.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tc.content), 0o644))
			}

			s := store.NewFileTaskStore(path, logger.New("ERROR", os.Stderr))
			defer s.Close()

			list, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, len(list))

			// The store stays usable after a degraded load.
			task, err := s.Create(ctx, "fresh start", tasks.PriorityNormal)
			require.NoError(t, err)
			assert.Equal(t, 1, task.ID)
		})
	}
}

func ptr(s string) *string { return &s }
