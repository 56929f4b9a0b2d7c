package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/gofrs/flock"

	"tasklist/logger"
	"tasklist/tasks"
)

const fileMode = 0o644

// Compile-time check to ensure FileTaskStore implements TaskStore interface
var _ TaskStore = (*FileTaskStore)(nil)

// FileTaskStore persists the task list as a pretty-printed JSON array in a
// single file. The whole file is rewritten on every mutation.
//
// Persistence failures never surface through the TaskStore methods: a load
// failure degrades to an empty list and a save failure leaves the in-memory
// state ahead of the file. Both are logged so operators can see them, but
// callers still observe the documented success/not-found contract.
type FileTaskStore struct {
	mu    sync.RWMutex
	path  string
	flk   *flock.Flock
	tasks []tasks.Task
	lg    *logger.Logger
}

// NewFileTaskStore creates a store backed by the file at path and loads any
// existing task list from it.
func NewFileTaskStore(path string, lg *logger.Logger) *FileTaskStore {
	s := &FileTaskStore{
		path: path,
		flk:  flock.New(path + ".lock"),
		lg:   lg,
	}
	s.load()
	return s
}

// load reads the task file if it exists. Missing file, unreadable file and
// malformed JSON all degrade to an empty list.
func (s *FileTaskStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.lg.Warn("failed to read task file, starting empty", map[string]any{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return
	}

	var list []tasks.Task
	if err := json.Unmarshal(data, &list); err != nil {
		s.lg.Warn("task file is not valid JSON, starting empty", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return
	}

	s.tasks = list
	s.lg.Info("task file loaded", map[string]any{
		"path":  s.path,
		"count": len(list),
	})
}

// save rewrites the whole file from the in-memory list. Called with s.mu
// held. The flock guards against another process rewriting the same file.
func (s *FileTaskStore) save() {
	data, err := marshalTaskList(s.tasks)
	if err != nil {
		s.lg.Error("failed to encode task list", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if err := s.flk.Lock(); err != nil {
		s.lg.Error("failed to lock task file", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := os.WriteFile(s.path, data, fileMode); err != nil {
		s.lg.Error("failed to write task file", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
	}
}

// marshalTaskList renders the persisted representation: a JSON array with
// 2-space indentation and non-ASCII characters kept literal.
func marshalTaskList(list []tasks.Task) ([]byte, error) {
	if list == nil {
		list = []tasks.Task{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// List returns a copy of the current task list.
func (s *FileTaskStore) List(ctx context.Context) ([]tasks.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tasks.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// Create appends a new task and rewrites the file.
func (s *FileTaskStore) Create(ctx context.Context, title string, priority tasks.Priority) (tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := tasks.Task{
		ID:       nextID(s.tasks),
		Title:    title,
		Priority: priority,
		IsDone:   false,
	}
	s.tasks = append(s.tasks, task)
	s.save()

	return task, nil
}

// Complete marks the task with the given id as done. Marking an already done
// task succeeds again.
func (s *FileTaskStore) Complete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].IsDone = true
			s.save()
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the task with the given id.
func (s *FileTaskStore) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.save()
			return true, nil
		}
	}
	return false, nil
}

// Close releases the lock file if held.
func (s *FileTaskStore) Close() error {
	return s.flk.Unlock()
}
