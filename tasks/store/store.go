package store

import (
	"context"

	"tasklist/tasks"
)

// TaskStore defines the contract for task list persistence.
//
// Create assigns the next id (1 for an empty list, otherwise the last
// element's id + 1) and persists the new task. Complete and Delete report
// whether a task with the given id existed; when it did not, nothing is
// persisted.
type TaskStore interface {
	List(ctx context.Context) ([]tasks.Task, error)
	Create(ctx context.Context, title string, priority tasks.Priority) (tasks.Task, error)
	Complete(ctx context.Context, id int) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)

	// Close releases any backend resources (connections, lock files).
	Close() error
}

// nextID implements the historical id rule: the successor of the last
// element's id, not of the maximum id. Deleting the highest-id task and
// creating a new one can therefore reissue an id; kept for compatibility
// with existing task files.
func nextID(list []tasks.Task) int {
	if len(list) == 0 {
		return 1
	}
	return list[len(list)-1].ID + 1
}
