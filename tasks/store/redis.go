package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"tasklist/tasks"
)

// Compile-time check to ensure RedisTaskStore implements TaskStore interface
var _ TaskStore = (*RedisTaskStore)(nil)

// RedisTaskStore keeps the task list as a single JSON array under one key.
// Unlike the file backend, redis failures are surfaced to the caller; the
// API layer maps them to an internal error response.
type RedisTaskStore struct {
	mu     sync.Mutex
	client *redis.Client
	key    string
}

// NewRedisTaskStore connects to redis and verifies the connection.
func NewRedisTaskStore(url, key string) (*RedisTaskStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTaskStore{
		client: client,
		key:    key,
	}, nil
}

// load fetches and decodes the task list. A missing key is an empty list.
func (s *RedisTaskStore) load(ctx context.Context) ([]tasks.Task, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read task list: %w", err)
	}

	var list []tasks.Task
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode task list: %w", err)
	}
	return list, nil
}

// save stores the encoded list. The same representation as the file backend
// is used so the two stay interchangeable.
func (s *RedisTaskStore) save(ctx context.Context, list []tasks.Task) error {
	data, err := marshalTaskList(list)
	if err != nil {
		return fmt.Errorf("failed to encode task list: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write task list: %w", err)
	}
	return nil
}

func (s *RedisTaskStore) List(ctx context.Context) ([]tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *RedisTaskStore) Create(ctx context.Context, title string, priority tasks.Priority) (tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return tasks.Task{}, err
	}

	task := tasks.Task{
		ID:       nextID(list),
		Title:    title,
		Priority: priority,
		IsDone:   false,
	}
	list = append(list, task)

	if err := s.save(ctx, list); err != nil {
		return tasks.Task{}, err
	}
	return task, nil
}

func (s *RedisTaskStore) Complete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range list {
		if list[i].ID == id {
			list[i].IsDone = true
			return true, s.save(ctx, list)
		}
	}
	return false, nil
}

func (s *RedisTaskStore) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return true, s.save(ctx, list)
		}
	}
	return false, nil
}

// Close cleanly shuts down the redis connection.
func (s *RedisTaskStore) Close() error {
	return s.client.Close()
}
