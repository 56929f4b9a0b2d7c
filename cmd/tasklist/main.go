package main

import (
	"log"

	"tasklist/api/server"
	"tasklist/config"
	"tasklist/logger"
	"tasklist/tasks/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Create logger
	lg := logger.New(cfg.LogLevel, nil)

	lg.Info("Starting task list service", map[string]any{
		"version":       cfg.Version,
		"port":          cfg.ServerPort,
		"log_level":     cfg.LogLevel,
		"store_backend": cfg.StoreBackend,
	})

	// Wire up the task store
	taskStore, err := newTaskStore(cfg, lg)
	if err != nil {
		log.Fatalf("failed to create task store: %v", err)
	}
	defer func() { _ = taskStore.Close() }()

	// Create and start server
	srv := server.New(taskStore, cfg, lg)
	if err := srv.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// newTaskStore selects the persistence backend from configuration.
func newTaskStore(cfg *config.Config, lg *logger.Logger) (store.TaskStore, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		return store.NewRedisTaskStore(cfg.RedisURL, cfg.RedisKey)
	default:
		lg.Info("Using file task store", map[string]any{
			"path": cfg.TasksFile,
		})
		return store.NewFileTaskStore(cfg.TasksFile, lg), nil
	}
}
