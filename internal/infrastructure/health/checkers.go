package health

import (
	"context"

	"github.com/taskplanner/task-planner/internal/core/ports"
	"github.com/taskplanner/task-planner/internal/infrastructure/storage"
)

// storageHealthChecker wraps the file store for health checks.
type storageHealthChecker struct{ store *storage.Store }

func (s *storageHealthChecker) Name() string                    { return "storage" }
func (s *storageHealthChecker) Check(ctx context.Context) error { return s.store.Ping(ctx) }

// NewStorageHealthChecker creates a health checker for the file store.
func NewStorageHealthChecker(store *storage.Store) ports.HealthChecker {
	return &storageHealthChecker{store: store}
}
