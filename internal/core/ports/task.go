package ports

import (
	"context"

	"github.com/taskplanner/task-planner/internal/core/domain/task"
)

// TaskRepository defines the interface for task persistence
type TaskRepository interface {
	Add(ctx context.Context, name string) (*task.Task, error)
	List(ctx context.Context) ([]task.Task, error)
	ListPending(ctx context.Context) ([]task.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	Toggle(ctx context.Context, id string) (*task.Task, error)
	Delete(ctx context.Context, id string) error
}

// TaskService defines the interface for task business logic
type TaskService interface {
	AddTask(ctx context.Context, name string) (*task.Task, error)
	ListTasks(ctx context.Context) ([]task.Task, error)
	ListPendingTasks(ctx context.Context) ([]task.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	ToggleTask(ctx context.Context, id string) (*task.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
