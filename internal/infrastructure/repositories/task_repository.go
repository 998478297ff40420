package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/taskplanner/task-planner/internal/core/domain/task"
	"github.com/taskplanner/task-planner/internal/core/ports"
	"github.com/taskplanner/task-planner/internal/infrastructure/storage"
)

const tasksResource = "tasks"

// TaskRepository implements the task repository interface on the file store
type TaskRepository struct {
	store  *storage.Store
	logger *logrus.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(store *storage.Store, logger *logrus.Logger) ports.TaskRepository {
	return &TaskRepository{
		store:  store,
		logger: logger,
	}
}

// Add appends a new task unless its trimmed name collides with an existing one.
func (r *TaskRepository) Add(ctx context.Context, name string) (*task.Task, error) {
	var created task.Task
	err := storage.Update(r.store, tasksResource, []task.Task{}, func(tasks []task.Task) ([]task.Task, error) {
		for _, t := range tasks {
			if task.SameName(t.Name, name) {
				return nil, task.ErrDuplicateName
			}
		}
		created = task.Task{
			ID:        uuid.New().String(),
			Name:      name,
			Completed: false,
		}
		return append(tasks, created), nil
	})
	if err != nil {
		return nil, err
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"task_id": created.ID, "name": created.Name}).Info("store: task created")
	}
	return &created, nil
}

// List returns all tasks in insertion order.
func (r *TaskRepository) List(ctx context.Context) ([]task.Task, error) {
	return storage.Read(r.store, tasksResource, []task.Task{}), nil
}

// ListPending returns the incomplete tasks, order preserved.
func (r *TaskRepository) ListPending(ctx context.Context) ([]task.Task, error) {
	all := storage.Read(r.store, tasksResource, []task.Task{})
	pending := make([]task.Task, 0, len(all))
	for _, t := range all {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	return pending, nil
}

// SetCompleted flips the completion flag of the task with the given id.
func (r *TaskRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	return storage.Update(r.store, tasksResource, []task.Task{}, func(tasks []task.Task) ([]task.Task, error) {
		for i := range tasks {
			if tasks[i].ID == id {
				tasks[i].Completed = completed
				return tasks, nil
			}
		}
		return nil, task.ErrNotFound
	})
}

// Toggle inverts the completion flag within a single load-mutate-save span
// and returns the updated task.
func (r *TaskRepository) Toggle(ctx context.Context, id string) (*task.Task, error) {
	var updated task.Task
	err := storage.Update(r.store, tasksResource, []task.Task{}, func(tasks []task.Task) ([]task.Task, error) {
		for i := range tasks {
			if tasks[i].ID == id {
				tasks[i].Completed = !tasks[i].Completed
				updated = tasks[i]
				return tasks, nil
			}
		}
		return nil, task.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the task with the given id. Hard delete, no tombstone.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	err := storage.Update(r.store, tasksResource, []task.Task{}, func(tasks []task.Task) ([]task.Task, error) {
		for i := range tasks {
			if tasks[i].ID == id {
				return append(tasks[:i], tasks[i+1:]...), nil
			}
		}
		return nil, task.ErrNotFound
	})
	if err != nil {
		return err
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"task_id": id}).Info("store: task deleted")
	}
	return nil
}
