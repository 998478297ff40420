package task

import (
	"errors"
	"strings"
)

// Task is a single entry on the task list.
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

var (
	ErrEmptyName     = errors.New("task name must not be empty")
	ErrDuplicateName = errors.New("a task with that name already exists")
	ErrNotFound      = errors.New("task not found")
)

// SameName reports whether two task names collide. Comparison is
// case-sensitive on the trimmed names.
func SameName(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

// CreateTaskRequest represents the request to create a new task
type CreateTaskRequest struct {
	Name string `json:"name" form:"task-name"`
}

// UpdateTaskRequest represents the request to update a task's completion state
type UpdateTaskRequest struct {
	Completed *bool `json:"completed"`
}
