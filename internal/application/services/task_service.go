package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/taskplanner/task-planner/internal/core/domain/task"
	"github.com/taskplanner/task-planner/internal/core/ports"
)

type TaskService struct {
	repo   ports.TaskRepository
	logger *logrus.Logger
}

func NewTaskService(repo ports.TaskRepository, logger *logrus.Logger) ports.TaskService {
	return &TaskService{
		repo:   repo,
		logger: logger,
	}
}

func (s *TaskService) AddTask(ctx context.Context, name string) (*task.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, task.ErrEmptyName
	}

	created, err := s.repo.Add(ctx, name)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"name": name}).WithError(err).Debug("failed to add task")
		}
		return nil, err
	}
	return created, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]task.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) ListPendingTasks(ctx context.Context) ([]task.Task, error) {
	return s.repo.ListPending(ctx)
}

func (s *TaskService) SetCompleted(ctx context.Context, id string, completed bool) error {
	if err := s.repo.SetCompleted(ctx, id, completed); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"task_id": id, "completed": completed}).Info("task completion updated")
	}
	return nil
}

func (s *TaskService) ToggleTask(ctx context.Context, id string) (*task.Task, error) {
	toggled, err := s.repo.Toggle(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"task_id": id, "completed": toggled.Completed}).Info("task toggled")
	}
	return toggled, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
