package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/taskplanner/task-planner/internal/core/domain/task"
)

// Task handlers (JSON API)

func (s *Server) listTasks(c echo.Context) error {
	tasks, err := s.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tasks": tasks,
		"count": len(tasks),
	})
}

func (s *Server) listPendingTasks(c echo.Context) error {
	tasks, err := s.taskService.ListPendingTasks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list pending tasks")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tasks": tasks,
		"count": len(tasks),
	})
}

func (s *Server) createTask(c echo.Context) error {
	var req task.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	created, err := s.taskService.AddTask(c.Request().Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, task.ErrEmptyName):
			return echo.NewHTTPError(http.StatusBadRequest, "task name is required")
		case errors.Is(err, task.ErrDuplicateName):
			return echo.NewHTTPError(http.StatusConflict, "task already exists")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create task")
		}
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateTask(c echo.Context) error {
	var req task.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Completed == nil {
		toggled, err := s.taskService.ToggleTask(c.Request().Context(), c.Param("id"))
		if err != nil {
			return taskHTTPError(err)
		}
		return c.JSON(http.StatusOK, toggled)
	}

	if err := s.taskService.SetCompleted(c.Request().Context(), c.Param("id"), *req.Completed); err != nil {
		return taskHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteTask(c echo.Context) error {
	if err := s.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return taskHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func taskHTTPError(err error) error {
	if errors.Is(err, task.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "failed to update task")
}
