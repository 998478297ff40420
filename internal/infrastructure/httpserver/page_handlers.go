package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/taskplanner/task-planner/internal/core/domain/subscription"
	"github.com/taskplanner/task-planner/internal/core/domain/task"
)

// Every user-facing outcome collapses to one of these short status strings;
// domain error kinds never reach the page verbatim.
const (
	statusSuccess = "success"
	statusError   = "error"
)

type indexPageData struct {
	Tasks   []task.Task
	Message string
	Status  string
}

type resultPageData struct {
	Message string
	Status  string
}

// validEmail mirrors the strictness of the original form validation: a bare
// address, no display name.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func (s *Server) redirectWithMessage(c echo.Context, status, message string) error {
	query := url.Values{}
	query.Set("status", status)
	query.Set("message", message)
	return c.Redirect(http.StatusSeeOther, "/?"+query.Encode())
}

func (s *Server) indexPage(c echo.Context) error {
	tasks, err := s.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load tasks")
	}

	return c.Render(http.StatusOK, "index.html", indexPageData{
		Tasks:   tasks,
		Message: c.QueryParam("message"),
		Status:  c.QueryParam("status"),
	})
}

func (s *Server) addTaskForm(c echo.Context) error {
	var req task.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return s.redirectWithMessage(c, statusError, "Invalid request.")
	}

	_, err := s.taskService.AddTask(c.Request().Context(), req.Name)
	switch {
	case err == nil:
		return s.redirectWithMessage(c, statusSuccess, "Task added successfully!")
	case errors.Is(err, task.ErrEmptyName):
		return s.redirectWithMessage(c, statusError, "Please enter a task name.")
	case errors.Is(err, task.ErrDuplicateName):
		return s.redirectWithMessage(c, statusError, "Task already exists or could not be added.")
	default:
		return s.redirectWithMessage(c, statusError, "Task could not be added.")
	}
}

func (s *Server) toggleTaskForm(c echo.Context) error {
	if _, err := s.taskService.ToggleTask(c.Request().Context(), c.Param("id")); err != nil {
		return s.redirectWithMessage(c, statusError, "Task not found.")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) deleteTaskForm(c echo.Context) error {
	if err := s.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return s.redirectWithMessage(c, statusError, "Task not found.")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) subscribeForm(c echo.Context) error {
	var req subscription.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return s.redirectWithMessage(c, statusError, "Invalid request.")
	}

	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		return s.redirectWithMessage(c, statusError, "Please enter a valid email address.")
	}

	if err := s.subscriptionSvc.Subscribe(c.Request().Context(), email); err != nil {
		return s.redirectWithMessage(c, statusError, "Email is already subscribed or could not be processed.")
	}
	return s.redirectWithMessage(c, statusSuccess, "Verification email sent! Please check your inbox.")
}

// verifyPage handles the emailed verification link.
func (s *Server) verifyPage(c echo.Context) error {
	email := c.QueryParam("email")
	code := c.QueryParam("code")

	data := resultPageData{Status: statusError}
	switch {
	case email == "" || code == "":
		data.Message = "Missing email or verification code. Please use the link from your verification email."
	case !validEmail(email):
		data.Message = "Invalid email format."
	case s.subscriptionSvc.Verify(c.Request().Context(), email, code) != nil:
		data.Message = "Invalid verification code or email. The link may have expired or already been used."
	default:
		data.Status = statusSuccess
		data.Message = fmt.Sprintf("Subscription verified successfully for %s!", email)
	}

	return c.Render(http.StatusOK, "verify.html", data)
}

// unsubscribePage handles the unsubscribe link from reminder emails.
func (s *Server) unsubscribePage(c echo.Context) error {
	email := c.QueryParam("email")

	data := resultPageData{Status: statusError}
	switch {
	case email == "":
		data.Message = "Invalid request: email not provided."
	case !validEmail(email):
		data.Message = "Invalid email address."
	case s.subscriptionSvc.Unsubscribe(c.Request().Context(), email) != nil:
		data.Message = "Email not found or already unsubscribed."
	default:
		data.Status = statusSuccess
		data.Message = "You have been unsubscribed successfully."
	}

	return c.Render(http.StatusOK, "unsubscribe.html", data)
}
