package mocks

import (
	"context"
	"fmt"

	"github.com/taskplanner/task-planner/internal/core/domain/subscription"
	"github.com/taskplanner/task-planner/internal/core/domain/task"
)

// TaskServiceMock is a lightweight mock for TaskService
type TaskServiceMock struct {
	AddTaskFn          func(ctx context.Context, name string) (*task.Task, error)
	ListTasksFn        func(ctx context.Context) ([]task.Task, error)
	ListPendingTasksFn func(ctx context.Context) ([]task.Task, error)
	SetCompletedFn     func(ctx context.Context, id string, completed bool) error
	ToggleTaskFn       func(ctx context.Context, id string) (*task.Task, error)
	DeleteTaskFn       func(ctx context.Context, id string) error
}

func (m *TaskServiceMock) AddTask(ctx context.Context, name string) (*task.Task, error) {
	if m.AddTaskFn != nil {
		return m.AddTaskFn(ctx, name)
	}
	return &task.Task{ID: "mock-id", Name: name}, nil
}
func (m *TaskServiceMock) ListTasks(ctx context.Context) ([]task.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return nil, nil
}
func (m *TaskServiceMock) ListPendingTasks(ctx context.Context) ([]task.Task, error) {
	if m.ListPendingTasksFn != nil {
		return m.ListPendingTasksFn(ctx)
	}
	return nil, nil
}
func (m *TaskServiceMock) SetCompleted(ctx context.Context, id string, completed bool) error {
	if m.SetCompletedFn != nil {
		return m.SetCompletedFn(ctx, id, completed)
	}
	return nil
}
func (m *TaskServiceMock) ToggleTask(ctx context.Context, id string) (*task.Task, error) {
	if m.ToggleTaskFn != nil {
		return m.ToggleTaskFn(ctx, id)
	}
	return &task.Task{ID: id}, nil
}
func (m *TaskServiceMock) DeleteTask(ctx context.Context, id string) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

// SubscriptionServiceMock is a lightweight mock for SubscriptionService
type SubscriptionServiceMock struct {
	SubscribeFn   func(ctx context.Context, email string) error
	VerifyFn      func(ctx context.Context, email, code string) error
	UnsubscribeFn func(ctx context.Context, email string) error
	SubscribersFn func(ctx context.Context) ([]string, error)
	StatusFn      func(ctx context.Context, email string) (subscription.State, error)
}

func (m *SubscriptionServiceMock) Subscribe(ctx context.Context, email string) error {
	if m.SubscribeFn != nil {
		return m.SubscribeFn(ctx, email)
	}
	return nil
}
func (m *SubscriptionServiceMock) Verify(ctx context.Context, email, code string) error {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, email, code)
	}
	return nil
}
func (m *SubscriptionServiceMock) Unsubscribe(ctx context.Context, email string) error {
	if m.UnsubscribeFn != nil {
		return m.UnsubscribeFn(ctx, email)
	}
	return nil
}
func (m *SubscriptionServiceMock) Subscribers(ctx context.Context) ([]string, error) {
	if m.SubscribersFn != nil {
		return m.SubscribersFn(ctx)
	}
	return nil, nil
}
func (m *SubscriptionServiceMock) Status(ctx context.Context, email string) (subscription.State, error) {
	if m.StatusFn != nil {
		return m.StatusFn(ctx, email)
	}
	return subscription.StateUnknown, nil
}

// EmailServiceMock records outbound mail instead of sending it.
type EmailServiceMock struct {
	SendVerificationEmailFn func(ctx context.Context, email, code string) error
	SendEmailFn             func(ctx context.Context, to, subject, htmlBody string) error

	VerificationCodes map[string]string // email -> last code handed to the notifier
	Sent              []SentEmail
}

type SentEmail struct {
	To       string
	Subject  string
	HTMLBody string
}

func (m *EmailServiceMock) SendVerificationEmail(ctx context.Context, email, code string) error {
	if m.VerificationCodes == nil {
		m.VerificationCodes = make(map[string]string)
	}
	m.VerificationCodes[email] = code
	if m.SendVerificationEmailFn != nil {
		return m.SendVerificationEmailFn(ctx, email, code)
	}
	return nil
}
func (m *EmailServiceMock) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	if m.SendEmailFn != nil {
		if err := m.SendEmailFn(ctx, to, subject, htmlBody); err != nil {
			return err
		}
	}
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, HTMLBody: htmlBody})
	return nil
}

// FailingEmailServiceMock always reports delivery failure.
type FailingEmailServiceMock struct{}

func (m *FailingEmailServiceMock) SendVerificationEmail(ctx context.Context, email, code string) error {
	return fmt.Errorf("notifier unavailable")
}
func (m *FailingEmailServiceMock) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	return fmt.Errorf("notifier unavailable")
}
