package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	impl "github.com/taskplanner/task-planner/internal/application/services"
	"github.com/taskplanner/task-planner/internal/core/domain/task"
	"github.com/taskplanner/task-planner/internal/infrastructure/repositories"
	"github.com/taskplanner/task-planner/internal/infrastructure/storage"
	"github.com/taskplanner/task-planner/test/mocks"
)

func TestComposeReminder_EmptyInput(t *testing.T) {
	message, ok := impl.ComposeReminder(nil, "http://localhost:8000/unsubscribe?email=a%40b.com")
	require.False(t, ok)
	require.Nil(t, message)
}

func TestComposeReminder_AllTasksCompleted(t *testing.T) {
	tasks := []task.Task{
		{ID: "1", Name: "done already", Completed: true},
	}
	message, ok := impl.ComposeReminder(tasks, "http://localhost:8000/unsubscribe?email=a%40b.com")
	require.False(t, ok)
	require.Nil(t, message)
}

func TestComposeReminder_RendersPendingTasks(t *testing.T) {
	tasks := []task.Task{
		{ID: "1", Name: "Buy milk"},
		{ID: "2", Name: "finished", Completed: true},
		{ID: "3", Name: "Walk the dog"},
	}
	link := "http://localhost:8000/unsubscribe?email=a%40b.com"

	message, ok := impl.ComposeReminder(tasks, link)
	require.True(t, ok)
	require.Equal(t, "Task Planner - Pending Tasks Reminder", message.Subject)
	require.Contains(t, message.HTMLBody, "<li>Buy milk</li>")
	require.Contains(t, message.HTMLBody, "<li>Walk the dog</li>")
	require.NotContains(t, message.HTMLBody, "finished")
	require.Contains(t, message.HTMLBody, link)
}

func TestComposeReminder_EscapesTaskNames(t *testing.T) {
	tasks := []task.Task{
		{ID: "1", Name: `<script>alert("x")</script>`},
	}
	message, ok := impl.ComposeReminder(tasks, "http://localhost:8000/unsubscribe?email=a%40b.com")
	require.True(t, ok)
	require.NotContains(t, message.HTMLBody, "<script>")
	require.Contains(t, message.HTMLBody, "&lt;script&gt;")
}

func TestSendReminders_EndToEnd(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	store, err := storage.NewStore(t.TempDir(), logger)
	require.NoError(t, err)

	emails := &mocks.EmailServiceMock{}
	taskSvc := impl.NewTaskService(repositories.NewTaskRepository(store, logger), logger)
	subSvc := impl.NewSubscriptionService(repositories.NewSubscriptionRepository(store, logger), emails, 0, logger)
	reminderSvc := impl.NewReminderService(taskSvc, subSvc, emails, "http://localhost:8000", logger)
	ctx := context.Background()

	created, err := taskSvc.AddTask(ctx, "Buy milk")
	require.NoError(t, err)
	require.False(t, created.Completed)

	pending, err := taskSvc.ListPendingTasks(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, created.ID, pending[0].ID)

	require.NoError(t, subSvc.Subscribe(ctx, "a@b.com"))
	code := emails.VerificationCodes["a@b.com"]
	require.Len(t, code, 6)
	require.NoError(t, subSvc.Verify(ctx, "a@b.com", code))

	require.NoError(t, reminderSvc.SendReminders(ctx))

	require.Len(t, emails.Sent, 1)
	sent := emails.Sent[0]
	require.Equal(t, "a@b.com", sent.To)
	require.Contains(t, sent.HTMLBody, "Buy milk")
	require.Contains(t, sent.HTMLBody, "/unsubscribe?email=a%40b.com")
}

func TestSendReminders_NoPendingTasks(t *testing.T) {
	emails := &mocks.EmailServiceMock{}
	taskSvc := &mocks.TaskServiceMock{}
	subSvc := &mocks.SubscriptionServiceMock{
		SubscribersFn: func(ctx context.Context) ([]string, error) {
			t.Fatal("subscribers must not be consulted when nothing is pending")
			return nil, nil
		},
	}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	reminderSvc := impl.NewReminderService(taskSvc, subSvc, emails, "http://localhost:8000", logger)

	require.NoError(t, reminderSvc.SendReminders(context.Background()))
	require.Empty(t, emails.Sent)
}

func TestSendReminders_SendFailureContinuesSweep(t *testing.T) {
	emails := &mocks.EmailServiceMock{
		SendEmailFn: func(ctx context.Context, to, subject, htmlBody string) error {
			if to == "broken@b.com" {
				return fmt.Errorf("mailbox unavailable")
			}
			return nil
		},
	}
	taskSvc := &mocks.TaskServiceMock{
		ListPendingTasksFn: func(ctx context.Context) ([]task.Task, error) {
			return []task.Task{{ID: "1", Name: "Buy milk"}}, nil
		},
	}
	subSvc := &mocks.SubscriptionServiceMock{
		SubscribersFn: func(ctx context.Context) ([]string, error) {
			return []string{"broken@b.com", "ok@b.com"}, nil
		},
	}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	reminderSvc := impl.NewReminderService(taskSvc, subSvc, emails, "http://localhost:8000", logger)

	require.NoError(t, reminderSvc.SendReminders(context.Background()))
	require.Len(t, emails.Sent, 1)
	require.Equal(t, "ok@b.com", emails.Sent[0].To)
}
