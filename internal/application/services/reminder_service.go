package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/taskplanner/task-planner/internal/core/domain/task"
	"github.com/taskplanner/task-planner/internal/core/ports"
)

var (
	remindersSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reminder_emails_sent_total",
		Help: "The total number of reminder emails handed to the email service",
	})
	reminderFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reminder_email_failures_total",
		Help: "The total number of reminder emails the email service failed to send",
	})
)

func init() {
	prometheus.MustRegister(remindersSentTotal)
	prometheus.MustRegister(reminderFailuresTotal)
}

const reminderSubject = "Task Planner - Pending Tasks Reminder"

// Task names pass through html/template, so markup in a name renders as text.
var reminderTemplate = template.Must(template.New("reminder").Parse(`<html>
<head><title>Task Reminder</title></head>
<body>
    <h2>Pending Tasks Reminder</h2>
    <p>Here are your current pending tasks:</p>
    <ul>{{range .Tasks}}<li>{{.Name}}</li>{{end}}</ul>
    <p><a href="{{.UnsubscribeLink}}">Unsubscribe from notifications</a></p>
</body>
</html>`))

// ReminderMessage is a composed notification ready for delivery.
type ReminderMessage struct {
	Subject  string
	HTMLBody string
}

// ComposeReminder renders the reminder for one recipient. It re-filters the
// supplied tasks and reports false when nothing incomplete remains, in which
// case no message should be sent.
func ComposeReminder(pendingTasks []task.Task, unsubscribeLink string) (*ReminderMessage, bool) {
	incomplete := make([]task.Task, 0, len(pendingTasks))
	for _, t := range pendingTasks {
		if !t.Completed {
			incomplete = append(incomplete, t)
		}
	}
	if len(incomplete) == 0 {
		return nil, false
	}

	var body bytes.Buffer
	data := struct {
		Tasks           []task.Task
		UnsubscribeLink string
	}{
		Tasks:           incomplete,
		UnsubscribeLink: unsubscribeLink,
	}
	if err := reminderTemplate.Execute(&body, data); err != nil {
		// The template is static and the data is plain structs; execution
		// cannot fail at runtime, but don't send a half-rendered body if it
		// somehow does.
		return nil, false
	}

	return &ReminderMessage{
		Subject:  reminderSubject,
		HTMLBody: body.String(),
	}, true
}

type ReminderService struct {
	taskService         ports.TaskService
	subscriptionService ports.SubscriptionService
	emailService        ports.EmailService
	baseURL             string
	logger              *logrus.Logger
}

func NewReminderService(taskService ports.TaskService, subscriptionService ports.SubscriptionService, emailService ports.EmailService, baseURL string, logger *logrus.Logger) ports.ReminderService {
	return &ReminderService{
		taskService:         taskService,
		subscriptionService: subscriptionService,
		emailService:        emailService,
		baseURL:             baseURL,
		logger:              logger,
	}
}

// SendReminders composes and sends one reminder per verified subscriber.
// It reads state and sends mail but never writes; a failed send for one
// recipient does not stop the sweep.
func (s *ReminderService) SendReminders(ctx context.Context) error {
	pending, err := s.taskService.ListPendingTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending tasks: %w", err)
	}
	if len(pending) == 0 {
		if s.logger != nil {
			s.logger.Debug("no pending tasks, skipping reminder sweep")
		}
		return nil
	}

	subscribers, err := s.subscriptionService.Subscribers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subscribers: %w", err)
	}

	sent := 0
	for _, email := range subscribers {
		link := fmt.Sprintf("%s/unsubscribe?email=%s", s.baseURL, url.QueryEscape(email))
		message, ok := ComposeReminder(pending, link)
		if !ok {
			continue
		}

		if err := s.emailService.SendEmail(ctx, email, message.Subject, message.HTMLBody); err != nil {
			reminderFailuresTotal.Inc()
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"email": email}).WithError(err).Warn("failed to send reminder email")
			}
			continue
		}
		remindersSentTotal.Inc()
		sent++
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"subscribers": len(subscribers), "sent": sent, "pending_tasks": len(pending)}).Info("reminder sweep finished")
	}
	return nil
}
