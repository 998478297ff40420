package ports

import "context"

// ReminderService sweeps pending tasks and mails a reminder to every
// verified subscriber. Invoked by the scheduler.
type ReminderService interface {
	SendReminders(ctx context.Context) error
}
