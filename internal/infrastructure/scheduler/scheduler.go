package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/taskplanner/task-planner/internal/core/ports"
)

// ReminderScheduler triggers the reminder sweep on a fixed interval. It is
// the only periodic actor in the system; the sweep itself reads state and
// sends mail but never writes.
type ReminderScheduler struct {
	interval  time.Duration
	reminders ports.ReminderService
	logger    *logrus.Logger
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewReminderScheduler(interval time.Duration, reminders ports.ReminderService, logger *logrus.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		interval:  interval,
		reminders: reminders,
		logger:    logger,
	}
}

// Start launches the sweep loop. An interval of zero or less disables the
// scheduler entirely.
func (s *ReminderScheduler) Start() {
	if s.interval <= 0 {
		if s.logger != nil {
			s.logger.Info("reminder scheduler disabled")
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"interval": s.interval.String()}).Info("reminder scheduler started")
	}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.reminders.SendReminders(ctx); err != nil && s.logger != nil {
					s.logger.WithError(err).Error("reminder sweep failed")
				}
			}
		}
	}()
}

// Stop halts the sweep loop and waits for an in-flight sweep to finish.
func (s *ReminderScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	if s.logger != nil {
		s.logger.Info("reminder scheduler stopped")
	}
}
