package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/taskplanner/task-planner/internal/core/domain/subscription"
	"github.com/taskplanner/task-planner/internal/core/ports"
)

type SubscriptionService struct {
	repo         ports.SubscriptionRepository
	emailService ports.EmailService
	codeTTL      time.Duration
	logger       *logrus.Logger
}

// NewSubscriptionService creates the subscription workflow service. codeTTL
// bounds how long a verification code stays usable; zero disables expiry.
func NewSubscriptionService(repo ports.SubscriptionRepository, emailService ports.EmailService, codeTTL time.Duration, logger *logrus.Logger) ports.SubscriptionService {
	return &SubscriptionService{
		repo:         repo,
		emailService: emailService,
		codeTTL:      codeTTL,
		logger:       logger,
	}
}

// Subscribe moves an unknown address into the pending state and mails the
// verification link. The pending record is committed before the email goes
// out; a delivery failure is logged but does not undo the state change.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) error {
	verified, err := s.repo.IsVerified(ctx, email)
	if err != nil {
		return err
	}
	if verified {
		return subscription.ErrAlreadyVerified
	}

	if record, err := s.repo.Pending(ctx, email); err != nil {
		return err
	} else if record != nil {
		return subscription.ErrAlreadyPending
	}

	code, err := subscription.GenerateCode()
	if err != nil {
		return err
	}

	record := subscription.PendingRecord{
		Code:      code,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddPending(ctx, email, record); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"email": email}).Info("subscription pending, sending verification email")
	}

	if err := s.emailService.SendVerificationEmail(ctx, email, code); err != nil {
		// The pending record is already durable; the subscriber can still be
		// verified once a working link reaches them.
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"email": email}).WithError(err).Warn("failed to send verification email")
		}
	}
	return nil
}

// Verify promotes a pending address to the verified set when the supplied
// code matches exactly. Unknown address, wrong code and expired code all
// collapse to ErrInvalidCode so a prober cannot tell them apart. A failed
// attempt leaves the pending record intact.
func (s *SubscriptionService) Verify(ctx context.Context, email, code string) error {
	record, err := s.repo.Pending(ctx, email)
	if err != nil {
		return err
	}
	if record == nil || record.Code != code {
		return subscription.ErrInvalidCode
	}
	if record.Expired(s.codeTTL, time.Now().UTC()) {
		return subscription.ErrInvalidCode
	}

	// Promotion is two single-resource writes. A crash between them leaves a
	// stale pending record behind, which is harmless: the address is already
	// verified and the stale code cannot promote it again.
	if err := s.repo.AddVerified(ctx, email); err != nil {
		return err
	}
	if err := s.repo.RemovePending(ctx, email); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"email": email}).Info("subscription verified")
	}
	return nil
}

// Unsubscribe removes a verified address, returning it to the unknown state
// so it may subscribe again later.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, email string) error {
	if err := s.repo.RemoveVerified(ctx, email); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"email": email}).Info("subscriber unsubscribed")
	}
	return nil
}

func (s *SubscriptionService) Subscribers(ctx context.Context) ([]string, error) {
	return s.repo.Subscribers(ctx)
}

// Status reports where an address sits in the workflow.
func (s *SubscriptionService) Status(ctx context.Context, email string) (subscription.State, error) {
	verified, err := s.repo.IsVerified(ctx, email)
	if err != nil {
		return subscription.StateUnknown, err
	}
	if verified {
		return subscription.StateVerified, nil
	}

	record, err := s.repo.Pending(ctx, email)
	if err != nil {
		return subscription.StateUnknown, err
	}
	if record != nil {
		return subscription.StatePending, nil
	}
	return subscription.StateUnknown, nil
}
