package ports

import (
	"context"
)

// EmailService defines the interface for outbound email. Delivery failures
// are reported but never retried here; the state change that triggered the
// message has already been committed by the caller.
type EmailService interface {
	SendVerificationEmail(ctx context.Context, email, code string) error
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}
