package ports

import (
	"context"

	"github.com/taskplanner/task-planner/internal/core/domain/subscription"
)

// SubscriptionRepository defines persistence for the verified subscriber set
// and the pending subscription map.
type SubscriptionRepository interface {
	Subscribers(ctx context.Context) ([]string, error)
	IsVerified(ctx context.Context, email string) (bool, error)
	AddVerified(ctx context.Context, email string) error
	RemoveVerified(ctx context.Context, email string) error

	Pending(ctx context.Context, email string) (*subscription.PendingRecord, error)
	AddPending(ctx context.Context, email string, record subscription.PendingRecord) error
	RemovePending(ctx context.Context, email string) error
}

// SubscriptionService drives the pending -> verified subscription workflow.
type SubscriptionService interface {
	Subscribe(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
	Unsubscribe(ctx context.Context, email string) error
	Subscribers(ctx context.Context) ([]string, error)
	Status(ctx context.Context, email string) (subscription.State, error)
}
