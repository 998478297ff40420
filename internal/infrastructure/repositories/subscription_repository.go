package repositories

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/taskplanner/task-planner/internal/core/domain/subscription"
	"github.com/taskplanner/task-planner/internal/core/ports"
	"github.com/taskplanner/task-planner/internal/infrastructure/storage"
)

const (
	subscribersResource = "subscribers"
	pendingResource     = "pending_subscriptions"
)

// SubscriptionRepository implements the subscription repository interface on
// the file store. The verified set and the pending map are independent
// resources; no operation here spans both.
type SubscriptionRepository struct {
	store  *storage.Store
	logger *logrus.Logger
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(store *storage.Store, logger *logrus.Logger) ports.SubscriptionRepository {
	return &SubscriptionRepository{
		store:  store,
		logger: logger,
	}
}

// Subscribers returns the verified subscriber addresses in insertion order.
func (r *SubscriptionRepository) Subscribers(ctx context.Context) ([]string, error) {
	return storage.Read(r.store, subscribersResource, []string{}), nil
}

// IsVerified reports whether the address is in the verified set.
func (r *SubscriptionRepository) IsVerified(ctx context.Context, email string) (bool, error) {
	for _, s := range storage.Read(r.store, subscribersResource, []string{}) {
		if s == email {
			return true, nil
		}
	}
	return false, nil
}

// AddVerified adds the address to the verified set. Adding an address that
// is already present is a no-op, so promotion stays idempotent.
func (r *SubscriptionRepository) AddVerified(ctx context.Context, email string) error {
	err := storage.Update(r.store, subscribersResource, []string{}, func(subscribers []string) ([]string, error) {
		for _, s := range subscribers {
			if s == email {
				return subscribers, nil
			}
		}
		return append(subscribers, email), nil
	})
	if err != nil {
		return err
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"email": email}).Info("store: subscriber verified")
	}
	return nil
}

// RemoveVerified removes the address from the verified set.
func (r *SubscriptionRepository) RemoveVerified(ctx context.Context, email string) error {
	err := storage.Update(r.store, subscribersResource, []string{}, func(subscribers []string) ([]string, error) {
		for i, s := range subscribers {
			if s == email {
				return append(subscribers[:i], subscribers[i+1:]...), nil
			}
		}
		return nil, subscription.ErrNotSubscribed
	})
	if err != nil {
		return err
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"email": email}).Info("store: subscriber removed")
	}
	return nil
}

// Pending returns the pending record for the address, or nil when absent.
func (r *SubscriptionRepository) Pending(ctx context.Context, email string) (*subscription.PendingRecord, error) {
	pending := storage.Read(r.store, pendingResource, map[string]subscription.PendingRecord{})
	record, ok := pending[email]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// AddPending stores a pending record for the address. An address may hold at
// most one pending record at a time.
func (r *SubscriptionRepository) AddPending(ctx context.Context, email string, record subscription.PendingRecord) error {
	return storage.Update(r.store, pendingResource, map[string]subscription.PendingRecord{}, func(pending map[string]subscription.PendingRecord) (map[string]subscription.PendingRecord, error) {
		if _, exists := pending[email]; exists {
			return nil, subscription.ErrAlreadyPending
		}
		pending[email] = record
		return pending, nil
	})
}

// RemovePending deletes the pending record for the address, if any.
func (r *SubscriptionRepository) RemovePending(ctx context.Context, email string) error {
	return storage.Update(r.store, pendingResource, map[string]subscription.PendingRecord{}, func(pending map[string]subscription.PendingRecord) (map[string]subscription.PendingRecord, error) {
		delete(pending, email)
		return pending, nil
	})
}
