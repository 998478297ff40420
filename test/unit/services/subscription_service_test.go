package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	impl "github.com/taskplanner/task-planner/internal/application/services"
	"github.com/taskplanner/task-planner/internal/core/domain/subscription"
	"github.com/taskplanner/task-planner/internal/core/ports"
	"github.com/taskplanner/task-planner/internal/infrastructure/repositories"
	"github.com/taskplanner/task-planner/internal/infrastructure/storage"
	"github.com/taskplanner/task-planner/test/mocks"
)

func newSubscriptionService(t *testing.T, emailSvc ports.EmailService, codeTTL time.Duration) (ports.SubscriptionService, ports.SubscriptionRepository) {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	store, err := storage.NewStore(t.TempDir(), logger)
	require.NoError(t, err)
	repo := repositories.NewSubscriptionRepository(store, logger)
	return impl.NewSubscriptionService(repo, emailSvc, codeTTL, logger), repo
}

func TestSubscribe_StateMachine(t *testing.T) {
	emails := &mocks.EmailServiceMock{}
	svc, _ := newSubscriptionService(t, emails, 0)
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, "a@b.com"))

	state, err := svc.Status(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, subscription.StatePending, state)

	// A second subscribe while pending is rejected, not refreshed.
	require.ErrorIs(t, svc.Subscribe(ctx, "a@b.com"), subscription.ErrAlreadyPending)

	code := emails.VerificationCodes["a@b.com"]
	require.Len(t, code, 6)
	require.NoError(t, svc.Verify(ctx, "a@b.com", code))

	state, err = svc.Status(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, subscription.StateVerified, state)

	require.ErrorIs(t, svc.Subscribe(ctx, "a@b.com"), subscription.ErrAlreadyVerified)

	subscribers, err := svc.Subscribers(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a@b.com"}, subscribers)
}

func TestVerify_WrongCodeLeavesPendingIntact(t *testing.T) {
	emails := &mocks.EmailServiceMock{}
	svc, _ := newSubscriptionService(t, emails, 0)
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, "a@b.com"))
	code := emails.VerificationCodes["a@b.com"]

	// Codes start at 100000, so this can never match.
	require.ErrorIs(t, svc.Verify(ctx, "a@b.com", "000000"), subscription.ErrInvalidCode)

	// The pending record survives a failed attempt; a retry with the right
	// code still succeeds.
	require.NoError(t, svc.Verify(ctx, "a@b.com", code))
}

func TestVerify_UnknownEmail(t *testing.T) {
	svc, _ := newSubscriptionService(t, &mocks.EmailServiceMock{}, 0)
	require.ErrorIs(t, svc.Verify(context.Background(), "nobody@b.com", "123456"), subscription.ErrInvalidCode)
}

func TestVerify_ExpiredCode(t *testing.T) {
	svc, repo := newSubscriptionService(t, &mocks.EmailServiceMock{}, time.Minute)
	ctx := context.Background()

	record := subscription.PendingRecord{
		Code:      "123456",
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
	}
	require.NoError(t, repo.AddPending(ctx, "a@b.com", record))

	require.ErrorIs(t, svc.Verify(ctx, "a@b.com", "123456"), subscription.ErrInvalidCode)
}

func TestUnsubscribe_RoundTrip(t *testing.T) {
	emails := &mocks.EmailServiceMock{}
	svc, _ := newSubscriptionService(t, emails, 0)
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, "a@b.com"))
	require.NoError(t, svc.Verify(ctx, "a@b.com", emails.VerificationCodes["a@b.com"]))
	require.NoError(t, svc.Unsubscribe(ctx, "a@b.com"))

	state, err := svc.Status(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, subscription.StateUnknown, state)

	// The address went back to unknown and may re-enter the pipeline.
	require.NoError(t, svc.Subscribe(ctx, "a@b.com"))
}

func TestUnsubscribe_NotSubscribed(t *testing.T) {
	svc, _ := newSubscriptionService(t, &mocks.EmailServiceMock{}, 0)
	require.ErrorIs(t, svc.Unsubscribe(context.Background(), "nobody@b.com"), subscription.ErrNotSubscribed)
}

func TestSubscribe_NotifierFailureStillCommits(t *testing.T) {
	svc, _ := newSubscriptionService(t, &mocks.FailingEmailServiceMock{}, 0)
	ctx := context.Background()

	// The pending record is durable before the notifier runs, so a delivery
	// failure does not fail the subscribe.
	require.NoError(t, svc.Subscribe(ctx, "a@b.com"))

	state, err := svc.Status(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, subscription.StatePending, state)
}

func TestGenerateCode_SixDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := subscription.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.GreaterOrEqual(t, code, "100000")
		require.LessOrEqual(t, code, "999999")
	}
}
