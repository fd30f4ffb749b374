package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/application/mocks"
	"github.com/DanielPopoola/course-checkout/internal/application/services"
	"github.com/DanielPopoola/course-checkout/internal/application/services/testhelpers"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type checkoutEnv struct {
	orders    *testhelpers.MemoryOrderRepository
	courses   *testhelpers.MemoryCourseCatalog
	gateway   *mocks.MockGateway
	granter   *testhelpers.RecordingGranter
	notifier  *testhelpers.RecordingNotifier
	registry  *application.Registry
	completer *services.OrderCompleter
	create    *services.CreateOrderService
	capture   *services.CaptureService
	webhook   *services.WebhookService
	query     *services.QueryService
}

func newCheckoutEnv(t *testing.T, locker application.Locker, courses ...*domain.Course) *checkoutEnv {
	t.Helper()
	if len(courses) == 0 {
		courses = []*domain.Course{testhelpers.DefaultCourse()}
	}

	gateway := mocks.NewMockGateway(t)
	stubGateway(gateway, testhelpers.DefaultGateway, true)

	registry, err := application.NewRegistry(gateway)
	require.NoError(t, err)

	env := &checkoutEnv{
		orders:   testhelpers.NewMemoryOrderRepository(),
		courses:  testhelpers.NewMemoryCourseCatalog(courses...),
		gateway:  gateway,
		granter:  &testhelpers.RecordingGranter{},
		notifier: &testhelpers.RecordingNotifier{},
		registry: registry,
	}

	logger := testhelpers.DiscardLogger()
	env.completer = services.NewOrderCompleter(env.orders, env.courses, env.granter, env.notifier, logger)
	env.create = services.NewCreateOrderService(env.orders, env.courses, registry, locker, logger).
		WithClock(func() time.Time { return fixedNow })
	env.capture = services.NewCaptureService(env.orders, registry, env.completer, logger)
	env.webhook = services.NewWebhookService(env.orders, registry, env.completer, logger)
	env.query = services.NewQueryService(env.orders)
	return env
}

func stubGateway(gateway *mocks.MockGateway, name string, enabled bool) {
	gateway.EXPECT().Name().Return(name).Maybe()
	gateway.EXPECT().IsEnabled().Return(enabled).Maybe()
	gateway.EXPECT().ValidateSettings().Return(nil).Maybe()
}

func (e *checkoutEnv) fingerprint(buyer domain.BuyerID) string {
	return domain.Fingerprint(buyer, testhelpers.DefaultCourse().ID, testhelpers.DefaultGateway, fixedNow)
}

func (e *checkoutEnv) stored(t *testing.T, id int64) *domain.Order {
	t.Helper()
	order, err := e.orders.Get(id)
	require.NoError(t, err)
	return order
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok, "expected service error, got %T: %v", err, err)
	require.Equal(t, code, svcErr.Code)
}

// transientError looks like a provider outage.
type transientError struct{}

func (transientError) Error() string     { return "service unavailable" }
func (transientError) IsRetryable() bool { return true }

// rejectedError looks like a provider refusing the request.
type rejectedError struct{}

func (rejectedError) Error() string     { return "unprocessable entity" }
func (rejectedError) IsRetryable() bool { return false }

// tryLocker grants each key to one holder at a time without blocking.
type tryLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newTryLocker() *tryLocker {
	return &tryLocker{held: make(map[string]bool)}
}

func (l *tryLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return func() {}, false, nil
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, true, nil
}
