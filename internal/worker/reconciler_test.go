package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/application/services"
	"github.com/DanielPopoola/course-checkout/internal/application/services/testhelpers"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reconcilerEnv struct {
	orders   *testhelpers.MemoryOrderRepository
	granter  *testhelpers.RecordingGranter
	notifier *testhelpers.RecordingNotifier
	rec      *Reconciler
}

func newReconcilerEnv(batch int) *reconcilerEnv {
	return newReconcilerEnvWithAge(batch, 0)
}

func newReconcilerEnvWithAge(batch int, minAge time.Duration) *reconcilerEnv {
	orders := testhelpers.NewMemoryOrderRepository()
	granter := &testhelpers.RecordingGranter{}
	notifier := &testhelpers.RecordingNotifier{}
	logger := testhelpers.DiscardLogger()

	completer := services.NewOrderCompleter(
		orders,
		testhelpers.NewMemoryCourseCatalog(testhelpers.DefaultCourse()),
		granter,
		notifier,
		logger,
	)

	return &reconcilerEnv{
		orders:   orders,
		granter:  granter,
		notifier: notifier,
		rec:      NewReconciler(orders, completer, batch, minAge, logger),
	}
}

func ungrantedOrder(buyer domain.BuyerID, externalID string) *domain.Order {
	o := testhelpers.CompletedOrder(buyer, testhelpers.DefaultCourse().ID, externalID)
	o.EntitlementsGrantedAt = nil
	return o
}

func TestReconciler_GrantsUngrantedOrders(t *testing.T) {
	env := newReconcilerEnv(10)
	ctx := context.Background()

	stuck := env.orders.Seed(ungrantedOrder(testhelpers.DefaultBuyer, "PP-1"))
	env.orders.Seed(testhelpers.CompletedOrder(testhelpers.DefaultBuyer, 7, "PP-2"))
	env.orders.Seed(testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-3"))

	report := env.rec.RunOnce(ctx)

	assert.Equal(t, RunReport{Scanned: 1, Granted: 1}, report)

	calls := env.granter.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, testhelpers.DefaultBuyer, calls[0].UserID)
	assert.Equal(t, "7", calls[0].EntitlementID)
	assert.Equal(t, services.EntitlementSourcePurchase, calls[0].Source)

	got, err := env.orders.Get(stuck.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.EntitlementsGrantedAt)

	// reconciliation never re-notifies
	assert.Zero(t, env.notifier.Count())

	// nothing left on the next cycle
	assert.Equal(t, RunReport{}, env.rec.RunOnce(ctx))
}

func TestReconciler_SkipsRecentlyCompletedOrders(t *testing.T) {
	env := newReconcilerEnvWithAge(10, time.Minute)
	ctx := context.Background()

	fresh := env.orders.Seed(ungrantedOrder(testhelpers.DefaultBuyer, "PP-F"))
	old := ungrantedOrder(8, "PP-O")
	old.UpdatedAt = time.Now().UTC().Add(-5 * time.Minute)
	env.orders.Seed(old)

	report := env.rec.RunOnce(ctx)
	assert.Equal(t, RunReport{Scanned: 1, Granted: 1}, report)

	calls := env.granter.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.BuyerID(8), calls[0].UserID)

	got, err := env.orders.Get(fresh.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EntitlementsGrantedAt)
}

func TestReconciler_FailedGrantStaysUngranted(t *testing.T) {
	env := newReconcilerEnv(10)
	env.granter.Err = errors.New("entitlement store down")

	stuck := env.orders.Seed(ungrantedOrder(testhelpers.DefaultBuyer, "PP-1"))

	report := env.rec.RunOnce(context.Background())
	assert.Equal(t, RunReport{Scanned: 1, Failed: 1}, report)

	got, err := env.orders.Get(stuck.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EntitlementsGrantedAt)

	env.granter.Err = nil
	report = env.rec.RunOnce(context.Background())
	assert.Equal(t, RunReport{Scanned: 1, Granted: 1}, report)
}

func TestReconciler_RespectsBatchSize(t *testing.T) {
	env := newReconcilerEnv(2)
	for i := range 5 {
		env.orders.Seed(ungrantedOrder(domain.BuyerID(100+i), "PP"))
	}

	assert.Equal(t, 2, env.rec.RunOnce(context.Background()).Granted)
	assert.Equal(t, 2, env.rec.RunOnce(context.Background()).Granted)
	assert.Equal(t, 1, env.rec.RunOnce(context.Background()).Granted)
}

func TestReconciler_AnonymousOrderMarkedWithoutGrant(t *testing.T) {
	env := newReconcilerEnv(10)
	stuck := env.orders.Seed(ungrantedOrder(domain.AnonymousBuyer, "PP-1"))

	report := env.rec.RunOnce(context.Background())
	assert.Equal(t, 1, report.Granted)
	assert.Empty(t, env.granter.Calls())

	got, err := env.orders.Get(stuck.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.EntitlementsGrantedAt)
}

func TestReconciler_StartRejectsBadSchedule(t *testing.T) {
	env := newReconcilerEnv(10)
	_, err := env.rec.Start(context.Background(), "every now and then")
	assert.Error(t, err)
}

func TestReconciler_StartRunsOnSchedule(t *testing.T) {
	env := newReconcilerEnv(10)
	stuck := env.orders.Seed(ungrantedOrder(testhelpers.DefaultBuyer, "PP-1"))

	ctx, cancel := context.WithCancel(context.Background())
	done, err := env.rec.Start(ctx, "@every 1s")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		got, err := env.orders.Get(stuck.ID)
		return err == nil && got.EntitlementsGrantedAt != nil
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reconciler did not stop")
	}
}
