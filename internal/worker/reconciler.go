package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/robfig/cron/v3"
)

// EntitlementGranter re-runs the grant step of a completed order.
type EntitlementGranter interface {
	GrantEntitlements(ctx context.Context, order *domain.Order) error
}

// Reconciler finds completed orders whose entitlements were never recorded
// and grants them again.
type Reconciler struct {
	orders    application.OrderRepository
	granter   EntitlementGranter
	batchSize int
	minAge    time.Duration
	logger    *slog.Logger
}

type RunReport struct {
	Scanned int
	Granted int
	Failed  int
}

func NewReconciler(
	orders application.OrderRepository,
	granter EntitlementGranter,
	batchSize int,
	minAge time.Duration,
	logger *slog.Logger,
) *Reconciler {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Reconciler{
		orders:    orders,
		granter:   granter,
		batchSize: batchSize,
		minAge:    minAge,
		logger:    logger,
	}
}

// Start schedules the reconciler and returns once the schedule is running.
// The scheduler stops when ctx is cancelled; the returned channel closes
// after any in-flight run has finished.
func (r *Reconciler) Start(ctx context.Context, schedule string) (<-chan struct{}, error) {
	log := cronLogger{r.logger}
	c := cron.New(cron.WithChain(
		cron.Recover(log),
		cron.SkipIfStillRunning(log),
	))

	if _, err := c.AddFunc(schedule, func() { r.RunOnce(ctx) }); err != nil {
		return nil, err
	}

	r.logger.Info("starting entitlement reconciler", "schedule", schedule, "batch_size", r.batchSize, "min_age", r.minAge)
	c.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		<-c.Stop().Done()
		r.logger.Info("stopping entitlement reconciler")
	}()

	return done, nil
}

// RunOnce executes a single reconciliation cycle.
func (r *Reconciler) RunOnce(ctx context.Context) RunReport {
	var report RunReport

	orders, err := r.orders.FindUngranted(ctx, r.minAge, r.batchSize)
	if err != nil {
		r.logger.Error("failed to fetch ungranted orders", "error", err)
		return report
	}
	report.Scanned = len(orders)
	if len(orders) == 0 {
		return report
	}

	r.logger.Info("reconciling ungranted orders", "count", len(orders))

	for _, order := range orders {
		if ctx.Err() != nil {
			break
		}
		if err := r.granter.GrantEntitlements(ctx, order); err != nil {
			report.Failed++
			r.logger.Error("reconciliation failed for order",
				"order_id", order.ID,
				"buyer_id", order.BuyerID,
				"error", err,
			)
			continue
		}
		report.Granted++
		r.logger.Info("granted entitlements for order", "order_id", order.ID)
	}

	return report
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
