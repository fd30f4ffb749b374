package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
)

const EntitlementSourcePurchase = "purchase"

// OrderCompleter owns the transition into completed. Both confirmation paths
// go through Complete so entitlements are granted by exactly one caller.
type OrderCompleter struct {
	orders   application.OrderRepository
	courses  application.CourseCatalog
	granter  application.EntitlementGranter
	notifier application.CompletionNotifier
	logger   *slog.Logger
}

func NewOrderCompleter(
	orders application.OrderRepository,
	courses application.CourseCatalog,
	granter application.EntitlementGranter,
	notifier application.CompletionNotifier,
	logger *slog.Logger,
) *OrderCompleter {
	return &OrderCompleter{
		orders:   orders,
		courses:  courses,
		granter:  granter,
		notifier: notifier,
		logger:   logger,
	}
}

func (c *OrderCompleter) Complete(
	ctx context.Context,
	orderID int64,
	externalID string,
	payload domain.GatewayPayload,
) (*CompletionResult, error) {
	order, err := c.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, application.NewOrderNotFoundError()
		}
		return nil, application.NewInternalError(err)
	}

	if order.IsCompleted() {
		return &CompletionResult{Order: order}, nil
	}

	if order.ExternalIDMismatch(externalID) {
		return nil, application.NewTransactionMismatchError(
			domain.NewTransactionMismatchError(*order.ExternalID, externalID),
		)
	}

	if err := order.CanTransitionTo(domain.StatusCompleted); err != nil {
		return nil, application.NewInvalidTransitionError(err)
	}

	var extID *string
	if externalID != "" {
		extID = &externalID
	}

	swapped, err := c.orders.CompareAndSetStatus(ctx, order.ID, order.Status, domain.StatusCompleted, extID, payload)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if !swapped {
		return c.resolveLostRace(ctx, order.ID, externalID)
	}

	order.Status = domain.StatusCompleted
	if extID != nil && !order.HasExternalID() {
		order.ExternalID = extID
	}
	if payload != nil {
		order.Payload = payload
	}

	c.logger.Info("order completed",
		"order_id", order.ID,
		"external_id", externalID,
		"gateway", order.Gateway,
		"buyer_id", order.BuyerID,
	)

	if err := c.GrantEntitlements(ctx, order); err != nil {
		c.logger.Error("entitlements not granted, left for reconciliation",
			"order_id", order.ID,
			"error", err,
		)
	}

	c.notifier.OrderCompleted(ctx, order)

	return &CompletionResult{Order: order, Transitioned: true}, nil
}

func (c *OrderCompleter) resolveLostRace(ctx context.Context, orderID int64, externalID string) (*CompletionResult, error) {
	current, err := c.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	if current.IsCompleted() {
		c.logger.Info("order already completed by concurrent confirmation", "order_id", orderID)
		return &CompletionResult{Order: current}, nil
	}

	if current.ExternalIDMismatch(externalID) {
		return nil, application.NewTransactionMismatchError(
			domain.NewTransactionMismatchError(*current.ExternalID, externalID),
		)
	}

	return nil, application.NewInvalidTransitionError(
		domain.NewInvalidTransitionError(current.Status, domain.StatusCompleted),
	)
}

// GrantEntitlements grants every entitlement of the order's course to the
// buyer and records the grant. Granting is idempotent so it is safe to call
// again for an order whose previous grant did not finish.
func (c *OrderCompleter) GrantEntitlements(ctx context.Context, order *domain.Order) error {
	if order.BuyerID.IsAnonymous() {
		return c.orders.MarkEntitlementsGranted(ctx, order.ID)
	}

	ids, err := c.entitlementsFor(ctx, order)
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range ids {
		if err := c.granter.Grant(ctx, order.BuyerID, id, EntitlementSourcePurchase); err != nil {
			c.logger.Error("failed to grant entitlement",
				"order_id", order.ID,
				"buyer_id", order.BuyerID,
				"entitlement", id,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("grant %s: %w", id, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return c.orders.MarkEntitlementsGranted(ctx, order.ID)
}

func (c *OrderCompleter) entitlementsFor(ctx context.Context, order *domain.Order) ([]string, error) {
	course, err := c.courses.FindByID(ctx, order.CourseID)
	if err == nil {
		return course.EntitlementIDs(), nil
	}
	if errors.Is(err, domain.ErrCourseNotFound) {
		c.logger.Warn("course missing from catalog, granting course id", "order_id", order.ID, "course_id", order.CourseID)
		return []string{strconv.FormatInt(order.CourseID, 10)}, nil
	}
	return nil, fmt.Errorf("resolve entitlements: %w", err)
}
