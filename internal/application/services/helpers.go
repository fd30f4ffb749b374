package services

import (
	"context"
	"errors"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
)

const (
	pollInterval = 200 * time.Millisecond
	pollTimeout  = 5 * time.Second
)

// waitForOrder polls until the order holding fingerprint has left the
// pending reservation, or gives up with a request-processing error.
func waitForOrder(ctx context.Context, orders application.OrderRepository, fingerprint string, interval, timeout time.Duration) (*domain.Order, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.After(timeout)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, application.NewRequestProcessingError()
		case <-ticker.C:
			order, err := orders.FindByFingerprint(ctx, fingerprint)
			if err != nil {
				if errors.Is(err, domain.ErrOrderNotFound) {
					continue
				}
				return nil, application.NewInternalError(err)
			}

			if order.HasExternalID() || order.Status == domain.StatusFailed {
				return order, nil
			}
		}
	}
}

// retryable matches provider errors that a later attempt may get past.
func retryable(err error) bool {
	var r interface{ IsRetryable() bool }
	return errors.As(err, &r) && r.IsRetryable()
}

func gatewayNames(gateways []application.Gateway) []string {
	names := make([]string, 0, len(gateways))
	for _, g := range gateways {
		names = append(names, g.Name())
	}
	return names
}
