package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
)

// CaptureService handles the buyer returning from the gateway after
// approving the payment.
type CaptureService struct {
	orders    application.OrderRepository
	registry  *application.Registry
	completer *OrderCompleter
	logger    *slog.Logger
}

func NewCaptureService(
	orders application.OrderRepository,
	registry *application.Registry,
	completer *OrderCompleter,
	logger *slog.Logger,
) *CaptureService {
	return &CaptureService{
		orders:    orders,
		registry:  registry,
		completer: completer,
		logger:    logger,
	}
}

func (s *CaptureService) Capture(ctx context.Context, cmd CaptureCommand) (*CaptureOrderResult, error) {
	externalID := strings.TrimSpace(cmd.ExternalOrderID)
	if externalID == "" || cmd.OrderID <= 0 {
		return nil, application.NewValidationError("external_order_id and order_id are required")
	}

	order, err := s.orders.FindByID(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, application.NewOrderNotFoundError()
		}
		return nil, application.NewInternalError(err)
	}

	// Someone else's order is reported as missing.
	if !order.BelongsTo(cmd.Buyer) {
		return nil, application.NewOrderNotFoundError()
	}

	if order.ExternalIDMismatch(externalID) {
		s.logger.Warn("capture rejected, transaction mismatch",
			"order_id", order.ID,
			"stored_external_id", *order.ExternalID,
			"supplied_external_id", externalID,
		)
		return nil, application.NewTransactionMismatchError(
			domain.NewTransactionMismatchError(*order.ExternalID, externalID),
		)
	}

	switch order.Status {
	case domain.StatusCompleted:
		return alreadyCompleted(order), nil
	case domain.StatusFailed, domain.StatusRefunded:
		return nil, application.NewOrderFailedError()
	}

	if !order.HasExternalID() {
		return nil, application.NewOrderNotReadyError()
	}

	gateway, ok := s.registry.Get(order.Gateway)
	if !ok {
		return nil, application.NewInternalError(fmt.Errorf("gateway %s is not registered", order.Gateway))
	}

	capture, err := gateway.CaptureRemoteOrder(ctx, externalID)
	if err != nil {
		return s.handleCaptureFailure(ctx, order, err)
	}

	completion, err := s.completer.Complete(ctx, order.ID, externalID, capture.Payload)
	if err != nil {
		return nil, err
	}

	return &CaptureOrderResult{
		OrderID:          order.ID,
		ExternalOrderID:  externalID,
		AlreadyCompleted: !completion.Transitioned,
	}, nil
}

// handleCaptureFailure leaves the order in processing. The webhook may have
// completed it while the capture call was in flight, which counts as success.
func (s *CaptureService) handleCaptureFailure(ctx context.Context, order *domain.Order, captureErr error) (*CaptureOrderResult, error) {
	current, err := s.orders.FindByID(ctx, order.ID)
	if err == nil && current.IsCompleted() {
		s.logger.Info("capture failed but order was completed concurrently",
			"order_id", order.ID,
			"error", captureErr,
		)
		return alreadyCompleted(current), nil
	}

	s.logger.Error("capture failed",
		"order_id", order.ID,
		"external_id", *order.ExternalID,
		"error", captureErr,
	)
	return nil, captureErr
}

func alreadyCompleted(order *domain.Order) *CaptureOrderResult {
	res := &CaptureOrderResult{OrderID: order.ID, AlreadyCompleted: true}
	if order.ExternalID != nil {
		res.ExternalOrderID = *order.ExternalID
	}
	return res
}
