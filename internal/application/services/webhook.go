package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
)

// WebhookService processes provider notifications. It never reports an error
// to the caller: the provider must always receive an acknowledgment.
type WebhookService struct {
	orders    application.OrderRepository
	registry  *application.Registry
	completer *OrderCompleter
	logger    *slog.Logger
}

func NewWebhookService(
	orders application.OrderRepository,
	registry *application.Registry,
	completer *OrderCompleter,
	logger *slog.Logger,
) *WebhookService {
	return &WebhookService{
		orders:    orders,
		registry:  registry,
		completer: completer,
		logger:    logger,
	}
}

// WebhookOutcome describes what a delivery did. It is informational only.
type WebhookOutcome string

const (
	OutcomeIgnored          WebhookOutcome = "ignored"
	OutcomeUnmatched        WebhookOutcome = "unmatched"
	OutcomeAlreadyCompleted WebhookOutcome = "already_completed"
	OutcomeCompleted        WebhookOutcome = "completed"
	OutcomeFailed           WebhookOutcome = "failed"
)

func (s *WebhookService) Handle(ctx context.Context, gatewayName string, raw []byte) WebhookOutcome {
	gateway, ok := s.registry.Get(gatewayName)
	if !ok {
		s.logger.Warn("webhook for unknown gateway", "gateway", gatewayName)
		return OutcomeIgnored
	}

	event, err := gateway.ParseWebhookEvent(raw)
	if err != nil {
		s.logger.Warn("webhook event dropped", "gateway", gatewayName, "error", err)
		return OutcomeIgnored
	}

	logger := s.logger.With(
		"gateway", gatewayName,
		"event_id", event.ID,
		"event_kind", event.Kind,
		"external_id", event.ExternalOrderID,
	)

	order, err := s.orders.FindByExternalID(ctx, event.ExternalOrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			logger.Warn("webhook for unknown order")
			return OutcomeUnmatched
		}
		logger.Error("webhook order lookup failed", "error", err)
		return OutcomeFailed
	}

	if order.IsCompleted() {
		logger.Debug("webhook for completed order", "order_id", order.ID)
		return OutcomeAlreadyCompleted
	}

	if order.IsTerminal() {
		logger.Error("webhook for closed order", "order_id", order.ID, "status", order.Status)
		return OutcomeFailed
	}

	payload := event.Payload
	if event.Kind == application.EventOrderApproved {
		// Approval is not settlement. Capture first and complete only on a
		// settled capture.
		capture, err := gateway.CaptureRemoteOrder(ctx, event.ExternalOrderID)
		if err != nil {
			if current, findErr := s.orders.FindByID(ctx, order.ID); findErr == nil && current.IsCompleted() {
				return OutcomeAlreadyCompleted
			}
			logger.Error("webhook capture failed", "order_id", order.ID, "error", err)
			return OutcomeFailed
		}
		payload = capture.Payload
	}

	result, err := s.completer.Complete(ctx, order.ID, event.ExternalOrderID, payload)
	if err != nil {
		logger.Error("webhook completion failed", "order_id", order.ID, "error", err)
		return OutcomeFailed
	}
	if !result.Transitioned {
		return OutcomeAlreadyCompleted
	}

	logger.Info("order completed from webhook", "order_id", order.ID)
	return OutcomeCompleted
}
