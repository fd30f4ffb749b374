package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/course-checkout/internal/domain"
)

// LogNotifier records completed orders in the audit log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "audit")}
}

func (n *LogNotifier) OrderCompleted(ctx context.Context, order *domain.Order) {
	attrs := []any{
		"order_id", order.ID,
		"buyer_id", order.BuyerID,
		"course_id", order.CourseID,
		"gateway", order.Gateway,
		"amount", order.Price().Value(),
		"currency", order.Currency,
	}
	if order.ExternalID != nil {
		attrs = append(attrs, "external_id", *order.ExternalID)
	}
	n.logger.InfoContext(ctx, "order_completed", attrs...)
}
