package services

import (
	"context"
	"errors"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

type QueryService struct {
	orders application.OrderRepository
}

func NewQueryService(orders application.OrderRepository) *QueryService {
	return &QueryService{orders: orders}
}

// GetOrder returns one of the buyer's orders.
func (s *QueryService) GetOrder(ctx context.Context, buyer domain.BuyerID, orderID int64) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, application.NewOrderNotFoundError()
		}
		return nil, application.NewInternalError(err)
	}
	if !order.BelongsTo(buyer) {
		return nil, application.NewOrderNotFoundError()
	}
	return order, nil
}

// ListOrders returns orders newest first.
func (s *QueryService) ListOrders(ctx context.Context, filter application.OrderFilter) ([]*domain.Order, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, application.NewValidationError("unknown order status " + string(*filter.Status))
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultListLimit
	case filter.Limit > maxListLimit:
		filter.Limit = maxListLimit
	}

	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return orders, nil
}
