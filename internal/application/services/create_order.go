package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
)

type CreateOrderService struct {
	orders   application.OrderRepository
	courses  application.CourseCatalog
	registry *application.Registry
	locker   application.Locker
	logger   *slog.Logger

	now          func() time.Time
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewCreateOrderService(
	orders application.OrderRepository,
	courses application.CourseCatalog,
	registry *application.Registry,
	locker application.Locker,
	logger *slog.Logger,
) *CreateOrderService {
	return &CreateOrderService{
		orders:       orders,
		courses:      courses,
		registry:     registry,
		locker:       locker,
		logger:       logger,
		now:          time.Now,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// WithClock replaces the clock used to bucket fingerprints by day.
func (s *CreateOrderService) WithClock(now func() time.Time) *CreateOrderService {
	s.now = now
	return s
}

// Create opens a purchase attempt for a course and returns the local order id
// together with the gateway's order id. Every precondition is checked before
// the gateway is contacted.
func (s *CreateOrderService) Create(ctx context.Context, cmd CreateOrderCommand) (*CreateOrderResult, error) {
	course, gateway, price, err := s.checkPreconditions(ctx, cmd)
	if err != nil {
		return nil, err
	}

	fingerprint := domain.Fingerprint(cmd.Buyer, course.ID, gateway.Name(), s.now())

	release, acquired, err := s.locker.Acquire(ctx, "checkout:order:"+fingerprint)
	if err != nil {
		s.logger.Warn("fingerprint lock unavailable, continuing unlocked", "fingerprint", fingerprint, "error", err)
		acquired = true
	}
	defer release()

	if !acquired {
		order, err := waitForOrder(ctx, s.orders, fingerprint, s.pollInterval, s.pollTimeout)
		if err != nil {
			return nil, err
		}
		return resultFromExisting(order)
	}

	order, err := s.reserve(ctx, cmd.Buyer, course, gateway.Name(), price, fingerprint)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusPending {
		return resultFromExisting(order)
	}

	return s.openRemoteOrder(ctx, order, course, gateway, price)
}

func (s *CreateOrderService) checkPreconditions(
	ctx context.Context,
	cmd CreateOrderCommand,
) (*domain.Course, application.Gateway, domain.Money, error) {
	if strings.TrimSpace(cmd.Course) == "" {
		return nil, nil, domain.Money{}, application.NewValidationError("course is required")
	}
	if strings.TrimSpace(cmd.Gateway) == "" {
		return nil, nil, domain.Money{}, application.NewValidationError("gateway is required")
	}

	course, err := s.courses.Resolve(ctx, strings.TrimSpace(cmd.Course))
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return nil, nil, domain.Money{}, application.NewNotFoundError(application.ErrCodeCourseNotFound, "Course not found")
		}
		return nil, nil, domain.Money{}, application.NewInternalError(err)
	}
	if !course.IsPurchasable() {
		return nil, nil, domain.Money{}, application.NewCourseUnavailableError()
	}

	gateway, ok := s.registry.Get(cmd.Gateway)
	if !ok {
		return nil, nil, domain.Money{}, application.NewNotFoundError(application.ErrCodeGatewayNotFound, "Payment gateway not found")
	}
	if !gateway.IsEnabled() {
		return nil, nil, domain.Money{}, application.NewGatewayUnavailableError(gateway.Name(), nil)
	}
	if err := gateway.ValidateSettings(); err != nil {
		return nil, nil, domain.Money{}, application.NewGatewayUnavailableError(gateway.Name(), err)
	}
	if !course.AllowsGateway(gateway.Name()) {
		return nil, nil, domain.Money{}, application.NewGatewayNotAllowedError(gateway.Name(), gatewayNames(s.registry.AvailableFor(course)))
	}

	price, err := domain.NewMoney(course.Price.Amount, course.Price.Currency)
	if err != nil {
		svcErr := application.NewValidationError("course price is invalid")
		svcErr.Err = err
		return nil, nil, domain.Money{}, svcErr
	}

	return course, gateway, price, nil
}

// reserve returns the order holding fingerprint, inserting a pending
// reservation when none exists yet.
func (s *CreateOrderService) reserve(
	ctx context.Context,
	buyer domain.BuyerID,
	course *domain.Course,
	gateway string,
	price domain.Money,
	fingerprint string,
) (*domain.Order, error) {
	existing, err := s.orders.FindByFingerprint(ctx, fingerprint)
	if err == nil {
		s.logger.Debug("reusing order for fingerprint", "order_id", existing.ID, "status", existing.Status)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrOrderNotFound) {
		return nil, application.NewInternalError(err)
	}

	order, err := domain.NewOrder(fingerprint, buyer, course.ID, gateway, price)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	id, inserted, err := s.orders.InsertIfAbsent(ctx, order)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if !inserted {
		winner, err := s.orders.FindByID(ctx, id)
		if err != nil {
			return nil, application.NewInternalError(err)
		}
		return winner, nil
	}

	order.ID = id
	return order, nil
}

func (s *CreateOrderService) openRemoteOrder(
	ctx context.Context,
	order *domain.Order,
	course *domain.Course,
	gateway application.Gateway,
	price domain.Money,
) (*CreateOrderResult, error) {
	remote, err := gateway.CreateRemoteOrder(ctx, application.RemoteOrderRequest{
		Reference: order.Fingerprint,
		Course:    course,
		Buyer:     order.BuyerID,
		Price:     price,
	})
	if err != nil {
		s.recordCreateFailure(ctx, order, err)
		return nil, err
	}

	externalID := remote.ExternalID
	swapped, err := s.orders.CompareAndSetStatus(ctx, order.ID, domain.StatusPending, domain.StatusProcessing, &externalID, remote.Payload)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if !swapped {
		current, err := s.orders.FindByID(ctx, order.ID)
		if err != nil {
			return nil, application.NewInternalError(err)
		}
		if current.ExternalIDMismatch(externalID) {
			s.logger.Warn("remote order superseded by concurrent create",
				"order_id", order.ID,
				"kept_external_id", *current.ExternalID,
				"orphaned_external_id", externalID,
			)
		}
		return resultFromExisting(current)
	}

	s.logger.Info("order created",
		"order_id", order.ID,
		"external_id", externalID,
		"gateway", gateway.Name(),
		"course_id", course.ID,
		"amount", price.Value(),
		"currency", price.Currency,
	)

	return &CreateOrderResult{
		OrderID:         order.ID,
		ExternalOrderID: externalID,
		Gateway:         gateway.Name(),
		Status:          domain.StatusProcessing,
	}, nil
}

// recordCreateFailure marks the reservation failed when the provider
// rejected the order outright. Auth and transient failures leave it pending
// so the buyer can try again.
func (s *CreateOrderService) recordCreateFailure(ctx context.Context, order *domain.Order, err error) {
	s.logger.Error("remote order creation failed",
		"order_id", order.ID,
		"gateway", order.Gateway,
		"error", err,
	)

	if !application.IsKind(err, application.KindRemoteFailure) || retryable(err) {
		return
	}

	payload := domain.GatewayPayload{"error": err.Error()}
	if _, casErr := s.orders.CompareAndSetStatus(ctx, order.ID, domain.StatusPending, domain.StatusFailed, nil, payload); casErr != nil {
		s.logger.Error("failed to mark order failed", "order_id", order.ID, "error", casErr)
	}
}

func resultFromExisting(order *domain.Order) (*CreateOrderResult, error) {
	switch {
	case order.Status == domain.StatusFailed:
		return nil, application.NewOrderFailedError()
	case order.HasExternalID():
		return &CreateOrderResult{
			OrderID:         order.ID,
			ExternalOrderID: *order.ExternalID,
			Gateway:         order.Gateway,
			Status:          order.Status,
		}, nil
	default:
		return nil, application.NewInternalError(fmt.Errorf("order %d has no gateway order in status %s", order.ID, order.Status))
	}
}
