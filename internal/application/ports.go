package application

import (
	"context"
	"errors"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/domain"
)

// OrderRepository is the port for order persistence. Lookups return an error
// wrapping domain.ErrOrderNotFound when no row matches.
type OrderRepository interface {
	FindByFingerprint(ctx context.Context, fingerprint string) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindByExternalID(ctx context.Context, externalID string) (*domain.Order, error)

	// InsertIfAbsent stores the order unless its fingerprint is taken and
	// returns the id of the row now holding the fingerprint.
	InsertIfAbsent(ctx context.Context, order *domain.Order) (id int64, inserted bool, err error)

	// CompareAndSetStatus moves the order from expected to next. externalID is
	// written only if the row has none and must otherwise match. A nil payload
	// keeps the stored one. It reports false when the row was not in expected.
	CompareAndSetStatus(
		ctx context.Context,
		id int64,
		expected, next domain.OrderStatus,
		externalID *string,
		payload domain.GatewayPayload,
	) (bool, error)

	MarkEntitlementsGranted(ctx context.Context, id int64) error
	// FindUngranted lists completed orders without a grant record whose last
	// change is at least minAge old.
	FindUngranted(ctx context.Context, minAge time.Duration, limit int) ([]*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
}

type OrderFilter struct {
	BuyerID  *domain.BuyerID
	CourseID *int64
	Status   *domain.OrderStatus
	Gateway  *string
	Limit    int
}

// CourseCatalog resolves courses. Misses wrap domain.ErrCourseNotFound.
type CourseCatalog interface {
	// Resolve accepts a numeric course id, a numeric row id or a course key.
	Resolve(ctx context.Context, identifier string) (*domain.Course, error)
	FindByID(ctx context.Context, courseID int64) (*domain.Course, error)
}

// EntitlementGranter adds a capability to a user. Granting an entitlement the
// user already holds is a no-op.
type EntitlementGranter interface {
	Grant(ctx context.Context, userID domain.BuyerID, entitlementID, source string) error
}

type CompletionNotifier interface {
	OrderCompleted(ctx context.Context, order *domain.Order)
}

// Locker serializes work on a key across processes. release is never nil.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), acquired bool, err error)
}

// Gateway is one external payment provider.
type Gateway interface {
	Name() string
	IsEnabled() bool
	IsSandbox() bool
	ValidateSettings() error
	CreateRemoteOrder(ctx context.Context, req RemoteOrderRequest) (*RemoteOrder, error)
	// CaptureRemoteOrder succeeds only when the provider reports the funds as
	// settled.
	CaptureRemoteOrder(ctx context.Context, externalID string) (*CaptureResult, error)
	// ParseWebhookEvent returns ErrUnrecognizedEvent for anything unusable.
	ParseWebhookEvent(raw []byte) (*WebhookEvent, error)
}

var ErrUnrecognizedEvent = errors.New("unrecognized webhook event")

type RemoteOrderRequest struct {
	Reference string
	Course    *domain.Course
	Buyer     domain.BuyerID
	Price     domain.Money
}

type RemoteOrder struct {
	ExternalID string
	Status     string
	Payload    domain.GatewayPayload
}

type CaptureResult struct {
	ExternalID string
	CaptureID  string
	Status     string
	Payload    domain.GatewayPayload
}

type WebhookEventKind string

const (
	EventOrderApproved    WebhookEventKind = "order_approved"
	EventCaptureCompleted WebhookEventKind = "capture_completed"
)

type WebhookEvent struct {
	ID              string
	Kind            WebhookEventKind
	ExternalOrderID string
	Payload         domain.GatewayPayload
}
