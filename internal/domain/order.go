// Package domain holds the checkout order, its lifecycle and the course
// projection it is bought against.
package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the current state of an order in its lifecycle
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusFailed     OrderStatus = "failed"
	StatusRefunded   OrderStatus = "refunded"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// BuyerID identifies the purchasing user. Zero means anonymous.
type BuyerID int64

const AnonymousBuyer BuyerID = 0

func (b BuyerID) IsAnonymous() bool {
	return b == AnonymousBuyer
}

type Order struct {
	ID          int64
	Fingerprint string
	BuyerID     BuyerID
	CourseID    int64
	Gateway     string
	Amount      decimal.Decimal
	Currency    string
	Status      OrderStatus

	ExternalID *string
	Payload    GatewayPayload

	EntitlementsGrantedAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewOrder returns a pending reservation for the given fingerprint.
func NewOrder(fingerprint string, buyer BuyerID, courseID int64, gateway string, price Money) (*Order, error) {
	if fingerprint == "" {
		return nil, NewMissingRequiredFieldError("fingerprint")
	}
	if courseID <= 0 {
		return nil, NewMissingRequiredFieldError("course_id")
	}
	if gateway == "" {
		return nil, NewMissingRequiredFieldError("gateway")
	}

	now := time.Now().UTC()
	return &Order{
		Fingerprint: fingerprint,
		BuyerID:     buyer,
		CourseID:    courseID,
		Gateway:     gateway,
		Amount:      price.Amount,
		Currency:    price.Currency,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CanTransitionTo reports whether the lifecycle permits moving to target.
func (o *Order) CanTransitionTo(target OrderStatus) error {
	switch o.Status {
	case StatusPending:
		return o.allow(target, StatusProcessing, StatusCompleted, StatusFailed)
	case StatusProcessing:
		return o.allow(target, StatusCompleted, StatusFailed)
	case StatusCompleted:
		return o.allow(target, StatusRefunded)
	}
	return NewInvalidTransitionError(o.Status, target)
}

func (o *Order) allow(target OrderStatus, allowed ...OrderStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(o.Status, target)
}

// IsTerminal is true for states the checkout core never leaves.
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case StatusCompleted, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

func (o *Order) IsCompleted() bool {
	return o.Status == StatusCompleted
}

func (o *Order) HasExternalID() bool {
	return o.ExternalID != nil && *o.ExternalID != ""
}

// ExternalIDMismatch is true when the order already carries a gateway id
// different from the supplied one.
func (o *Order) ExternalIDMismatch(externalID string) bool {
	return o.HasExternalID() && externalID != "" && *o.ExternalID != externalID
}

func (o *Order) BelongsTo(buyer BuyerID) bool {
	return o.BuyerID == buyer
}

func (o *Order) Price() Money {
	return Money{Amount: o.Amount, Currency: o.Currency}
}
