package testhelpers

import (
	"io"
	"log/slog"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultBuyer   domain.BuyerID = 42
	DefaultGateway                = "paypal"
)

// DiscardLogger is a logger for tests that do not inspect output.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DefaultCourse returns a live, purchasable course sold through paypal.
func DefaultCourse() *domain.Course {
	return &domain.Course{
		ID:    7,
		Key:   "go-fundamentals",
		Title: "Go Fundamentals",
		Price: domain.Money{
			Amount:   decimal.RequireFromString("49.99"),
			Currency: "GBP",
		},
		Status:          domain.CourseActive,
		Purchasable:     true,
		Visibility:      domain.VisibilityLive,
		PaymentType:     domain.PaymentPaid,
		EnabledGateways: []string{DefaultGateway},
	}
}

// ProcessingOrder returns an order waiting for capture of externalID.
func ProcessingOrder(buyer domain.BuyerID, courseID int64, externalID string) *domain.Order {
	now := time.Now().UTC()
	return &domain.Order{
		Fingerprint: domain.Fingerprint(buyer, courseID, DefaultGateway, now),
		BuyerID:     buyer,
		CourseID:    courseID,
		Gateway:     DefaultGateway,
		Amount:      decimal.RequireFromString("49.99"),
		Currency:    "GBP",
		Status:      domain.StatusProcessing,
		ExternalID:  &externalID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CompletedOrder returns an order whose entitlements were already granted.
func CompletedOrder(buyer domain.BuyerID, courseID int64, externalID string) *domain.Order {
	o := ProcessingOrder(buyer, courseID, externalID)
	o.Status = domain.StatusCompleted
	granted := time.Now().UTC()
	o.EntitlementsGrantedAt = &granted
	return o
}
