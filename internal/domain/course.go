package domain

import (
	"slices"
	"strconv"
)

type CourseStatus string

const (
	CourseActive   CourseStatus = "active"
	CourseInactive CourseStatus = "inactive"
)

const VisibilityLive = "live"

type PaymentType string

const (
	PaymentPaid PaymentType = "paid"
	PaymentFree PaymentType = "free"
)

// Course is the commerce-facing projection of a catalog course.
type Course struct {
	ID              int64
	Key             string
	Title           string
	Price           Money
	Status          CourseStatus
	Purchasable     bool
	Visibility      string
	PaymentType     PaymentType
	EnabledGateways []string
	Entitlements    []string
}

func (c *Course) IsPurchasable() bool {
	return c.Status == CourseActive && c.Purchasable && c.Visibility == VisibilityLive
}

// AllowsGateway reports whether the course can be bought through gateway.
func (c *Course) AllowsGateway(gateway string) bool {
	return slices.Contains(c.EnabledGateways, gateway)
}

// EntitlementIDs returns the configured entitlements, or the course id when
// none are configured.
func (c *Course) EntitlementIDs() []string {
	if len(c.Entitlements) > 0 {
		return slices.Clone(c.Entitlements)
	}
	return []string{strconv.FormatInt(c.ID, 10)}
}
