package postgres

import (
	"time"
)

// OrderModel mirrors a row of the orders table. Amount is read as text so it
// round-trips through decimal without loss.
type OrderModel struct {
	ID                    int64
	Fingerprint           string
	UserID                *int64
	CourseID              int64
	Gateway               string
	ExternalID            *string
	Amount                string
	Currency              string
	Status                string
	GatewayPayload        []byte
	EntitlementsGrantedAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type CourseModel struct {
	CourseID        int64
	Key             string
	Title           string
	Price           string
	Currency        string
	Status          string
	Purchasable     bool
	Visibility      string
	PaymentType     string
	EnabledGateways []byte
	Entitlements    []string
}
