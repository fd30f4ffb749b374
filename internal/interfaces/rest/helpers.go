package rest

import (
	"time"

	"github.com/DanielPopoola/course-checkout/internal/domain"
)

// Order is the buyer-facing view of an order. The gateway payload stays
// internal.
type Order struct {
	ID                    int64      `json:"id"`
	CourseID              int64      `json:"course_id"`
	Gateway               string     `json:"gateway"`
	ExternalOrderID       string     `json:"external_order_id,omitempty"`
	Amount                string     `json:"amount"`
	Currency              string     `json:"currency"`
	Status                string     `json:"status"`
	EntitlementsGrantedAt *time.Time `json:"entitlements_granted_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func ToAPIOrder(o *domain.Order) Order {
	out := Order{
		ID:                    o.ID,
		CourseID:              o.CourseID,
		Gateway:               o.Gateway,
		Amount:                o.Price().Value(),
		Currency:              o.Currency,
		Status:                string(o.Status),
		EntitlementsGrantedAt: o.EntitlementsGrantedAt,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
	if o.ExternalID != nil {
		out.ExternalOrderID = *o.ExternalID
	}
	return out
}

func ToAPIOrders(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToAPIOrder(o))
	}
	return out
}
