package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

// toDomainOrder maps a db row to the domain order
func toDomainOrder(m OrderModel) (*domain.Order, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return nil, fmt.Errorf("order %d amount %q: %w", m.ID, m.Amount, err)
	}

	payload, err := domain.ParseGatewayPayload(m.GatewayPayload)
	if err != nil {
		return nil, fmt.Errorf("order %d payload: %w", m.ID, err)
	}

	buyer := domain.AnonymousBuyer
	if m.UserID != nil {
		buyer = domain.BuyerID(*m.UserID)
	}

	return &domain.Order{
		ID:                    m.ID,
		Fingerprint:           m.Fingerprint,
		BuyerID:               buyer,
		CourseID:              m.CourseID,
		Gateway:               m.Gateway,
		Amount:                amount,
		Currency:              m.Currency,
		Status:                domain.OrderStatus(m.Status),
		ExternalID:            m.ExternalID,
		Payload:               payload,
		EntitlementsGrantedAt: m.EntitlementsGrantedAt,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}, nil
}

// toOrderModel maps the domain order to a db row
func toOrderModel(o *domain.Order) (*OrderModel, error) {
	payload, err := o.Payload.Encode()
	if err != nil {
		return nil, err
	}

	var userID *int64
	if !o.BuyerID.IsAnonymous() {
		id := int64(o.BuyerID)
		userID = &id
	}

	return &OrderModel{
		ID:                    o.ID,
		Fingerprint:           o.Fingerprint,
		UserID:                userID,
		CourseID:              o.CourseID,
		Gateway:               o.Gateway,
		ExternalID:            o.ExternalID,
		Amount:                o.Amount.StringFixed(2),
		Currency:              o.Currency,
		Status:                string(o.Status),
		GatewayPayload:        payload,
		EntitlementsGrantedAt: o.EntitlementsGrantedAt,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}, nil
}

func toDomainCourse(m CourseModel) (*domain.Course, error) {
	price, err := decimal.NewFromString(m.Price)
	if err != nil {
		return nil, fmt.Errorf("course %d price %q: %w", m.CourseID, m.Price, err)
	}

	var gateways []string
	if len(m.EnabledGateways) > 0 {
		if err := json.Unmarshal(m.EnabledGateways, &gateways); err != nil {
			return nil, fmt.Errorf("course %d enabled gateways: %w", m.CourseID, err)
		}
	}

	return &domain.Course{
		ID:    m.CourseID,
		Key:   m.Key,
		Title: m.Title,
		Price: domain.Money{
			Amount:   price,
			Currency: m.Currency,
		},
		Status:          domain.CourseStatus(m.Status),
		Purchasable:     m.Purchasable,
		Visibility:      m.Visibility,
		PaymentType:     domain.PaymentType(m.PaymentType),
		EnabledGateways: gateways,
		Entitlements:    m.Entitlements,
	}, nil
}
