package services

import "github.com/DanielPopoola/course-checkout/internal/domain"

type CreateOrderCommand struct {
	Course  string
	Gateway string
	Buyer   domain.BuyerID
}

type CaptureCommand struct {
	ExternalOrderID string
	OrderID         int64
	Buyer           domain.BuyerID
}

type CreateOrderResult struct {
	OrderID         int64
	ExternalOrderID string
	Gateway         string
	Status          domain.OrderStatus
}

type CaptureOrderResult struct {
	OrderID          int64
	ExternalOrderID  string
	AlreadyCompleted bool
}

type CompletionResult struct {
	Order        *domain.Order
	Transitioned bool
}
