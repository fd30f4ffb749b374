package handlers

import (
	"net/http"

	"github.com/DanielPopoola/course-checkout/internal/application/services"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest/middleware"
)

type CreateOrderRequest struct {
	Course  string `json:"course" validate:"required"`
	Gateway string `json:"gateway" validate:"required"`
}

type CreateOrderData struct {
	OrderID         int64  `json:"order_id"`
	ExternalOrderID string `json:"external_order_id"`
	Gateway         string `json:"gateway"`
	Status          string `json:"status"`
}

// CreateOrder godoc
//
//	@Summary	Create an order and open it at the payment gateway
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		CreateOrderRequest	true	"Course and gateway"
//	@Success	201		{object}	rest.SuccessResponse{data=CreateOrderData}
//	@Failure	400		{object}	rest.ErrorResponse
//	@Failure	404		{object}	rest.ErrorResponse
//	@Failure	409		{object}	rest.ErrorResponse
//	@Failure	502		{object}	rest.ErrorResponse
//	@Router		/v1/orders [post]
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.createService.Create(r.Context(), services.CreateOrderCommand{
		Course:  req.Course,
		Gateway: req.Gateway,
		Buyer:   middleware.BuyerFromContext(r.Context()),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rest.WriteSuccess(w, http.StatusCreated, CreateOrderData{
		OrderID:         result.OrderID,
		ExternalOrderID: result.ExternalOrderID,
		Gateway:         result.Gateway,
		Status:          string(result.Status),
	})
}
