package handlers

import (
	"net/http"

	"github.com/DanielPopoola/course-checkout/internal/application/services"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest/middleware"
)

type CaptureOrderRequest struct {
	ExternalOrderID string `json:"external_order_id" validate:"required"`
	OrderID         int64  `json:"order_id" validate:"required,min=1"`
}

type CaptureOrderData struct {
	OrderID          int64  `json:"order_id"`
	ExternalOrderID  string `json:"external_order_id"`
	AlreadyCompleted bool   `json:"already_completed"`
}

// CaptureOrder godoc
//
//	@Summary	Capture an approved order and grant its entitlements
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		CaptureOrderRequest	true	"Order to capture"
//	@Success	200		{object}	rest.SuccessResponse{data=CaptureOrderData}
//	@Failure	400		{object}	rest.ErrorResponse
//	@Failure	404		{object}	rest.ErrorResponse
//	@Failure	502		{object}	rest.ErrorResponse
//	@Router		/v1/orders/capture [post]
func (h *Handlers) CaptureOrder(w http.ResponseWriter, r *http.Request) {
	var req CaptureOrderRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.captureService.Capture(r.Context(), services.CaptureCommand{
		ExternalOrderID: req.ExternalOrderID,
		OrderID:         req.OrderID,
		Buyer:           middleware.BuyerFromContext(r.Context()),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rest.WriteSuccess(w, http.StatusOK, CaptureOrderData{
		OrderID:          result.OrderID,
		ExternalOrderID:  result.ExternalOrderID,
		AlreadyCompleted: result.AlreadyCompleted,
	})
}
