package handlers

import (
	"fmt"
	"net/http"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest/middleware"
	"github.com/oapi-codegen/runtime"
)

// ListOrdersParams are the query parameters of ListOrders.
type ListOrdersParams struct {
	Status   *string
	CourseID *int64
	Limit    *int
}

// GetOrder godoc
//
//	@Summary	Get one of the buyer's orders
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		orderId	path		int	true	"Order id"
//	@Success	200		{object}	rest.SuccessResponse{data=rest.Order}
//	@Failure	404		{object}	rest.ErrorResponse
//	@Router		/v1/orders/{orderId} [get]
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	var orderID int64
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", r.PathValue("orderId"), &orderID, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil || orderID <= 0 {
		// a malformed id can never name an order
		h.fail(w, r, application.NewOrderNotFoundError())
		return
	}

	order, err := h.queryService.GetOrder(r.Context(), middleware.BuyerFromContext(r.Context()), orderID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rest.WriteSuccess(w, http.StatusOK, rest.ToAPIOrder(order))
}

// ListOrders godoc
//
//	@Summary	List the buyer's orders
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		status		query		string	false	"Order status"
//	@Param		course_id	query		int		false	"Course id"
//	@Param		limit		query		int		false	"Page size"
//	@Success	200			{object}	rest.SuccessResponse{data=[]rest.Order}
//	@Failure	400			{object}	rest.ErrorResponse
//	@Router		/v1/orders [get]
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	var params ListOrdersParams
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "status", query, &params.Status); err != nil {
		h.fail(w, r, application.NewValidationError(fmt.Sprintf("invalid status: %v", err)))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "course_id", query, &params.CourseID); err != nil {
		h.fail(w, r, application.NewValidationError(fmt.Sprintf("invalid course_id: %v", err)))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		h.fail(w, r, application.NewValidationError(fmt.Sprintf("invalid limit: %v", err)))
		return
	}

	buyer := middleware.BuyerFromContext(r.Context())
	filter := application.OrderFilter{
		BuyerID:  &buyer,
		CourseID: params.CourseID,
	}
	if params.Status != nil {
		status := domain.OrderStatus(*params.Status)
		filter.Status = &status
	}
	if params.Limit != nil {
		filter.Limit = *params.Limit
	}

	orders, err := h.queryService.ListOrders(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rest.WriteSuccess(w, http.StatusOK, rest.ToAPIOrders(orders))
}
