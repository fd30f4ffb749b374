package handlers

import (
	"io"
	"net/http"

	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest/middleware"
)

// ReceiveWebhook godoc
//
//	@Summary	Receive a payment gateway notification
//	@Tags		webhooks
//	@Accept		json
//	@Produce	json
//	@Param		gateway	path		string	true	"Gateway name"
//	@Success	200		{object}	rest.SuccessResponse
//	@Router		/v1/webhooks/{gateway} [post]
func (h *Handlers) ReceiveWebhook(w http.ResponseWriter, r *http.Request) {
	gateway := r.PathValue("gateway")

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("failed to read webhook body", "gateway", gateway, "error", err)
	} else {
		outcome := h.webhookService.Handle(r.Context(), gateway, raw)
		h.logger.Debug("webhook handled",
			"gateway", gateway,
			"outcome", outcome,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
	}

	// providers redeliver on anything but 2xx
	rest.WriteSuccess(w, http.StatusOK, nil)
}
