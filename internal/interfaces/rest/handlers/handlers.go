package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/application/services"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest/middleware"
	"github.com/go-playground/validator"
)

const maxBodyBytes = 1 << 20

// Handlers serves the checkout REST surface.
type Handlers struct {
	createService  *services.CreateOrderService
	captureService *services.CaptureService
	webhookService *services.WebhookService
	queryService   *services.QueryService
	validate       *validator.Validate
	logger         *slog.Logger
}

func NewHandlers(
	createService *services.CreateOrderService,
	captureService *services.CaptureService,
	webhookService *services.WebhookService,
	queryService *services.QueryService,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		createService:  createService,
		captureService: captureService,
		webhookService: webhookService,
		queryService:   queryService,
		validate:       validator.New(),
		logger:         logger,
	}
}

// RouteOptions are the per-route middlewares the router applies. Timeout
// wraps buyer routes only. WebhookTimeout bounds the work behind a webhook
// without touching its acknowledgement.
type RouteOptions struct {
	Auth           func(http.Handler) http.Handler
	RateLimit      func(http.Handler) http.Handler
	Validate       func(http.Handler) http.Handler
	Timeout        func(http.Handler) http.Handler
	WebhookTimeout time.Duration
}

// Register mounts the API on mux. The webhook route is neither authenticated,
// rate limited nor subject to the request timeout response.
func (h *Handlers) Register(mux *http.ServeMux, opts RouteOptions) {
	buyerRoute := func(fn http.HandlerFunc, validated bool) http.Handler {
		var handler http.Handler = fn
		if validated && opts.Validate != nil {
			handler = opts.Validate(handler)
		}
		if opts.Auth != nil {
			handler = opts.Auth(handler)
		}
		if opts.RateLimit != nil {
			handler = opts.RateLimit(handler)
		}
		if opts.Timeout != nil {
			handler = opts.Timeout(handler)
		}
		return handler
	}

	mux.Handle("POST /v1/orders", buyerRoute(h.CreateOrder, true))
	mux.Handle("POST /v1/orders/capture", buyerRoute(h.CaptureOrder, true))
	mux.Handle("GET /v1/orders/{orderId}", buyerRoute(h.GetOrder, false))
	mux.Handle("GET /v1/orders", buyerRoute(h.ListOrders, false))
	mux.Handle("POST /v1/webhooks/{gateway}", boundContext(opts.WebhookTimeout, http.HandlerFunc(h.ReceiveWebhook)))
}

// boundContext cancels the request context after d. The handler itself
// decides what to write once the context is done.
func boundContext(d time.Duration, next http.Handler) http.Handler {
	if d <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// decodeBody reads a JSON body into dst and checks its validate tags.
func (h *Handlers) decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return application.NewValidationError("request body is required")
		}
		return application.NewValidationError("request body is not valid JSON")
	}
	if err := h.validate.Struct(dst); err != nil {
		return application.NewValidationError(err.Error())
	}
	return nil
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	rest.WriteError(w, err, h.logger.With("request_id", middleware.RequestIDFromContext(r.Context())))
}

// ValidationFailed writes a request that does not match the API description.
func ValidationFailed(w http.ResponseWriter, r *http.Request, err error) {
	rest.WriteErrorCode(w, http.StatusBadRequest, application.ErrCodeValidation, err.Error())
}
