// Package paypal is the PayPal Orders v2 implementation of the checkout
// gateway.
package paypal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/google/uuid"
)

const (
	Name = "paypal"

	statusCompleted = "COMPLETED"

	ErrCodeCaptureNotCompleted = "CAPTURE_NOT_COMPLETED"
)

// requestIDNamespace scopes the PayPal-Request-Id values derived from
// fingerprints, so a repeated create maps onto the same remote order.
var requestIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://course-checkout/paypal/orders"))

type Gateway struct {
	settings   Settings
	httpClient *http.Client
	tokens     *tokenSource
	logger     *slog.Logger
}

var _ application.Gateway = (*Gateway)(nil)

func New(settings Settings, logger *slog.Logger) *Gateway {
	httpClient := &http.Client{Timeout: settings.Timeout}
	return &Gateway{
		settings:   settings,
		httpClient: httpClient,
		tokens:     newTokenSource(settings, httpClient),
		logger:     logger.With("gateway", Name),
	}
}

func (g *Gateway) Name() string    { return Name }
func (g *Gateway) IsEnabled() bool { return g.settings.Enabled }
func (g *Gateway) IsSandbox() bool { return g.settings.Sandbox }
func (g *Gateway) ValidateSettings() error {
	return g.settings.Validate()
}

func (g *Gateway) CreateRemoteOrder(ctx context.Context, req application.RemoteOrderRequest) (*application.RemoteOrder, error) {
	body := createOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			ReferenceID: req.Reference,
			Description: req.Course.Title,
			CustomID:    strconv.FormatInt(req.Course.ID, 10),
			Amount: amount{
				CurrencyCode: req.Price.Currency,
				Value:        req.Price.Value(),
			},
		}},
		ApplicationContext: applicationContext{
			BrandName:   g.settings.BrandName,
			LandingPage: "NO_PREFERENCE",
			UserAction:  "PAY_NOW",
			ReturnURL:   g.settings.ReturnURL,
			CancelURL:   g.settings.CancelURL,
		},
	}

	opts := requestOptions{
		requestID: uuid.NewSHA1(requestIDNamespace, []byte(req.Reference)).String(),
	}

	resp, raw, err := sendRequest[createOrderRequest, orderResponse](g, ctx, http.MethodPost, "/v2/checkout/orders", &body, opts)
	if err != nil {
		return nil, g.providerError("create order", err)
	}
	if resp.ID == "" {
		return nil, application.NewRemoteFailureError("PayPal did not return an order id", nil)
	}

	payload, err := domain.ParseGatewayPayload(raw)
	if err != nil {
		g.logger.Warn("unparseable create order response", "external_id", resp.ID, "error", err)
	}

	g.logger.Debug("remote order created",
		"external_id", resp.ID,
		"status", resp.Status,
		"reference", req.Reference,
	)

	return &application.RemoteOrder{
		ExternalID: resp.ID,
		Status:     resp.Status,
		Payload:    payload,
	}, nil
}

// CaptureRemoteOrder captures an approved order. It succeeds only when the
// order and all of its captures are COMPLETED. When PayPal reports the order
// as already captured, the order is fetched and judged the same way.
func (g *Gateway) CaptureRemoteOrder(ctx context.Context, externalID string) (*application.CaptureResult, error) {
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", url.PathEscape(externalID))
	empty := struct{}{}

	resp, raw, err := sendRequest[struct{}, orderResponse](g, ctx, http.MethodPost, path, &empty, requestOptions{})
	if apiErr, ok := IsAPIError(err); ok && apiErr.Issue == issueOrderAlreadyCaptured {
		g.logger.Info("order already captured, fetching it", "external_id", externalID, "debug_id", apiErr.DebugID)
		orderPath := fmt.Sprintf("/v2/checkout/orders/%s", url.PathEscape(externalID))
		resp, raw, err = sendRequest[struct{}, orderResponse](g, ctx, http.MethodGet, orderPath, nil, requestOptions{})
	}
	if err != nil {
		return nil, g.providerError("capture order", err)
	}

	if ok, reason := resp.settled(); !ok {
		g.logger.Warn("capture not completed",
			"external_id", externalID,
			"reason", reason,
		)
		svcErr := application.NewRemoteFailureError("Payment not completed", fmt.Errorf("paypal order %s: %s", externalID, reason))
		svcErr.Code = ErrCodeCaptureNotCompleted
		return nil, svcErr
	}

	payload, err := domain.ParseGatewayPayload(raw)
	if err != nil {
		g.logger.Warn("unparseable capture response", "external_id", externalID, "error", err)
	}

	id := resp.ID
	if id == "" {
		id = externalID
	}

	return &application.CaptureResult{
		ExternalID: id,
		CaptureID:  resp.captureID(),
		Status:     resp.Status,
		Payload:    payload,
	}, nil
}

// providerError keeps AuthFailed as is and turns everything else into a
// RemoteFailure carrying PayPal's message.
func (g *Gateway) providerError(op string, err error) error {
	if application.IsKind(err, application.KindAuthFailed) {
		return err
	}

	if apiErr, ok := IsAPIError(err); ok {
		g.logger.Error("paypal request failed",
			"op", op,
			"name", apiErr.Name,
			"status_code", apiErr.StatusCode,
			"debug_id", apiErr.DebugID,
		)
		return application.NewRemoteFailureError(apiErr.Message, apiErr)
	}

	return application.NewRemoteFailureError(fmt.Sprintf("PayPal %s failed", op), err)
}
