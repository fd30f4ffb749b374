package paypal

import (
	"encoding/json"
	"fmt"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
)

const (
	eventOrderApproved    = "CHECKOUT.ORDER.APPROVED"
	eventCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"
)

// ParseWebhookEvent extracts the PayPal order id from the two event types the
// checkout acts on. Signature verification is not performed here.
func (g *Gateway) ParseWebhookEvent(raw []byte) (*application.WebhookEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrUnrecognizedEvent, err)
	}
	if env.EventType == "" {
		return nil, fmt.Errorf("%w: missing event_type", application.ErrUnrecognizedEvent)
	}

	var res webhookResource
	if len(env.Resource) > 0 {
		if err := json.Unmarshal(env.Resource, &res); err != nil {
			return nil, fmt.Errorf("%w: resource: %v", application.ErrUnrecognizedEvent, err)
		}
	}
	related := res.SupplementaryData.RelatedIDs.OrderID

	var (
		kind    application.WebhookEventKind
		orderID string
	)
	switch env.EventType {
	case eventOrderApproved:
		kind = application.EventOrderApproved
		orderID = firstNonEmpty(res.ID, related)
	case eventCaptureCompleted:
		// resource.id is the capture id here, the order id lives in related_ids
		kind = application.EventCaptureCompleted
		orderID = firstNonEmpty(related, res.ID)
	default:
		return nil, fmt.Errorf("%w: event type %s", application.ErrUnrecognizedEvent, env.EventType)
	}

	if orderID == "" {
		return nil, fmt.Errorf("%w: %s carries no order id", application.ErrUnrecognizedEvent, env.EventType)
	}

	payload, err := domain.ParseGatewayPayload(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrUnrecognizedEvent, err)
	}

	return &application.WebhookEvent{
		ID:              env.ID,
		Kind:            kind,
		ExternalOrderID: orderID,
		Payload:         payload,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
