package paypal

import (
	"encoding/json"
	"fmt"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type createOrderRequest struct {
	Intent             string             `json:"intent"`
	PurchaseUnits      []purchaseUnit     `json:"purchase_units"`
	ApplicationContext applicationContext `json:"application_context"`
}

type purchaseUnit struct {
	ReferenceID string `json:"reference_id"`
	Description string `json:"description,omitempty"`
	CustomID    string `json:"custom_id,omitempty"`
	Amount      amount `json:"amount"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type applicationContext struct {
	BrandName   string `json:"brand_name,omitempty"`
	LandingPage string `json:"landing_page"`
	UserAction  string `json:"user_action"`
	ReturnURL   string `json:"return_url,omitempty"`
	CancelURL   string `json:"cancel_url,omitempty"`
}

// orderResponse is the subset of an Orders v2 document the gateway reads.
// The full body is kept separately as the audit payload.
type orderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		ReferenceID string `json:"reference_id"`
		Payments    struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// settled reports whether the order and every capture on it are COMPLETED.
// An order without captures is not settled.
func (o *orderResponse) settled() (bool, string) {
	if o.Status != statusCompleted {
		return false, "order status " + o.Status
	}
	captures := 0
	for _, pu := range o.PurchaseUnits {
		for _, c := range pu.Payments.Captures {
			captures++
			if c.Status != statusCompleted {
				return false, fmt.Sprintf("capture %s status %s", c.ID, c.Status)
			}
		}
	}
	if captures == 0 {
		return false, "no captures"
	}
	return true, ""
}

func (o *orderResponse) captureID() string {
	for _, pu := range o.PurchaseUnits {
		for _, c := range pu.Payments.Captures {
			if c.ID != "" {
				return c.ID
			}
		}
	}
	return ""
}

type webhookEnvelope struct {
	ID        string          `json:"id"`
	EventType string          `json:"event_type"`
	Resource  json.RawMessage `json:"resource"`
}

type webhookResource struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	SupplementaryData struct {
		RelatedIDs struct {
			OrderID string `json:"order_id"`
		} `json:"related_ids"`
	} `json:"supplementary_data"`
}
