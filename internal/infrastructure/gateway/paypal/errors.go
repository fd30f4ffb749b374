package paypal

import (
	"errors"
	"fmt"
)

const issueOrderAlreadyCaptured = "ORDER_ALREADY_CAPTURED"

// APIError is a non-2xx answer from PayPal. A zero StatusCode means no
// response was received. Issue is the first entry of PayPal's details list.
type APIError struct {
	Name       string
	Message    string
	Issue      string
	DebugID    string
	StatusCode int
}

type apiErrorResponse struct {
	Name             string `json:"name"`
	Message          string `json:"message"`
	DebugID          string `json:"debug_id"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Details          []struct {
		Issue       string `json:"issue"`
		Description string `json:"description"`
	} `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paypal error [%s]: %s (status: %d, debug_id: %s)", e.Name, e.Message, e.StatusCode, e.DebugID)
}

func (e *APIError) IsRetryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
