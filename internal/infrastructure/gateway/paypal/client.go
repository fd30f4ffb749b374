package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type requestOptions struct {
	requestID string
}

// sendRequest performs an authenticated JSON call and decodes the answer into
// Resp. The raw body is returned alongside for audit storage.
func sendRequest[Req any, Resp any](c *Gateway, ctx context.Context, method, path string, reqBody *Req, opts requestOptions) (*Resp, []byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, nil, err
	}

	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.settings.APIBase()+path, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if opts.requestID != "" {
		httpReq.Header.Set("PayPal-Request-Id", opts.requestID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, nil, &APIError{Name: "TRANSPORT_ERROR", Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &APIError{Name: "TRANSPORT_ERROR", Message: err.Error(), StatusCode: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, body, decodeAPIError(resp, body)
	}

	var out Resp
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, body, fmt.Errorf("error decoding json response: %w", err)
	}

	return &out, body, nil
}

func decodeAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		DebugID:    resp.Header.Get("Paypal-Debug-Id"),
	}

	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		apiErr.Name = http.StatusText(resp.StatusCode)
		apiErr.Message = string(body)
		return apiErr
	}

	apiErr.Name = parsed.Name
	apiErr.Message = parsed.Message
	if len(parsed.Details) > 0 {
		apiErr.Issue = parsed.Details[0].Issue
	}
	if parsed.DebugID != "" {
		apiErr.DebugID = parsed.DebugID
	}
	// oauth endpoints use the RFC 6749 shape
	if apiErr.Name == "" {
		apiErr.Name = parsed.Error
	}
	if apiErr.Message == "" {
		apiErr.Message = parsed.ErrorDescription
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
