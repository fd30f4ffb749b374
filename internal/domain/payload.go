package domain

import (
	"encoding/json"
	"fmt"
)

// GatewayPayload is the last known provider document for an order, kept for
// audit. It is stored as JSON and always held parsed in memory.
type GatewayPayload map[string]any

// ParseGatewayPayload decodes a stored document. Empty input yields nil.
func ParseGatewayPayload(raw []byte) (GatewayPayload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var p GatewayPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, NewInvalidPayloadError(err)
	}
	return p, nil
}

// Encode renders the payload for storage. A nil payload encodes to nil.
func (p GatewayPayload) Encode() ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode gateway payload: %w", err)
	}
	return b, nil
}

// String returns a nested string value, or "" when any segment is missing.
func (p GatewayPayload) String(path ...string) string {
	var cur any = map[string]any(p)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[key]
	}
	s, _ := cur.(string)
	return s
}
