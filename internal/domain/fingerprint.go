package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Fingerprint derives the idempotency key of a purchase attempt. Attempts by
// the same buyer for the same course through the same gateway on the same UTC
// day share a fingerprint.
func Fingerprint(buyer BuyerID, courseID int64, gateway string, at time.Time) string {
	raw := fmt.Sprintf("%d-%d-%s-%s", buyer, courseID, gateway, at.UTC().Format("20060102"))
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
