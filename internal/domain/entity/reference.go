package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

const referencePrefix = "TXN"

// GenerateReferenceNumber derives the human-facing reference from the
// transaction id and its creation instant. The same inputs always yield
// the same reference, so a retried create can recompute it.
func GenerateReferenceNumber(transactionID string, initiatedAt time.Time) string {
	ts := initiatedAt.UTC()
	sum := sha256.Sum256([]byte(transactionID + "|" + ts.Format(time.RFC3339Nano)))
	return referencePrefix + ts.Format("20060102") + strings.ToUpper(hex.EncodeToString(sum[:])[:10])
}
