package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// verifySignature recomputes hex(HMAC-SHA256(orderID + "|" + paymentID)) with
// the shared secret and compares it in constant time against the supplied
// signature. True only on exact match.
func verifySignature(secret, orderID, paymentID, signature string) bool {
	if secret == "" || orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
