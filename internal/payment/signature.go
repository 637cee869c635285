package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns hex(HMAC-SHA256(secret, "{intentID}|{transactionID}"))
func Sign(secret, intentID, transactionID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(intentID + "|" + transactionID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the signature and compares it byte for byte
func VerifySignature(secret, intentID, transactionID, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := Sign(secret, intentID, transactionID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
