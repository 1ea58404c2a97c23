package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignHMACSHA256Hex returns the lowercase hex HMAC-SHA256 of body under secret.
func SignHMACSHA256Hex(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMACSHA256Hex compares signature against the expected hex digest
// byte for byte in constant time. Upper-case hex does not match.
func VerifyHMACSHA256Hex(secret, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	expected := SignHMACSHA256Hex(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
