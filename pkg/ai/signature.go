package ai

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// VerifyFathomSignature verifies a sha256 HMAC base64 signature against the
// raw payload and shared secret. Fathom prefixes signatures with a version
// tag ("v1,<signature>"); the prefix is stripped before comparison. The
// comparison is constant time.
func VerifyFathomSignature(secret string, payload []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	if idx := strings.IndexByte(signature, ','); idx >= 0 {
		signature = signature[idx+1:]
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
