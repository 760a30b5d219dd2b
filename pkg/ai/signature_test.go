package ai

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyFathomSignature(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"id":"rec-1"}`)

	if !VerifyFathomSignature(secret, payload, sign(secret, payload)) {
		t.Error("expected valid signature to verify")
	}

	if !VerifyFathomSignature(secret, payload, "v1,"+sign(secret, payload)) {
		t.Error("expected versioned signature to verify")
	}

	if VerifyFathomSignature(secret, payload, sign("other-secret", payload)) {
		t.Error("expected signature from wrong secret to fail")
	}

	if VerifyFathomSignature(secret, []byte(`{"id":"rec-2"}`), sign(secret, payload)) {
		t.Error("expected signature over different payload to fail")
	}

	if VerifyFathomSignature("", payload, sign(secret, payload)) {
		t.Error("expected empty secret to fail")
	}

	if VerifyFathomSignature(secret, payload, "") {
		t.Error("expected empty signature to fail")
	}
}
