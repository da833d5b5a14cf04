package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
)

// CSRFToken derives the expected token for a session. Tokens are bound to
// the session id alone, so they stay valid exactly as long as the session
// does and validation needs no clock.
func CSRFToken(secret []byte, sessionID string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte("csrf:" + sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidateCSRF compares a submitted token against the session-derived
// expected token in constant time.
func ValidateCSRF(secret []byte, submitted, sessionID string) bool {
	if submitted == "" || sessionID == "" {
		return false
	}
	expected := CSRFToken(secret, sessionID)
	return hmac.Equal([]byte(submitted), []byte(expected))
}

// IsSafeMethod reports whether the method is a pure read. Safe methods
// bypass CSRF validation and body sanitization entirely.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
