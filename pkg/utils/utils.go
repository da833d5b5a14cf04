package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oarkflow/hash"
	"golang.org/x/crypto/bcrypt"
)

const passwordMinLength = 8

// HashPassword stores new credentials with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// HashCheck verifies a password against a stored secret. Bcrypt first, then
// the configured legacy algorithm for credentials imported from the old
// member registry.
func HashCheck(password, stored, legacyAlgo string) bool {
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil {
		return true
	}
	if legacyAlgo == "" {
		return false
	}
	ok, _ := hash.Match(password, stored, legacyAlgo)
	return ok
}

// NewSessionID returns a random 128-bit session identifier.
func NewSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

func GetCookie(enableHTTPS bool, env, key, val string, maxAges ...int) *fiber.Cookie {
	maxAge := 300
	if len(maxAges) > 0 {
		maxAge = maxAges[0]
	}

	secure := enableHTTPS || env == "production"

	return &fiber.Cookie{
		Name:     key,
		Value:    val,
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		MaxAge:   maxAge,
	}
}

// SessionClaims builds the claim set carried by the encrypted session token.
func SessionClaims(userID int64, email, role, sessionID, ip string, timeout time.Duration) map[string]any {
	now := time.Now()
	return map[string]any{
		"sub":   userID,
		"email": email,
		"role":  role,
		"sid":   sessionID,
		"ip":    ip,
		"iat":   now.Unix(),
		"exp":   now.Add(timeout).Unix(),
	}
}

func GetClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); len(xff) > 0 {
		if comma := strings.IndexByte(xff, ','); comma > 0 {
			return strings.TrimSpace(xff[:comma])
		}
		return strings.TrimSpace(xff)
	}

	if xri := c.Get("X-Real-IP"); len(xri) > 0 {
		return strings.TrimSpace(xri)
	}

	ip := c.IP()
	if i := strings.LastIndexByte(ip, ':'); i != -1 {
		return ip[:i]
	}
	return ip
}

func ValidatePassword(password string) error {
	if len(password) < passwordMinLength {
		return errors.New("password must be at least 8 characters")
	}

	hasUpper, hasLower, hasDigit := false, false, false
	for _, c := range password {
		switch {
		case 'A' <= c && c <= 'Z':
			hasUpper = true
		case 'a' <= c && c <= 'z':
			hasLower = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
		if hasUpper && hasLower && hasDigit {
			return nil
		}
	}

	if !hasUpper {
		return errors.New("must contain uppercase letter")
	}
	if !hasLower {
		return errors.New("must contain lowercase letter")
	}
	return errors.New("must contain digit")
}

// ValidateEmail checks format and length constraints without regex.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email cannot be empty")
	}
	if len(email) > 254 {
		return errors.New("email too long")
	}

	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return errors.New("invalid email: missing local or domain")
	}
	if strings.IndexByte(email[at+1:], '@') != -1 {
		return errors.New("invalid email: multiple @ symbols")
	}
	domain := email[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 {
		return errors.New("invalid domain: missing TLD")
	}
	return nil
}

func StringPtr(s string) *string {
	return &s
}
