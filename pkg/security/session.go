package security

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/oarkflow/paseto/token"

	"github.com/tunisiajockeyclub/club/pkg/utils"
)

// Session is a resolved identity. A zero Session means "no user": resolution
// never fails hard, an absent or invalid token simply leaves the request
// anonymous.
type Session struct {
	User      *User
	SessionID string
}

// SessionResolver extracts an identity and session id from request state.
type SessionResolver interface {
	Resolve(c *fiber.Ctx) Session
}

// RevocationChecker reports whether a session issued at authTimestamp has
// been invalidated by a later logout.
type RevocationChecker interface {
	IsUserLoggedOut(userID int64, authTimestamp int64) bool
}

// PasetoResolver resolves sessions from an encrypted PASETO token carried in
// the session cookie or an Authorization bearer header.
type PasetoResolver struct {
	Secret     []byte
	CookieName string
	Revoked    RevocationChecker
}

func (r *PasetoResolver) Resolve(c *fiber.Ctx) Session {
	tokenStr := c.Cookies(r.CookieName)
	if tokenStr == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenStr = auth[7:]
		} else {
			tokenStr = auth
		}
	}
	if tokenStr == "" {
		return Session{}
	}

	decTok, err := token.DecryptToken(tokenStr, r.Secret)
	if err != nil {
		return Session{}
	}
	claims := decTok.Claims

	userID := claimInt64(claims["sub"])
	if userID == 0 {
		return Session{}
	}

	// Sessions are bound to the IP they were issued from, except on
	// private/loopback networks.
	claimIP, _ := claims["ip"].(string)
	if isPublicIP(claimIP) && claimIP != utils.GetClientIP(c) {
		return Session{}
	}

	iat := claimInt64(claims["iat"])
	if r.Revoked != nil && iat > 0 && r.Revoked.IsUserLoggedOut(userID, iat) {
		return Session{}
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	sid, _ := claims["sid"].(string)
	return Session{
		User:      &User{ID: userID, Email: email, Role: role},
		SessionID: sid,
	}
}

func claimInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func isPublicIP(ip string) bool {
	if ip == "" {
		return false
	}
	if strings.HasPrefix(ip, "127.") || strings.HasPrefix(ip, "::1") || strings.HasPrefix(ip, "localhost") {
		return false
	}
	if strings.HasPrefix(ip, "192.168.") || strings.HasPrefix(ip, "10.") || strings.HasPrefix(ip, "172.") {
		return false
	}
	return true
}
