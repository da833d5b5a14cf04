package utils

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("Sahara2026x")
	if err != nil {
		t.Fatal(err)
	}
	if !HashCheck("Sahara2026x", hashed, "") {
		t.Fatal("password should verify against its own hash")
	}
	if HashCheck("wrong", hashed, "") {
		t.Fatal("wrong password must not verify")
	}
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if len(a) != 32 {
		t.Fatalf("session id length = %d, want 32 hex chars", len(a))
	}
	if a == b {
		t.Fatal("session ids must be unique")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Sahara2026"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	for _, bad := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		if err := ValidatePassword(bad); err == nil {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	for _, ok := range []string{"admin@club.tn", "steward@courses.org"} {
		if err := ValidateEmail(ok); err != nil {
			t.Fatalf("%q rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "noat", "@club.tn", "a@", "a@@b.c", "a@nodot"} {
		if err := ValidateEmail(bad); err == nil {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}

func TestSessionClaims(t *testing.T) {
	claims := SessionClaims(7, "a@club.tn", "admin", "sid-7", "1.2.3.4", 3600000000000)
	if claims["sub"] != int64(7) || claims["role"] != "admin" || claims["sid"] != "sid-7" {
		t.Fatalf("claims = %v", claims)
	}
	iat := claims["iat"].(int64)
	exp := claims["exp"].(int64)
	if exp-iat != 3600 {
		t.Fatalf("exp-iat = %d, want 3600", exp-iat)
	}
}

func TestGetCookieSecureFlag(t *testing.T) {
	if cookie := GetCookie(false, "development", "k", "v"); cookie.Secure {
		t.Fatal("plain development cookie must not be Secure")
	}
	if cookie := GetCookie(true, "development", "k", "v"); !cookie.Secure {
		t.Fatal("HTTPS-enabled cookie must be Secure")
	}
	if cookie := GetCookie(false, "production", "k", "v"); !cookie.Secure {
		t.Fatal("production cookie must be Secure")
	}
	if cookie := GetCookie(false, "development", "k", "v", 600); cookie.MaxAge != 600 {
		t.Fatalf("MaxAge = %d, want 600", cookie.MaxAge)
	}
}
