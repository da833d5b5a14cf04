package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func redirectLocation(t *testing.T, handler func(*fiber.Ctx) error) string {
	t.Helper()
	app := fiber.New()
	app.Get("/redirecting", handler)
	resp, err := app.Test(httptest.NewRequest("GET", "/redirecting", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status = %d, want redirect", resp.StatusCode)
	}
	return resp.Header.Get("Location")
}

func TestMFAVerifyFailedEscapesMessage(t *testing.T) {
	location := redirectLocation(t, func(c *fiber.Ctx) error {
		return mfaVerifyFailed(c, "invalid verification code")
	})
	want := "/mfa/verify?error=invalid+verification+code"
	if location != want {
		t.Fatalf("Location = %q, want %q", location, want)
	}
}

func TestLoginFailedEscapesMessage(t *testing.T) {
	location := redirectLocation(t, func(c *fiber.Ctx) error {
		return loginFailed(c, "too many failed attempts, try again later")
	})
	want := "/login?error=too+many+failed+attempts%2C+try+again+later"
	if location != want {
		t.Fatalf("Location = %q, want %q", location, want)
	}
}
