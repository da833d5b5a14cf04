package middlewares

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/tunisiajockeyclub/club/pkg/objects"
	"github.com/tunisiajockeyclub/club/pkg/security"
)

// SecureLoader wraps a read handler: rate limit, optional auth and role.
// CSRF and sanitization never run for loaders.
func SecureLoader(opts security.Options, handler security.Handler) fiber.Handler {
	return objects.Pipeline.Wrap(security.LoaderOptions(opts), handler)
}

// SecureAction wraps a mutating handler: the full stage set including CSRF
// validation and input sanitization.
func SecureAction(opts security.Options, handler security.Handler) fiber.Handler {
	return objects.Pipeline.Wrap(security.ActionOptions(opts), handler)
}

func SendError(c *fiber.Ctx, status int, message string) error {
	lastURI := c.OriginalURL()
	if !isAssetURI(lastURI) {
		c = flash.WithData(c, fiber.Map{"last_visited_uri": lastURI})
	}
	if wantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   message,
			"status":  status,
		})
	}
	if status == fiber.StatusUnauthorized {
		return c.Redirect("/login?error=" + url.QueryEscape(message))
	}
	return c.Status(status).SendString(message)
}

func wantsJSON(c *fiber.Ctx) bool {
	contentType := c.Get("Content-Type")
	if contentType == fiber.MIMEApplicationJSON || contentType == fiber.MIMEApplicationJSONCharsetUTF8 {
		return true
	}
	return strings.Contains(c.Get("Accept"), fiber.MIMEApplicationJSON)
}

func isAssetURI(uri string) bool {
	ext := strings.ToLower(path.Ext(uri))
	return ext != ""
}

// ErrorHandler maps pipeline denials onto HTTP responses. Anything not
// recognized falls through as an internal error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var rateErr *security.RateLimitError
	if errors.As(err, &rateErr) {
		retryAfter := int(rateErr.RetryAfter.Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Set("Retry-After", strconv.Itoa(retryAfter))
		c.Set("X-RateLimit-Limit", strconv.Itoa(rateErr.Limit))
		c.Set("X-RateLimit-Remaining", "0")
		c.Set("X-RateLimit-Reset", strconv.FormatInt(rateErr.ResetTime.Unix(), 10))
		return SendError(c, fiber.StatusTooManyRequests,
			fmt.Sprintf("rate limit exceeded, retry in %d seconds", retryAfter))
	}

	if errors.Is(err, security.ErrUnauthenticated) {
		return SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var forbiddenErr *security.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		return SendError(c, fiber.StatusForbidden, forbiddenErr.Reason)
	}
	if errors.Is(err, security.ErrCSRF) {
		return SendError(c, fiber.StatusForbidden, "invalid or missing CSRF token")
	}

	var validationErr *security.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "validation failed",
			"issues":  validationErr.Issues,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return SendError(c, fiberErr.Code, fiberErr.Message)
	}
	return SendError(c, fiber.StatusInternalServerError, "internal server error")
}
