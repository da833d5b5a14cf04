package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tunisiajockeyclub/club/pkg/objects"
	"github.com/tunisiajockeyclub/club/pkg/security"
)

func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// csrfToken derives the form token for the caller's session.
func csrfToken(sc *security.Context) string {
	if sc == nil || sc.SessionID == "" {
		return ""
	}
	return security.CSRFToken(objects.Pipeline.CSRFSecret, sc.SessionID)
}

func sessionName() string {
	name := objects.Config.GetString("club.session_name")
	if name == "" {
		name = "tjc_session"
	}
	return name
}

func appName() string {
	name := objects.Config.GetString("app.name")
	if name == "" {
		name = "Tunisia Jockey Club"
	}
	return name
}
