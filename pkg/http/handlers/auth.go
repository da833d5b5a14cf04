package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oarkflow/paseto/token"

	"github.com/tunisiajockeyclub/club/pkg/http/requests"
	"github.com/tunisiajockeyclub/club/pkg/http/responses"
	"github.com/tunisiajockeyclub/club/pkg/models"
	"github.com/tunisiajockeyclub/club/pkg/objects"
	"github.com/tunisiajockeyclub/club/pkg/security"
	"github.com/tunisiajockeyclub/club/pkg/utils"
)

const mfaPendingCookie = "tjc_mfa_pending"

func LoginPage(c *fiber.Ctx, sc *security.Context) error {
	if sc.User != nil {
		if sc.User.Role == models.RoleAdmin || sc.User.Role == models.RoleSteward {
			return c.Redirect(utils.AdminURI)
		}
		return c.Redirect(utils.LandingURI)
	}
	return responses.Render(c, utils.LoginTemplate, fiber.Map{
		"Title": "Member Login",
		"Error": c.Query("error"),
	})
}

func PostLogin(c *fiber.Ctx, sc *security.Context) error {
	var req requests.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return loginFailed(c, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}

	manager := objects.Manager
	if manager.Security().IsLoginBlocked(req.Email) {
		return loginFailed(c, "too many failed attempts, try again later")
	}

	info, exists := manager.LookupUserByEmail(req.Email)
	if !exists {
		manager.Security().RecordFailedLogin(req.Email)
		return loginFailed(c, "invalid credentials")
	}

	stored, err := manager.Vault().GetUserSecret(info.UserID)
	if err != nil || !utils.HashCheck(req.Password, stored, objects.Config.GetString("club.password_legacy_algo")) {
		manager.Security().RecordFailedLogin(req.Email)
		return loginFailed(c, "invalid credentials")
	}
	manager.Security().ClearLoginAttempts(req.Email)

	if info.MFAEnabled {
		pending, err := mintPendingToken(info.UserID)
		if err != nil {
			return err
		}
		c.Cookie(utils.GetCookie(objects.Config.GetBool("app.https"), objects.Config.GetString("app.env"), mfaPendingCookie, pending, 300))
		return c.Redirect(utils.MFAVerifyURI)
	}
	return establishSession(c, info)
}

func loginFailed(c *fiber.Ctx, message string) error {
	return c.Redirect(utils.LoginURI + "?error=" + url.QueryEscape(message))
}

// establishSession issues the session token, sets the cookie and sends the
// user to their home page.
func establishSession(c *fiber.Ctx, info models.UserInfo) error {
	tokenStr, _, err := objects.Manager.IssueSession(info, utils.GetClientIP(c))
	if err != nil {
		return err
	}
	timeout := objects.Config.GetDuration("club.session_timeout", "24h")
	c.Cookie(utils.GetCookie(objects.Config.GetBool("app.https"), objects.Config.GetString("app.env"), sessionName(), tokenStr, int(timeout.Seconds())))
	c.ClearCookie(mfaPendingCookie)

	if info.Role == models.RoleAdmin || info.Role == models.RoleSteward {
		return c.Redirect(utils.AdminURI)
	}
	return c.Redirect(utils.LandingURI)
}

// mintPendingToken carries the password-verified user id across the MFA
// verification step. Short-lived and single-purpose.
func mintPendingToken(userID int64) (string, error) {
	t := token.CreateToken(5*time.Minute, token.AlgEncrypt)
	if err := token.RegisterClaims(t, map[string]any{
		"sub":   userID,
		"stage": "mfa",
	}); err != nil {
		return "", err
	}
	return token.EncryptToken(t, secret())
}

func pendingUser(c *fiber.Ctx) (models.UserInfo, bool) {
	pending := c.Cookies(mfaPendingCookie)
	if pending == "" {
		return models.UserInfo{}, false
	}
	decTok, err := token.DecryptToken(pending, secret())
	if err != nil {
		return models.UserInfo{}, false
	}
	if stage, _ := decTok.Claims["stage"].(string); stage != "mfa" {
		return models.UserInfo{}, false
	}
	userID := claimInt64(decTok.Claims["sub"])
	if userID == 0 {
		return models.UserInfo{}, false
	}
	return objects.Manager.LookupUser(userID)
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

func secret() []byte {
	return []byte(objects.Config.GetString("club.secret"))
}

func LogoutPage(c *fiber.Ctx, sc *security.Context) error {
	if sc.User != nil {
		objects.Manager.LogoutTracker().SetUserLogout(sc.User.ID)
	}
	c.ClearCookie(sessionName())
	return c.Redirect(utils.LoginURI)
}
