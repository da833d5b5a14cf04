package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/tunisiajockeyclub/club/pkg/http/requests"
	"github.com/tunisiajockeyclub/club/pkg/http/responses"
	"github.com/tunisiajockeyclub/club/pkg/libs"
	"github.com/tunisiajockeyclub/club/pkg/models"
	"github.com/tunisiajockeyclub/club/pkg/objects"
	"github.com/tunisiajockeyclub/club/pkg/security"
	"github.com/tunisiajockeyclub/club/pkg/utils"
)

const backupCodeCount = 8

// MFAVerifyPage is the second login step for accounts with MFA enabled.
func MFAVerifyPage(c *fiber.Ctx, sc *security.Context) error {
	if _, ok := pendingUser(c); !ok {
		return c.Redirect(utils.LoginURI)
	}
	return responses.Render(c, utils.MFAVerifyTemplate, fiber.Map{
		"Title": "Two-Factor Verification",
		"Error": c.Query("error"),
	})
}

func PostMFAVerify(c *fiber.Ctx, sc *security.Context) error {
	info, ok := pendingUser(c)
	if !ok {
		return c.Redirect(utils.LoginURI)
	}

	var req requests.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return mfaVerifyFailed(c, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}

	if !consumeMFACode(info, req.Code) {
		objects.Manager.Security().RecordFailedLogin(info.Email)
		return mfaVerifyFailed(c, "invalid verification code")
	}
	return establishSession(c, info)
}

func mfaVerifyFailed(c *fiber.Ctx, message string) error {
	return c.Redirect(utils.MFAVerifyURI + "?error=" + url.QueryEscape(message))
}

// consumeMFACode accepts either a TOTP code or an unused backup code. A
// matched backup code is burned.
func consumeMFACode(info models.UserInfo, code string) bool {
	vault := objects.Manager.Vault()
	secret, codes, err := vault.GetUserMFA(info.UserID)
	if err != nil || secret == "" {
		return false
	}
	if libs.IsBackupCodeFormat(code) {
		normalized := libs.FormatBackupCode(code)
		for _, candidate := range codes {
			if candidate == normalized {
				return vault.InvalidateBackupCode(info.UserID, normalized) == nil
			}
		}
		return false
	}
	return libs.VerifyMFACode(code, secret)
}

// MFASetupPage provisions a TOTP secret for an admin account and shows the
// QR code plus one-shot backup codes. Enabling requires a verified code.
func MFASetupPage(c *fiber.Ctx, sc *security.Context) error {
	vault := objects.Manager.Vault()
	enabled, err := vault.IsUserMFAEnabled(sc.User.ID)
	if err != nil {
		return err
	}
	if enabled {
		return responses.Render(c, utils.MFASetupTemplate, fiber.Map{
			"Title":     "Two-Factor Authentication",
			"Enabled":   true,
			"CSRFToken": csrfToken(sc),
		})
	}

	secret, qrDataURL, err := libs.GenerateMFASecret(sc.User.Email, appName())
	if err != nil {
		return err
	}
	backupCodes, err := libs.GenerateBackupCodes(backupCodeCount)
	if err != nil {
		return err
	}
	if err := vault.SetUserMFA(sc.User.ID, secret, backupCodes); err != nil {
		return err
	}

	return responses.Render(c, utils.MFASetupTemplate, fiber.Map{
		"Title":     "Two-Factor Authentication",
		"Enabled":   false,
		"CSRFToken": csrfToken(sc),
		"Setup": models.MFASetupData{
			Secret:      secret,
			QRCode:      qrDataURL,
			BackupCodes: backupCodes,
		},
	})
}

// PostMFASetup confirms the provisioned secret with a live code and turns
// MFA on for the account.
func PostMFASetup(c *fiber.Ctx, sc *security.Context) error {
	var req requests.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}

	vault := objects.Manager.Vault()
	secret, _, err := vault.GetUserMFA(sc.User.ID)
	if err != nil || secret == "" {
		return fiber.NewError(fiber.StatusBadRequest, "MFA setup not started")
	}
	if !libs.VerifyMFACode(req.Code, secret) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid verification code")
	}
	if err := vault.EnableMFA(sc.User.ID); err != nil {
		return err
	}
	return c.Redirect(utils.MFASetupURI)
}

// PostMFADisable turns MFA off after verifying a current code or an unused
// backup code.
func PostMFADisable(c *fiber.Ctx, sc *security.Context) error {
	var req requests.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	if verr := req.Validate(); verr != nil {
		return verr
	}

	info, ok := objects.Manager.LookupUser(sc.User.ID)
	if !ok {
		return security.ErrUnauthenticated
	}
	if !consumeMFACode(info, req.Code) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid verification code")
	}
	if err := objects.Manager.Vault().DisableMFA(sc.User.ID); err != nil {
		return err
	}
	return c.Redirect(utils.MFASetupURI)
}
