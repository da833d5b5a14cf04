package libs

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pquerna/otp/totp"
	"github.com/skip2/go-qrcode"
)

// GenerateMFASecret creates a TOTP secret for an admin account and returns
// the secret plus a QR provisioning image as a data URL.
func GenerateMFASecret(email, issuer string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: email,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	qrCodeDataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPNG)
	return key.Secret(), qrCodeDataURL, nil
}

// VerifyMFACode validates a TOTP code against the stored secret.
func VerifyMFACode(code, secret string) bool {
	return totp.Validate(code, secret)
}

// GenerateBackupCodes mints one-shot recovery codes in XXXX-XXXX form.
func GenerateBackupCodes(count int) ([]string, error) {
	codes := make([]string, count)
	for i := 0; i < count; i++ {
		bytes := make([]byte, 8)
		if _, err := rand.Read(bytes); err != nil {
			return nil, fmt.Errorf("failed to generate random bytes: %w", err)
		}
		code := strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(bytes))
		codes[i] = fmt.Sprintf("%s-%s", code[:4], code[4:8])
	}
	return codes, nil
}

// IsBackupCodeFormat reports whether a submitted code looks like a backup
// code rather than a 6-digit TOTP code.
func IsBackupCodeFormat(code string) bool {
	code = strings.ReplaceAll(strings.ToLower(code), " ", "")
	return len(code) == 8 || len(code) == 9
}

// FormatBackupCode normalizes a backup code to XXXX-XXXX.
func FormatBackupCode(code string) string {
	code = strings.ReplaceAll(strings.ReplaceAll(strings.ToLower(code), " ", ""), "-", "")
	if len(code) == 8 {
		return fmt.Sprintf("%s-%s", code[:4], code[4:])
	}
	return code
}
