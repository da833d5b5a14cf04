package contracts

import (
	"github.com/tunisiajockeyclub/club/pkg/models"
)

type SecurityManager interface {
	IsLoginBlocked(identifier string) bool
	RecordFailedLogin(identifier string)
	ClearLoginAttempts(identifier string)
}

type Manager interface {
	LookupUser(userID int64) (models.UserInfo, bool)
	LookupUserByEmail(email string) (models.UserInfo, bool)
	IssueSession(info models.UserInfo, ip string) (string, string, error)
	Vault() Storage
	Security() SecurityManager
	LogoutTracker() LogoutTracker
}

type LogoutTracker interface {
	SetUserLogout(userID int64)
	IsUserLoggedOut(userID int64, authTimestamp int64) bool
	ClearUserLogout(userID int64)
}
