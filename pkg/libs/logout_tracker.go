package libs

import (
	"sync"
	"time"
)

// Tracks logout timestamps so session tokens issued before a logout stop
// resolving even though the token itself has not expired.
type UserLogoutTracker struct {
	logoutTimes map[int64]int64
	mu          sync.RWMutex
}

func NewUserLogoutTracker() *UserLogoutTracker {
	return &UserLogoutTracker{
		logoutTimes: make(map[int64]int64),
	}
}

func (ult *UserLogoutTracker) SetUserLogout(userID int64) {
	ult.mu.Lock()
	defer ult.mu.Unlock()
	ult.logoutTimes[userID] = time.Now().Unix()
}

func (ult *UserLogoutTracker) IsUserLoggedOut(userID int64, authTimestamp int64) bool {
	ult.mu.RLock()
	defer ult.mu.RUnlock()

	logoutTime, exists := ult.logoutTimes[userID]
	if !exists {
		return false
	}
	return authTimestamp < logoutTime
}

func (ult *UserLogoutTracker) ClearUserLogout(userID int64) {
	ult.mu.Lock()
	defer ult.mu.Unlock()
	delete(ult.logoutTimes, userID)
}
