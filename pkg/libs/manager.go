package libs

import (
	"sync"
	"time"

	"github.com/oarkflow/paseto/token"

	"github.com/tunisiajockeyclub/club/pkg/contracts"
	"github.com/tunisiajockeyclub/club/pkg/models"
	"github.com/tunisiajockeyclub/club/pkg/utils"
)

const loginCooldownPeriod = 15 * time.Minute

type SecurityManager struct {
	maxLoginAttempts int
	loginAttempts    map[string][]time.Time
	mu               sync.RWMutex
}

func NewSecurityManager(maxLoginAttempts int) *SecurityManager {
	if maxLoginAttempts <= 0 {
		maxLoginAttempts = 5
	}
	return &SecurityManager{
		maxLoginAttempts: maxLoginAttempts,
		loginAttempts:    make(map[string][]time.Time),
	}
}

func (s *SecurityManager) IsLoginBlocked(identifier string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	attempts, exists := s.loginAttempts[identifier]
	if !exists {
		return false
	}

	count := 0
	for _, attemptTime := range attempts {
		if now.Sub(attemptTime) < loginCooldownPeriod {
			count++
		}
	}
	return count >= s.maxLoginAttempts
}

func (s *SecurityManager) RecordFailedLogin(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	attempts := append(s.loginAttempts[identifier], now)

	filtered := attempts[:0]
	for _, attemptTime := range attempts {
		if now.Sub(attemptTime) < loginCooldownPeriod {
			filtered = append(filtered, attemptTime)
		}
	}
	s.loginAttempts[identifier] = filtered
}

func (s *SecurityManager) ClearLoginAttempts(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loginAttempts, identifier)
}

type Manager struct {
	vault             contracts.Storage
	Config            *Config
	LoginSuccessURL   string
	UserLogoutTracker contracts.LogoutTracker
	security          contracts.SecurityManager
}

func NewManager(vault contracts.Storage, configs ...*Config) *Manager {
	var cfg *Config
	if len(configs) > 0 {
		cfg = configs[0]
	} else {
		cfg = LoadConfig()
	}
	return &Manager{
		vault:             vault,
		Config:            cfg,
		UserLogoutTracker: NewUserLogoutTracker(),
		security:          NewSecurityManager(cfg.MaxLoginAttempts),
	}
}

func (m *Manager) Vault() contracts.Storage {
	return m.vault
}

func (m *Manager) Security() contracts.SecurityManager {
	return m.security
}

func (m *Manager) LogoutTracker() contracts.LogoutTracker {
	return m.UserLogoutTracker
}

func (m *Manager) LookupUser(userID int64) (models.UserInfo, bool) {
	info, err := m.vault.GetUser(userID)
	return info, err == nil
}

func (m *Manager) LookupUserByEmail(email string) (models.UserInfo, bool) {
	info, err := m.vault.GetUserByEmail(email)
	return info, err == nil
}

// IssueSession mints an encrypted session token for a user. Returns the
// token string and the session id embedded in it.
func (m *Manager) IssueSession(info models.UserInfo, ip string) (string, string, error) {
	sessionID := utils.NewSessionID()
	claims := utils.SessionClaims(info.UserID, info.Email, info.Role, sessionID, ip, m.Config.SessionTimeout)

	t := token.CreateToken(m.Config.SessionTimeout, token.AlgEncrypt)
	if err := token.RegisterClaims(t, claims); err != nil {
		return "", "", err
	}
	tokenStr, err := token.EncryptToken(t, m.Config.Secret)
	if err != nil {
		return "", "", err
	}
	m.UserLogoutTracker.ClearUserLogout(info.UserID)
	return tokenStr, sessionID, nil
}
