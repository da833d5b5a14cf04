package models

import (
	"time"
)

// Club roles
const (
	RoleAdmin   = "admin"
	RoleSteward = "steward"
	RoleMember  = "member"
)

type UserInfo struct {
	UserID         int64    `db:"user_id"`
	Email          string   `db:"email"`
	Name           string   `db:"name"`
	Role           string   `db:"role"`
	MFAEnabled     bool     `db:"mfa_enabled"`
	MFASecret      string   `db:"mfa_secret"`
	MFABackupCodes []string `db:"mfa_backup_codes"`
}

type Horse struct {
	HorseID   int64  `db:"horse_id"`
	Name      string `db:"name"`
	Sire      string `db:"sire"`
	Dam       string `db:"dam"`
	BirthYear int    `db:"birth_year"`
	Coat      string `db:"coat"`
	OwnerID   int64  `db:"owner_id"`
	TrainerID int64  `db:"trainer_id"`
	Active    bool   `db:"active"`
}

type Jockey struct {
	JockeyID  int64   `db:"jockey_id"`
	Name      string  `db:"name"`
	LicenseNo string  `db:"license_no"`
	WeightKg  float64 `db:"weight_kg"`
}

type Trainer struct {
	TrainerID int64  `db:"trainer_id"`
	Name      string `db:"name"`
	Stable    string `db:"stable"`
}

type Owner struct {
	OwnerID int64  `db:"owner_id"`
	Name    string `db:"name"`
	Silks   string `db:"silks"`
}

// Race lifecycle
const (
	RaceScheduled = "scheduled"
	RaceFinished  = "finished"
	RaceAbandoned = "abandoned"
)

type Race struct {
	RaceID     int64     `db:"race_id"`
	Name       string    `db:"name"`
	Racecourse string    `db:"racecourse"`
	StartsAt   time.Time `db:"starts_at"`
	DistanceM  int       `db:"distance_m"`
	PurseTND   int       `db:"purse_tnd"`
	Category   string    `db:"category"`
	Status     string    `db:"status"`
}

type RaceEntry struct {
	EntryID   int64   `db:"entry_id"`
	RaceID    int64   `db:"race_id"`
	HorseID   int64   `db:"horse_id"`
	JockeyID  int64   `db:"jockey_id"`
	Draw      int     `db:"draw"`
	WeightKg  float64 `db:"weight_kg"`
	Scratched bool    `db:"scratched"`
}

type RaceResult struct {
	ResultID   int64   `db:"result_id"`
	RaceID     int64   `db:"race_id"`
	HorseID    int64   `db:"horse_id"`
	JockeyID   int64   `db:"jockey_id"`
	Position   int     `db:"position"`
	FinishMs   int64   `db:"finish_ms"`
	MarginLens float64 `db:"margin_lens"`
}

type DashboardCounts struct {
	Horses   int `db:"horses"`
	Jockeys  int `db:"jockeys"`
	Trainers int `db:"trainers"`
	Owners   int `db:"owners"`
	Races    int `db:"races"`
}

type ErrorPageData struct {
	Title       string
	StatusCode  int
	Message     string
	Description string
	RetryURL    string
}

// MFA-related types
type MFASetupData struct {
	Secret      string   `json:"secret"`
	QRCode      string   `json:"qr_code"`
	BackupCodes []string `json:"backup_codes"`
}
