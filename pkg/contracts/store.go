package contracts

import (
	"github.com/tunisiajockeyclub/club/pkg/models"
)

// Storage is the club's persistence layer.
type Storage interface {
	// Users and credentials
	CreateUser(info models.UserInfo) error
	GetUser(userID int64) (models.UserInfo, error)
	GetUserByEmail(email string) (models.UserInfo, error)
	SetUserSecret(userID int64, secret string) error
	GetUserSecret(userID int64) (string, error)

	// MFA
	SetUserMFA(userID int64, secret string, backupCodes []string) error
	GetUserMFA(userID int64) (string, []string, error)
	EnableMFA(userID int64) error
	DisableMFA(userID int64) error
	IsUserMFAEnabled(userID int64) (bool, error)
	InvalidateBackupCode(userID int64, code string) error

	// Horses
	CreateHorse(h models.Horse) error
	UpdateHorse(h models.Horse) error
	DeleteHorse(horseID int64) error
	GetHorse(horseID int64) (models.Horse, error)
	ListHorses() ([]models.Horse, error)

	// People
	CreateJockey(j models.Jockey) error
	UpdateJockey(j models.Jockey) error
	GetJockey(jockeyID int64) (models.Jockey, error)
	ListJockeys() ([]models.Jockey, error)
	CreateTrainer(t models.Trainer) error
	GetTrainer(trainerID int64) (models.Trainer, error)
	ListTrainers() ([]models.Trainer, error)
	CreateOwner(o models.Owner) error
	GetOwner(ownerID int64) (models.Owner, error)
	ListOwners() ([]models.Owner, error)

	// Races, entries, results
	CreateRace(r models.Race) error
	UpdateRace(r models.Race) error
	GetRace(raceID int64) (models.Race, error)
	ListRaces() ([]models.Race, error)
	ListUpcomingRaces(limit int) ([]models.Race, error)
	CreateEntry(e models.RaceEntry) error
	ScratchEntry(entryID int64) error
	ListEntries(raceID int64) ([]models.RaceEntry, error)
	RecordResult(res models.RaceResult) error
	ListResults(raceID int64) ([]models.RaceResult, error)
	ResultsByHorse(horseID int64) ([]models.RaceResult, error)
	ListAllResults() ([]models.RaceResult, error)

	Counts() (models.DashboardCounts, error)
}
