package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oarkflow/squealx"

	"github.com/tunisiajockeyclub/club/pkg/models"
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	MySQL      DatabaseType = "mysql"
	PostgreSQL DatabaseType = "postgres"
	SQLite     DatabaseType = "sqlite"
)

// DatabaseStorage persists the club registry with database type awareness.
type DatabaseStorage struct {
	db     *squealx.DB
	dbType DatabaseType
}

func NewDatabaseStorage(db *squealx.DB) (*DatabaseStorage, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	storage := &DatabaseStorage{
		db:     db,
		dbType: DatabaseType(db.DriverName()),
	}

	if err := storage.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}
	return storage, nil
}

func (d *DatabaseStorage) createTables() error {
	var queries []string

	switch d.dbType {
	case MySQL:
		queries = d.getMySQLSchema()
	case PostgreSQL:
		queries = d.getPostgreSQLSchema()
	case SQLite:
		queries = d.getSQLiteSchema()
	default:
		return fmt.Errorf("unsupported database type: %s", d.dbType)
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}
	return nil
}

func (d *DatabaseStorage) getMySQLSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'member',
			mfa_enabled TINYINT(1) DEFAULT 0,
			mfa_secret TEXT,
			mfa_backup_codes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_users_email (email),
			INDEX idx_users_role (role)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS credentials (
			user_id BIGINT NOT NULL,
			secret TEXT NOT NULL,
			secret_type VARCHAR(50) DEFAULT 'password' NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, secret_type)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS horses (
			horse_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			sire VARCHAR(255),
			dam VARCHAR(255),
			birth_year INT,
			coat VARCHAR(50),
			owner_id BIGINT,
			trainer_id BIGINT,
			active TINYINT(1) DEFAULT 1,
			INDEX idx_horses_owner (owner_id),
			INDEX idx_horses_trainer (trainer_id)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS jockeys (
			jockey_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			license_no VARCHAR(100),
			weight_kg DOUBLE
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS trainers (
			trainer_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			stable VARCHAR(255)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS owners (
			owner_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			silks VARCHAR(255)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS races (
			race_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			racecourse VARCHAR(255) NOT NULL,
			starts_at TIMESTAMP NOT NULL,
			distance_m INT NOT NULL,
			purse_tnd INT DEFAULT 0,
			category VARCHAR(100),
			status VARCHAR(50) DEFAULT 'scheduled',
			INDEX idx_races_starts_at (starts_at),
			INDEX idx_races_status (status)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS race_entries (
			entry_id BIGINT PRIMARY KEY,
			race_id BIGINT NOT NULL,
			horse_id BIGINT NOT NULL,
			jockey_id BIGINT NOT NULL,
			draw INT,
			weight_kg DOUBLE,
			scratched TINYINT(1) DEFAULT 0,
			INDEX idx_entries_race (race_id),
			UNIQUE KEY uq_entries_race_horse (race_id, horse_id)
		) ENGINE=InnoDB`,

		`CREATE TABLE IF NOT EXISTS race_results (
			result_id BIGINT PRIMARY KEY,
			race_id BIGINT NOT NULL,
			horse_id BIGINT NOT NULL,
			jockey_id BIGINT NOT NULL,
			position INT NOT NULL,
			finish_ms BIGINT DEFAULT 0,
			margin_lens DOUBLE DEFAULT 0,
			INDEX idx_results_race (race_id),
			INDEX idx_results_horse (horse_id)
		) ENGINE=InnoDB`,
	}
}

func (d *DatabaseStorage) getPostgreSQLSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'member',
			mfa_enabled BOOLEAN DEFAULT FALSE,
			mfa_secret TEXT,
			mfa_backup_codes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)`,

		`CREATE TABLE IF NOT EXISTS credentials (
			user_id BIGINT NOT NULL,
			secret TEXT NOT NULL,
			secret_type VARCHAR(50) DEFAULT 'password' NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, secret_type)
		)`,

		`CREATE TABLE IF NOT EXISTS horses (
			horse_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			sire VARCHAR(255),
			dam VARCHAR(255),
			birth_year INT,
			coat VARCHAR(50),
			owner_id BIGINT,
			trainer_id BIGINT,
			active BOOLEAN DEFAULT TRUE
		)`,

		`CREATE TABLE IF NOT EXISTS jockeys (
			jockey_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			license_no VARCHAR(100),
			weight_kg DOUBLE PRECISION
		)`,

		`CREATE TABLE IF NOT EXISTS trainers (
			trainer_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			stable VARCHAR(255)
		)`,

		`CREATE TABLE IF NOT EXISTS owners (
			owner_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			silks VARCHAR(255)
		)`,

		`CREATE TABLE IF NOT EXISTS races (
			race_id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			racecourse VARCHAR(255) NOT NULL,
			starts_at TIMESTAMP NOT NULL,
			distance_m INT NOT NULL,
			purse_tnd INT DEFAULT 0,
			category VARCHAR(100),
			status VARCHAR(50) DEFAULT 'scheduled'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_races_starts_at ON races (starts_at)`,

		`CREATE TABLE IF NOT EXISTS race_entries (
			entry_id BIGINT PRIMARY KEY,
			race_id BIGINT NOT NULL,
			horse_id BIGINT NOT NULL,
			jockey_id BIGINT NOT NULL,
			draw INT,
			weight_kg DOUBLE PRECISION,
			scratched BOOLEAN DEFAULT FALSE,
			UNIQUE (race_id, horse_id)
		)`,

		`CREATE TABLE IF NOT EXISTS race_results (
			result_id BIGINT PRIMARY KEY,
			race_id BIGINT NOT NULL,
			horse_id BIGINT NOT NULL,
			jockey_id BIGINT NOT NULL,
			position INT NOT NULL,
			finish_ms BIGINT DEFAULT 0,
			margin_lens DOUBLE PRECISION DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_horse ON race_results (horse_id)`,
	}
}

func (d *DatabaseStorage) getSQLiteSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'member',
			mfa_enabled INTEGER DEFAULT 0,
			mfa_secret TEXT,
			mfa_backup_codes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS credentials (
			user_id INTEGER NOT NULL,
			secret TEXT NOT NULL,
			secret_type TEXT DEFAULT 'password' NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, secret_type)
		)`,

		`CREATE TABLE IF NOT EXISTS horses (
			horse_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			sire TEXT,
			dam TEXT,
			birth_year INTEGER,
			coat TEXT,
			owner_id INTEGER,
			trainer_id INTEGER,
			active INTEGER DEFAULT 1
		)`,

		`CREATE TABLE IF NOT EXISTS jockeys (
			jockey_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			license_no TEXT,
			weight_kg REAL
		)`,

		`CREATE TABLE IF NOT EXISTS trainers (
			trainer_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			stable TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS owners (
			owner_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			silks TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS races (
			race_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			racecourse TEXT NOT NULL,
			starts_at TIMESTAMP NOT NULL,
			distance_m INTEGER NOT NULL,
			purse_tnd INTEGER DEFAULT 0,
			category TEXT,
			status TEXT DEFAULT 'scheduled'
		)`,

		`CREATE TABLE IF NOT EXISTS race_entries (
			entry_id INTEGER PRIMARY KEY,
			race_id INTEGER NOT NULL,
			horse_id INTEGER NOT NULL,
			jockey_id INTEGER NOT NULL,
			draw INTEGER,
			weight_kg REAL,
			scratched INTEGER DEFAULT 0,
			UNIQUE (race_id, horse_id)
		)`,

		`CREATE TABLE IF NOT EXISTS race_results (
			result_id INTEGER PRIMARY KEY,
			race_id INTEGER NOT NULL,
			horse_id INTEGER NOT NULL,
			jockey_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			finish_ms INTEGER DEFAULT 0,
			margin_lens REAL DEFAULT 0
		)`,
	}
}

// convertBoolForDB converts a bool to a driver-appropriate value.
func (d *DatabaseStorage) convertBoolForDB(b bool) any {
	switch d.dbType {
	case PostgreSQL:
		return b
	default:
		if b {
			return 1
		}
		return 0
	}
}

func (d *DatabaseStorage) convertBoolFromDB(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case []byte:
		return len(val) > 0 && (val[0] == '1' || val[0] == 't')
	case string:
		return val == "1" || val == "true" || val == "t"
	}
	return false
}

// --- Users ---

type userRow struct {
	UserID         int64  `db:"user_id"`
	Email          string `db:"email"`
	Name           string `db:"name"`
	Role           string `db:"role"`
	MFAEnabled     any    `db:"mfa_enabled"`
	MFASecret      any    `db:"mfa_secret"`
	MFABackupCodes any    `db:"mfa_backup_codes"`
}

func (d *DatabaseStorage) userFromRow(row userRow) models.UserInfo {
	info := models.UserInfo{
		UserID:     row.UserID,
		Email:      row.Email,
		Name:       row.Name,
		Role:       row.Role,
		MFAEnabled: d.convertBoolFromDB(row.MFAEnabled),
	}
	if s, ok := row.MFASecret.(string); ok {
		info.MFASecret = s
	} else if b, ok := row.MFASecret.([]byte); ok {
		info.MFASecret = string(b)
	}
	var raw string
	if s, ok := row.MFABackupCodes.(string); ok {
		raw = s
	} else if b, ok := row.MFABackupCodes.([]byte); ok {
		raw = string(b)
	}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &info.MFABackupCodes)
	}
	return info
}

func (d *DatabaseStorage) CreateUser(info models.UserInfo) error {
	query := `INSERT INTO users (user_id, email, name, role, mfa_enabled)
		VALUES (:user_id, :email, :name, :role, :mfa_enabled)`
	_, err := d.db.NamedExec(query, map[string]any{
		"user_id":     info.UserID,
		"email":       info.Email,
		"name":        info.Name,
		"role":        info.Role,
		"mfa_enabled": d.convertBoolForDB(info.MFAEnabled),
	})
	return err
}

func (d *DatabaseStorage) GetUser(userID int64) (models.UserInfo, error) {
	var row userRow
	query := `SELECT user_id, email, name, role, mfa_enabled, mfa_secret, mfa_backup_codes FROM users WHERE user_id = :user_id`
	if err := d.db.NamedGet(&row, query, map[string]any{"user_id": userID}); err != nil {
		return models.UserInfo{}, err
	}
	return d.userFromRow(row), nil
}

func (d *DatabaseStorage) GetUserByEmail(email string) (models.UserInfo, error) {
	var row userRow
	query := `SELECT user_id, email, name, role, mfa_enabled, mfa_secret, mfa_backup_codes FROM users WHERE email = :email`
	if err := d.db.NamedGet(&row, query, map[string]any{"email": email}); err != nil {
		return models.UserInfo{}, err
	}
	return d.userFromRow(row), nil
}

func (d *DatabaseStorage) SetUserSecret(userID int64, secret string) error {
	return d.upsertCredential(userID, secret, "password")
}

func (d *DatabaseStorage) GetUserSecret(userID int64) (string, error) {
	var secret string
	query := `SELECT secret FROM credentials WHERE user_id = :user_id AND secret_type = 'password'`
	err := d.db.NamedGet(&secret, query, map[string]any{"user_id": userID})
	return secret, err
}

// upsertCredential performs a database-agnostic upsert on credentials.
func (d *DatabaseStorage) upsertCredential(userID int64, secret, secretType string) error {
	updateQuery := `UPDATE credentials SET secret = :secret, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = :user_id AND secret_type = :secret_type`
	params := map[string]any{
		"secret":      secret,
		"user_id":     userID,
		"secret_type": secretType,
	}
	result, err := d.db.NamedExec(updateQuery, params)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		insertQuery := `INSERT INTO credentials (user_id, secret, secret_type)
			VALUES (:user_id, :secret, :secret_type)`
		_, err = d.db.NamedExec(insertQuery, params)
		return err
	}
	return nil
}

// --- MFA ---

func (d *DatabaseStorage) SetUserMFA(userID int64, secret string, backupCodes []string) error {
	encoded, err := json.Marshal(backupCodes)
	if err != nil {
		return err
	}
	query := `UPDATE users SET mfa_secret = :mfa_secret, mfa_backup_codes = :mfa_backup_codes WHERE user_id = :user_id`
	_, err = d.db.NamedExec(query, map[string]any{
		"mfa_secret":       secret,
		"mfa_backup_codes": string(encoded),
		"user_id":          userID,
	})
	return err
}

func (d *DatabaseStorage) GetUserMFA(userID int64) (string, []string, error) {
	info, err := d.GetUser(userID)
	if err != nil {
		return "", nil, err
	}
	return info.MFASecret, info.MFABackupCodes, nil
}

func (d *DatabaseStorage) EnableMFA(userID int64) error {
	return d.setMFAEnabled(userID, true)
}

func (d *DatabaseStorage) DisableMFA(userID int64) error {
	if err := d.setMFAEnabled(userID, false); err != nil {
		return err
	}
	query := `UPDATE users SET mfa_secret = NULL, mfa_backup_codes = NULL WHERE user_id = :user_id`
	_, err := d.db.NamedExec(query, map[string]any{"user_id": userID})
	return err
}

func (d *DatabaseStorage) setMFAEnabled(userID int64, enabled bool) error {
	query := `UPDATE users SET mfa_enabled = :mfa_enabled WHERE user_id = :user_id`
	_, err := d.db.NamedExec(query, map[string]any{
		"mfa_enabled": d.convertBoolForDB(enabled),
		"user_id":     userID,
	})
	return err
}

func (d *DatabaseStorage) IsUserMFAEnabled(userID int64) (bool, error) {
	var enabled any
	query := `SELECT mfa_enabled FROM users WHERE user_id = :user_id`
	if err := d.db.NamedGet(&enabled, query, map[string]any{"user_id": userID}); err != nil {
		return false, err
	}
	return d.convertBoolFromDB(enabled), nil
}

func (d *DatabaseStorage) InvalidateBackupCode(userID int64, code string) error {
	secret, codes, err := d.GetUserMFA(userID)
	if err != nil {
		return err
	}
	remaining := make([]string, 0, len(codes))
	found := false
	for _, c := range codes {
		if c == code && !found {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	if !found {
		return fmt.Errorf("backup code not found")
	}
	return d.SetUserMFA(userID, secret, remaining)
}

// --- Horses ---

func (d *DatabaseStorage) CreateHorse(h models.Horse) error {
	query := `INSERT INTO horses (horse_id, name, sire, dam, birth_year, coat, owner_id, trainer_id, active)
		VALUES (:horse_id, :name, :sire, :dam, :birth_year, :coat, :owner_id, :trainer_id, :active)`
	_, err := d.db.NamedExec(query, d.horseParams(h))
	return err
}

func (d *DatabaseStorage) UpdateHorse(h models.Horse) error {
	query := `UPDATE horses SET name = :name, sire = :sire, dam = :dam, birth_year = :birth_year,
		coat = :coat, owner_id = :owner_id, trainer_id = :trainer_id, active = :active
		WHERE horse_id = :horse_id`
	result, err := d.db.NamedExec(query, d.horseParams(h))
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("horse %d not found", h.HorseID)
	}
	return nil
}

func (d *DatabaseStorage) horseParams(h models.Horse) map[string]any {
	return map[string]any{
		"horse_id":   h.HorseID,
		"name":       h.Name,
		"sire":       h.Sire,
		"dam":        h.Dam,
		"birth_year": h.BirthYear,
		"coat":       h.Coat,
		"owner_id":   h.OwnerID,
		"trainer_id": h.TrainerID,
		"active":     d.convertBoolForDB(h.Active),
	}
}

func (d *DatabaseStorage) DeleteHorse(horseID int64) error {
	_, err := d.db.NamedExec(`DELETE FROM horses WHERE horse_id = :horse_id`, map[string]any{"horse_id": horseID})
	return err
}

type horseRow struct {
	HorseID   int64  `db:"horse_id"`
	Name      string `db:"name"`
	Sire      string `db:"sire"`
	Dam       string `db:"dam"`
	BirthYear int    `db:"birth_year"`
	Coat      string `db:"coat"`
	OwnerID   int64  `db:"owner_id"`
	TrainerID int64  `db:"trainer_id"`
	Active    any    `db:"active"`
}

func (d *DatabaseStorage) horseFromRow(row horseRow) models.Horse {
	return models.Horse{
		HorseID:   row.HorseID,
		Name:      row.Name,
		Sire:      row.Sire,
		Dam:       row.Dam,
		BirthYear: row.BirthYear,
		Coat:      row.Coat,
		OwnerID:   row.OwnerID,
		TrainerID: row.TrainerID,
		Active:    d.convertBoolFromDB(row.Active),
	}
}

const horseColumns = `horse_id, name, COALESCE(sire, '') AS sire, COALESCE(dam, '') AS dam,
	COALESCE(birth_year, 0) AS birth_year, COALESCE(coat, '') AS coat,
	COALESCE(owner_id, 0) AS owner_id, COALESCE(trainer_id, 0) AS trainer_id, active`

func (d *DatabaseStorage) GetHorse(horseID int64) (models.Horse, error) {
	var row horseRow
	query := `SELECT ` + horseColumns + ` FROM horses WHERE horse_id = :horse_id`
	if err := d.db.NamedGet(&row, query, map[string]any{"horse_id": horseID}); err != nil {
		return models.Horse{}, err
	}
	return d.horseFromRow(row), nil
}

func (d *DatabaseStorage) ListHorses() ([]models.Horse, error) {
	var rows []horseRow
	query := `SELECT ` + horseColumns + ` FROM horses ORDER BY name`
	if err := d.db.Select(&rows, query); err != nil {
		return nil, err
	}
	horses := make([]models.Horse, 0, len(rows))
	for _, row := range rows {
		horses = append(horses, d.horseFromRow(row))
	}
	return horses, nil
}

// --- Jockeys, trainers, owners ---

func (d *DatabaseStorage) CreateJockey(j models.Jockey) error {
	query := `INSERT INTO jockeys (jockey_id, name, license_no, weight_kg)
		VALUES (:jockey_id, :name, :license_no, :weight_kg)`
	_, err := d.db.NamedExec(query, map[string]any{
		"jockey_id":  j.JockeyID,
		"name":       j.Name,
		"license_no": j.LicenseNo,
		"weight_kg":  j.WeightKg,
	})
	return err
}

func (d *DatabaseStorage) UpdateJockey(j models.Jockey) error {
	query := `UPDATE jockeys SET name = :name, license_no = :license_no, weight_kg = :weight_kg
		WHERE jockey_id = :jockey_id`
	_, err := d.db.NamedExec(query, map[string]any{
		"jockey_id":  j.JockeyID,
		"name":       j.Name,
		"license_no": j.LicenseNo,
		"weight_kg":  j.WeightKg,
	})
	return err
}

const jockeyColumns = `jockey_id, name, COALESCE(license_no, '') AS license_no, COALESCE(weight_kg, 0) AS weight_kg`

func (d *DatabaseStorage) GetJockey(jockeyID int64) (models.Jockey, error) {
	var j models.Jockey
	query := `SELECT ` + jockeyColumns + ` FROM jockeys WHERE jockey_id = :jockey_id`
	err := d.db.NamedGet(&j, query, map[string]any{"jockey_id": jockeyID})
	return j, err
}

func (d *DatabaseStorage) ListJockeys() ([]models.Jockey, error) {
	var jockeys []models.Jockey
	err := d.db.Select(&jockeys, `SELECT `+jockeyColumns+` FROM jockeys ORDER BY name`)
	return jockeys, err
}

func (d *DatabaseStorage) CreateTrainer(t models.Trainer) error {
	query := `INSERT INTO trainers (trainer_id, name, stable) VALUES (:trainer_id, :name, :stable)`
	_, err := d.db.NamedExec(query, map[string]any{
		"trainer_id": t.TrainerID,
		"name":       t.Name,
		"stable":     t.Stable,
	})
	return err
}

func (d *DatabaseStorage) GetTrainer(trainerID int64) (models.Trainer, error) {
	var t models.Trainer
	query := `SELECT trainer_id, name, COALESCE(stable, '') AS stable FROM trainers WHERE trainer_id = :trainer_id`
	err := d.db.NamedGet(&t, query, map[string]any{"trainer_id": trainerID})
	return t, err
}

func (d *DatabaseStorage) ListTrainers() ([]models.Trainer, error) {
	var trainers []models.Trainer
	err := d.db.Select(&trainers, `SELECT trainer_id, name, COALESCE(stable, '') AS stable FROM trainers ORDER BY name`)
	return trainers, err
}

func (d *DatabaseStorage) CreateOwner(o models.Owner) error {
	query := `INSERT INTO owners (owner_id, name, silks) VALUES (:owner_id, :name, :silks)`
	_, err := d.db.NamedExec(query, map[string]any{
		"owner_id": o.OwnerID,
		"name":     o.Name,
		"silks":    o.Silks,
	})
	return err
}

func (d *DatabaseStorage) GetOwner(ownerID int64) (models.Owner, error) {
	var o models.Owner
	query := `SELECT owner_id, name, COALESCE(silks, '') AS silks FROM owners WHERE owner_id = :owner_id`
	err := d.db.NamedGet(&o, query, map[string]any{"owner_id": ownerID})
	return o, err
}

func (d *DatabaseStorage) ListOwners() ([]models.Owner, error) {
	var owners []models.Owner
	err := d.db.Select(&owners, `SELECT owner_id, name, COALESCE(silks, '') AS silks FROM owners ORDER BY name`)
	return owners, err
}

// --- Races ---

func (d *DatabaseStorage) CreateRace(r models.Race) error {
	query := `INSERT INTO races (race_id, name, racecourse, starts_at, distance_m, purse_tnd, category, status)
		VALUES (:race_id, :name, :racecourse, :starts_at, :distance_m, :purse_tnd, :category, :status)`
	_, err := d.db.NamedExec(query, d.raceParams(r))
	return err
}

func (d *DatabaseStorage) UpdateRace(r models.Race) error {
	query := `UPDATE races SET name = :name, racecourse = :racecourse, starts_at = :starts_at,
		distance_m = :distance_m, purse_tnd = :purse_tnd, category = :category, status = :status
		WHERE race_id = :race_id`
	_, err := d.db.NamedExec(query, d.raceParams(r))
	return err
}

func (d *DatabaseStorage) raceParams(r models.Race) map[string]any {
	return map[string]any{
		"race_id":    r.RaceID,
		"name":       r.Name,
		"racecourse": r.Racecourse,
		"starts_at":  r.StartsAt.UTC().Format(time.RFC3339),
		"distance_m": r.DistanceM,
		"purse_tnd":  r.PurseTND,
		"category":   r.Category,
		"status":     r.Status,
	}
}

type raceRow struct {
	RaceID     int64  `db:"race_id"`
	Name       string `db:"name"`
	Racecourse string `db:"racecourse"`
	StartsAt   string `db:"starts_at"`
	DistanceM  int    `db:"distance_m"`
	PurseTND   int    `db:"purse_tnd"`
	Category   string `db:"category"`
	Status     string `db:"status"`
}

func raceFromRow(row raceRow) models.Race {
	startsAt, _ := time.Parse(time.RFC3339, row.StartsAt)
	return models.Race{
		RaceID:     row.RaceID,
		Name:       row.Name,
		Racecourse: row.Racecourse,
		StartsAt:   startsAt,
		DistanceM:  row.DistanceM,
		PurseTND:   row.PurseTND,
		Category:   row.Category,
		Status:     row.Status,
	}
}

const raceColumns = `race_id, name, racecourse, starts_at, distance_m,
	COALESCE(purse_tnd, 0) AS purse_tnd, COALESCE(category, '') AS category, status`

func (d *DatabaseStorage) GetRace(raceID int64) (models.Race, error) {
	var row raceRow
	query := `SELECT ` + raceColumns + ` FROM races WHERE race_id = :race_id`
	if err := d.db.NamedGet(&row, query, map[string]any{"race_id": raceID}); err != nil {
		return models.Race{}, err
	}
	return raceFromRow(row), nil
}

func (d *DatabaseStorage) ListRaces() ([]models.Race, error) {
	var rows []raceRow
	if err := d.db.Select(&rows, `SELECT `+raceColumns+` FROM races ORDER BY starts_at DESC`); err != nil {
		return nil, err
	}
	races := make([]models.Race, 0, len(rows))
	for _, row := range rows {
		races = append(races, raceFromRow(row))
	}
	return races, nil
}

func (d *DatabaseStorage) ListUpcomingRaces(limit int) ([]models.Race, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []raceRow
	query := `SELECT ` + raceColumns + ` FROM races WHERE status = 'scheduled' ORDER BY starts_at LIMIT ` + fmt.Sprint(limit)
	if err := d.db.Select(&rows, query); err != nil {
		return nil, err
	}
	races := make([]models.Race, 0, len(rows))
	for _, row := range rows {
		races = append(races, raceFromRow(row))
	}
	return races, nil
}

// --- Entries ---

func (d *DatabaseStorage) CreateEntry(e models.RaceEntry) error {
	query := `INSERT INTO race_entries (entry_id, race_id, horse_id, jockey_id, draw, weight_kg, scratched)
		VALUES (:entry_id, :race_id, :horse_id, :jockey_id, :draw, :weight_kg, :scratched)`
	_, err := d.db.NamedExec(query, map[string]any{
		"entry_id":  e.EntryID,
		"race_id":   e.RaceID,
		"horse_id":  e.HorseID,
		"jockey_id": e.JockeyID,
		"draw":      e.Draw,
		"weight_kg": e.WeightKg,
		"scratched": d.convertBoolForDB(e.Scratched),
	})
	return err
}

func (d *DatabaseStorage) ScratchEntry(entryID int64) error {
	query := `UPDATE race_entries SET scratched = :scratched WHERE entry_id = :entry_id`
	_, err := d.db.NamedExec(query, map[string]any{
		"scratched": d.convertBoolForDB(true),
		"entry_id":  entryID,
	})
	return err
}

type entryRow struct {
	EntryID   int64   `db:"entry_id"`
	RaceID    int64   `db:"race_id"`
	HorseID   int64   `db:"horse_id"`
	JockeyID  int64   `db:"jockey_id"`
	Draw      int     `db:"draw"`
	WeightKg  float64 `db:"weight_kg"`
	Scratched any     `db:"scratched"`
}

func (d *DatabaseStorage) ListEntries(raceID int64) ([]models.RaceEntry, error) {
	var rows []entryRow
	query := `SELECT entry_id, race_id, horse_id, jockey_id, COALESCE(draw, 0) AS draw,
		COALESCE(weight_kg, 0) AS weight_kg, scratched
		FROM race_entries WHERE race_id = ? ORDER BY draw`
	if err := d.db.Select(&rows, query, raceID); err != nil {
		return nil, err
	}
	entries := make([]models.RaceEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.RaceEntry{
			EntryID:   row.EntryID,
			RaceID:    row.RaceID,
			HorseID:   row.HorseID,
			JockeyID:  row.JockeyID,
			Draw:      row.Draw,
			WeightKg:  row.WeightKg,
			Scratched: d.convertBoolFromDB(row.Scratched),
		})
	}
	return entries, nil
}

// --- Results ---

func (d *DatabaseStorage) RecordResult(res models.RaceResult) error {
	query := `INSERT INTO race_results (result_id, race_id, horse_id, jockey_id, position, finish_ms, margin_lens)
		VALUES (:result_id, :race_id, :horse_id, :jockey_id, :position, :finish_ms, :margin_lens)`
	_, err := d.db.NamedExec(query, map[string]any{
		"result_id":   res.ResultID,
		"race_id":     res.RaceID,
		"horse_id":    res.HorseID,
		"jockey_id":   res.JockeyID,
		"position":    res.Position,
		"finish_ms":   res.FinishMs,
		"margin_lens": res.MarginLens,
	})
	return err
}

const resultColumns = `result_id, race_id, horse_id, jockey_id, position,
	COALESCE(finish_ms, 0) AS finish_ms, COALESCE(margin_lens, 0) AS margin_lens`

func (d *DatabaseStorage) ListResults(raceID int64) ([]models.RaceResult, error) {
	var results []models.RaceResult
	query := `SELECT ` + resultColumns + ` FROM race_results WHERE race_id = ? ORDER BY position`
	err := d.db.Select(&results, query, raceID)
	return results, err
}

func (d *DatabaseStorage) ResultsByHorse(horseID int64) ([]models.RaceResult, error) {
	var results []models.RaceResult
	query := `SELECT ` + resultColumns + ` FROM race_results WHERE horse_id = ? ORDER BY result_id DESC`
	err := d.db.Select(&results, query, horseID)
	return results, err
}

func (d *DatabaseStorage) ListAllResults() ([]models.RaceResult, error) {
	var results []models.RaceResult
	query := `SELECT ` + resultColumns + ` FROM race_results ORDER BY result_id`
	err := d.db.Select(&results, query)
	return results, err
}

func (d *DatabaseStorage) Counts() (models.DashboardCounts, error) {
	var counts models.DashboardCounts
	query := `SELECT
		(SELECT COUNT(*) FROM horses) AS horses,
		(SELECT COUNT(*) FROM jockeys) AS jockeys,
		(SELECT COUNT(*) FROM trainers) AS trainers,
		(SELECT COUNT(*) FROM owners) AS owners,
		(SELECT COUNT(*) FROM races) AS races`
	err := d.db.Get(&counts, query)
	return counts, err
}
