package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mwhitlock/aviary/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS birds (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	species TEXT NOT NULL,
	birth_date TEXT,
	image TEXT,
	created_at TEXT
);

CREATE TABLE IF NOT EXISTS medications (
	id TEXT PRIMARY KEY,
	bird_id TEXT NOT NULL,
	name TEXT NOT NULL,
	dosage TEXT,
	frequency TEXT NOT NULL,
	times TEXT NOT NULL,
	start_date TEXT,
	end_date TEXT,
	is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS diet_logs (
	id TEXT PRIMARY KEY,
	bird_id TEXT NOT NULL,
	date TEXT,
	food_type TEXT NOT NULL,
	amount TEXT,
	notes TEXT
);

CREATE TABLE IF NOT EXISTS completed_tasks (
	id TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	feed_time TEXT NOT NULL,
	notifications_enabled INTEGER NOT NULL,
	timezone TEXT NOT NULL,
	language TEXT NOT NULL,
	poll_interval_sec INTEGER NOT NULL
);
`

// SQLiteStore implements Provider on a local SQLite database. Row order
// follows insertion order (rowid), matching the JSON store's determinism.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	settings, err := s.GetSettings()
	if err != nil || settings.FeedTime == "" {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'aviary init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	row := s.db.QueryRow(`
		SELECT feed_time, notifications_enabled, timezone, language, poll_interval_sec
		FROM settings WHERE id = 1`)

	var settings models.Settings
	err := row.Scan(&settings.FeedTime, &settings.NotificationsEnabled,
		&settings.Timezone, &settings.Language, &settings.PollIntervalSec)
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, feed_time, notifications_enabled, timezone, language, poll_interval_sec)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			feed_time = excluded.feed_time,
			notifications_enabled = excluded.notifications_enabled,
			timezone = excluded.timezone,
			language = excluded.language,
			poll_interval_sec = excluded.poll_interval_sec`,
		settings.FeedTime, settings.NotificationsEnabled, settings.Timezone,
		settings.Language, settings.PollIntervalSec)
	return err
}

func (s *SQLiteStore) AddBird(bird models.Bird) error {
	_, err := s.db.Exec(`
		INSERT INTO birds (id, name, species, birth_date, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		bird.ID, bird.Name, string(bird.Species),
		bird.BirthDate.Format(time.RFC3339), bird.Image,
		bird.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to add bird: %w", err)
	}
	return nil
}

func scanBird(scan func(dest ...any) error) (models.Bird, error) {
	var bird models.Bird
	var species, birthDate, createdAt string

	if err := scan(&bird.ID, &bird.Name, &species, &birthDate, &bird.Image, &createdAt); err != nil {
		return models.Bird{}, err
	}

	bird.Species = models.BirdSpecies(species)
	if t, err := time.Parse(time.RFC3339, birthDate); err == nil {
		bird.BirthDate = t
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		bird.CreatedAt = t
	}
	return bird, nil
}

func (s *SQLiteStore) GetBird(id string) (models.Bird, error) {
	row := s.db.QueryRow(`
		SELECT id, name, species, birth_date, image, created_at
		FROM birds WHERE id = ?`, id)

	bird, err := scanBird(row.Scan)
	if err != nil {
		return models.Bird{}, fmt.Errorf("bird not found: %s", id)
	}
	return bird, nil
}

func (s *SQLiteStore) GetAllBirds() ([]models.Bird, error) {
	rows, err := s.db.Query(`
		SELECT id, name, species, birth_date, image, created_at
		FROM birds ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var birds []models.Bird
	for rows.Next() {
		bird, err := scanBird(rows.Scan)
		if err != nil {
			return nil, err
		}
		birds = append(birds, bird)
	}
	return birds, rows.Err()
}

func (s *SQLiteStore) DeleteBird(id string) error {
	res, err := s.db.Exec(`DELETE FROM birds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bird: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("bird not found: %s", id)
	}

	// Cascade to weak references.
	if _, err := s.db.Exec(`DELETE FROM medications WHERE bird_id = ?`, id); err != nil {
		return fmt.Errorf("failed to cascade medications: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM diet_logs WHERE bird_id = ?`, id); err != nil {
		return fmt.Errorf("failed to cascade diet logs: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddMedication(med models.Medication) error {
	times, err := json.Marshal(med.Times)
	if err != nil {
		return fmt.Errorf("failed to serialize dose times: %w", err)
	}

	var endDate sql.NullString
	if med.EndDate != nil {
		endDate = sql.NullString{String: med.EndDate.Format(time.RFC3339), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO medications (id, bird_id, name, dosage, frequency, times, start_date, end_date, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		med.ID, med.BirdID, med.Name, med.Dosage, string(med.Frequency), string(times),
		med.StartDate.Format(time.RFC3339), endDate, med.IsActive)
	if err != nil {
		return fmt.Errorf("failed to add medication: %w", err)
	}
	return nil
}

func scanMedication(scan func(dest ...any) error) (models.Medication, error) {
	var med models.Medication
	var frequency, times, startDate string
	var endDate sql.NullString

	if err := scan(&med.ID, &med.BirdID, &med.Name, &med.Dosage, &frequency,
		&times, &startDate, &endDate, &med.IsActive); err != nil {
		return models.Medication{}, err
	}

	med.Frequency = models.Frequency(frequency)
	if err := json.Unmarshal([]byte(times), &med.Times); err != nil {
		return models.Medication{}, fmt.Errorf("failed to parse dose times: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, startDate); err == nil {
		med.StartDate = t
	}
	if endDate.Valid {
		if t, err := time.Parse(time.RFC3339, endDate.String); err == nil {
			med.EndDate = &t
		}
	}
	return med, nil
}

func (s *SQLiteStore) GetMedication(id string) (models.Medication, error) {
	row := s.db.QueryRow(`
		SELECT id, bird_id, name, dosage, frequency, times, start_date, end_date, is_active
		FROM medications WHERE id = ?`, id)

	med, err := scanMedication(row.Scan)
	if err != nil {
		return models.Medication{}, fmt.Errorf("medication not found: %s", id)
	}
	return med, nil
}

func (s *SQLiteStore) queryMedications(query string, args ...any) ([]models.Medication, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []models.Medication
	for rows.Next() {
		med, err := scanMedication(rows.Scan)
		if err != nil {
			return nil, err
		}
		meds = append(meds, med)
	}
	return meds, rows.Err()
}

func (s *SQLiteStore) GetAllMedications() ([]models.Medication, error) {
	return s.queryMedications(`
		SELECT id, bird_id, name, dosage, frequency, times, start_date, end_date, is_active
		FROM medications ORDER BY rowid`)
}

func (s *SQLiteStore) GetMedicationsForBird(birdID string) ([]models.Medication, error) {
	return s.queryMedications(`
		SELECT id, bird_id, name, dosage, frequency, times, start_date, end_date, is_active
		FROM medications WHERE bird_id = ? ORDER BY rowid`, birdID)
}

func (s *SQLiteStore) DeleteMedication(id string) error {
	res, err := s.db.Exec(`DELETE FROM medications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("medication not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) AddDietLog(dl models.DietLog) error {
	_, err := s.db.Exec(`
		INSERT INTO diet_logs (id, bird_id, date, food_type, amount, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		dl.ID, dl.BirdID, dl.Date.Format(time.RFC3339), string(dl.FoodType), dl.Amount, dl.Notes)
	if err != nil {
		return fmt.Errorf("failed to add diet log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) queryDietLogs(query string, args ...any) ([]models.DietLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DietLog
	for rows.Next() {
		var dl models.DietLog
		var date, foodType string
		if err := rows.Scan(&dl.ID, &dl.BirdID, &date, &foodType, &dl.Amount, &dl.Notes); err != nil {
			return nil, err
		}
		dl.FoodType = models.FoodType(foodType)
		if t, err := time.Parse(time.RFC3339, date); err == nil {
			dl.Date = t
		}
		logs = append(logs, dl)
	}
	return logs, rows.Err()
}

func (s *SQLiteStore) GetAllDietLogs() ([]models.DietLog, error) {
	return s.queryDietLogs(`
		SELECT id, bird_id, date, food_type, amount, notes
		FROM diet_logs ORDER BY rowid`)
}

func (s *SQLiteStore) GetDietLogsForBird(birdID string) ([]models.DietLog, error) {
	return s.queryDietLogs(`
		SELECT id, bird_id, date, food_type, amount, notes
		FROM diet_logs WHERE bird_id = ? ORDER BY rowid`, birdID)
}

func (s *SQLiteStore) GetCompletedTaskIDs() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM completed_tasks ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) ToggleCompletedTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM completed_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to toggle completion: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if _, err := s.db.Exec(`INSERT INTO completed_tasks (id) VALUES (?)`, id); err != nil {
		return fmt.Errorf("failed to toggle completion: %w", err)
	}
	return nil
}

func (s *SQLiteStore) PruneCompletedTasks(before string) (int, error) {
	ids, err := s.GetCompletedTaskIDs()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, id := range ids {
		date, ok := models.OccurrenceDate(id)
		if !ok || date >= before {
			continue
		}
		if _, err := s.db.Exec(`DELETE FROM completed_tasks WHERE id = ?`, id); err != nil {
			return pruned, fmt.Errorf("failed to prune completed task: %w", err)
		}
		pruned++
	}
	return pruned, nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
