package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwhitlock/aviary/internal/constants"
	"github.com/mwhitlock/aviary/internal/logger"
	"github.com/mwhitlock/aviary/internal/models"
)

// AppState is the persisted state blob. The storage file name carries the
// schema version; a version bump starts from empty state rather than
// migrating in place.
type AppState struct {
	Version        int                 `json:"version"`
	Settings       models.Settings     `json:"settings"`
	Birds          []models.Bird       `json:"birds"`
	Medications    []models.Medication `json:"medications"`
	DietLogs       []models.DietLog    `json:"diet_logs"`
	CompletedTasks []string            `json:"completed_tasks"`
}

// DefaultSettings returns the settings a fresh or recovered state starts with.
func DefaultSettings() models.Settings {
	return models.Settings{
		FeedTime:             constants.DefaultFeedTime,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		Timezone:             constants.DefaultTimezone,
		Language:             constants.DefaultLanguage,
		PollIntervalSec:      int(constants.DefaultPollInterval.Seconds()),
	}
}

func emptyState() *AppState {
	return &AppState{
		Version:        constants.StateVersion,
		Settings:       DefaultSettings(),
		Birds:          []models.Bird{},
		Medications:    []models.Medication{},
		DietLogs:       []models.DietLog{},
		CompletedTasks: []string{},
	}
}

// JSONStore persists the whole AppState as one JSON file. Collections keep
// insertion order, which keeps task derivation deterministic across reloads.
type JSONStore struct {
	path  string
	state *AppState
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.state = emptyState()
	return s.save()
}

// Load reads the state file. A missing file or unparseable payload is not an
// error: the store recovers with empty collections and logs the condition,
// so startup never fails on corrupt state.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No stored state, starting empty", "path", s.path)
			s.state = emptyState()
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	state := &AppState{}
	if err := json.Unmarshal(data, state); err != nil {
		logger.Warn("Stored state failed to parse, starting empty", "path", s.path, "error", err)
		s.state = emptyState()
		return nil
	}

	// Ensure collections are non-nil regardless of what was stored.
	if state.Birds == nil {
		state.Birds = []models.Bird{}
	}
	if state.Medications == nil {
		state.Medications = []models.Medication{}
	}
	if state.DietLogs == nil {
		state.DietLogs = []models.DietLog{}
	}
	if state.CompletedTasks == nil {
		state.CompletedTasks = []string{}
	}
	if state.Settings.FeedTime == "" {
		state.Settings = DefaultSettings()
	}

	s.state = state
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) ensureLoaded() error {
	if s.state == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Settings{}, err
	}
	return s.state.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.state.Settings = settings
	return s.save()
}

func (s *JSONStore) AddBird(bird models.Bird) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.state.Birds = append(s.state.Birds, bird)
	return s.save()
}

func (s *JSONStore) GetBird(id string) (models.Bird, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Bird{}, err
	}
	for _, bird := range s.state.Birds {
		if bird.ID == id {
			return bird, nil
		}
	}
	return models.Bird{}, fmt.Errorf("bird not found: %s", id)
}

func (s *JSONStore) GetAllBirds() ([]models.Bird, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	birds := make([]models.Bird, len(s.state.Birds))
	copy(birds, s.state.Birds)
	return birds, nil
}

func (s *JSONStore) DeleteBird(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	found := false
	birds := s.state.Birds[:0]
	for _, bird := range s.state.Birds {
		if bird.ID == id {
			found = true
			continue
		}
		birds = append(birds, bird)
	}
	if !found {
		return fmt.Errorf("bird not found: %s", id)
	}
	s.state.Birds = birds

	meds := s.state.Medications[:0]
	for _, med := range s.state.Medications {
		if med.BirdID != id {
			meds = append(meds, med)
		}
	}
	s.state.Medications = meds

	logs := s.state.DietLogs[:0]
	for _, dl := range s.state.DietLogs {
		if dl.BirdID != id {
			logs = append(logs, dl)
		}
	}
	s.state.DietLogs = logs

	return s.save()
}

func (s *JSONStore) AddMedication(med models.Medication) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.state.Medications = append(s.state.Medications, med)
	return s.save()
}

func (s *JSONStore) GetMedication(id string) (models.Medication, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Medication{}, err
	}
	for _, med := range s.state.Medications {
		if med.ID == id {
			return med, nil
		}
	}
	return models.Medication{}, fmt.Errorf("medication not found: %s", id)
}

func (s *JSONStore) GetAllMedications() ([]models.Medication, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	meds := make([]models.Medication, len(s.state.Medications))
	copy(meds, s.state.Medications)
	return meds, nil
}

func (s *JSONStore) GetMedicationsForBird(birdID string) ([]models.Medication, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	var meds []models.Medication
	for _, med := range s.state.Medications {
		if med.BirdID == birdID {
			meds = append(meds, med)
		}
	}
	return meds, nil
}

func (s *JSONStore) DeleteMedication(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	meds := s.state.Medications[:0]
	found := false
	for _, med := range s.state.Medications {
		if med.ID == id {
			found = true
			continue
		}
		meds = append(meds, med)
	}
	if !found {
		return fmt.Errorf("medication not found: %s", id)
	}
	s.state.Medications = meds
	return s.save()
}

func (s *JSONStore) AddDietLog(dl models.DietLog) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.state.DietLogs = append(s.state.DietLogs, dl)
	return s.save()
}

func (s *JSONStore) GetAllDietLogs() ([]models.DietLog, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	logs := make([]models.DietLog, len(s.state.DietLogs))
	copy(logs, s.state.DietLogs)
	return logs, nil
}

func (s *JSONStore) GetDietLogsForBird(birdID string) ([]models.DietLog, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	var logs []models.DietLog
	for _, dl := range s.state.DietLogs {
		if dl.BirdID == birdID {
			logs = append(logs, dl)
		}
	}
	return logs, nil
}

func (s *JSONStore) GetCompletedTaskIDs() ([]string, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	ids := make([]string, len(s.state.CompletedTasks))
	copy(ids, s.state.CompletedTasks)
	return ids, nil
}

func (s *JSONStore) ToggleCompletedTask(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	for i, existing := range s.state.CompletedTasks {
		if existing == id {
			s.state.CompletedTasks = append(s.state.CompletedTasks[:i], s.state.CompletedTasks[i+1:]...)
			return s.save()
		}
	}
	s.state.CompletedTasks = append(s.state.CompletedTasks, id)
	return s.save()
}

func (s *JSONStore) PruneCompletedTasks(before string) (int, error) {
	if err := s.ensureLoaded(); err != nil {
		return 0, err
	}

	kept := s.state.CompletedTasks[:0]
	pruned := 0
	for _, id := range s.state.CompletedTasks {
		date, ok := models.OccurrenceDate(id)
		if ok && date < before {
			pruned++
			continue
		}
		kept = append(kept, id)
	}
	if pruned == 0 {
		return 0, nil
	}
	s.state.CompletedTasks = kept
	return pruned, s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
