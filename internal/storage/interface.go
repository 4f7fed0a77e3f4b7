package storage

import "github.com/mwhitlock/aviary/internal/models"

// Provider is the entity store boundary. It exclusively owns the bird,
// medication and diet-log collections plus the completed occurrence-id set;
// derived tasks are never stored. Writes are best-effort and last write wins.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Birds
	AddBird(models.Bird) error
	GetBird(id string) (models.Bird, error)
	GetAllBirds() ([]models.Bird, error)
	// DeleteBird removes the bird and cascades to every medication and diet
	// log referencing it. Referential integrity lives here, not in the store
	// schema.
	DeleteBird(id string) error

	// Medications (no update-in-place: edits are delete + recreate)
	AddMedication(models.Medication) error
	GetMedication(id string) (models.Medication, error)
	GetAllMedications() ([]models.Medication, error)
	GetMedicationsForBird(birdID string) ([]models.Medication, error)
	DeleteMedication(id string) error

	// Diet logs (append-only)
	AddDietLog(models.DietLog) error
	GetAllDietLogs() ([]models.DietLog, error)
	GetDietLogsForBird(birdID string) ([]models.DietLog, error)

	// Completed occurrence ids
	GetCompletedTaskIDs() ([]string, error)
	// ToggleCompletedTask flips membership of the id and persists the set.
	// Ids that no longer correspond to a derivable task are accepted
	// silently; they simply never surface again.
	ToggleCompletedTask(id string) error
	// PruneCompletedTasks drops ids whose embedded date is before the given
	// date key (YYYY-MM-DD) and returns how many were removed. Ids without a
	// parseable date are kept.
	PruneCompletedTasks(before string) (int, error)

	// Utils
	GetConfigPath() string
}
