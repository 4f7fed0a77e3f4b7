package models

import "regexp"

type TaskType string

const (
	TaskTypeMedication TaskType = "medication"
	TaskTypeDiet       TaskType = "diet"
	TaskTypeCleaning   TaskType = "cleaning" // reserved, unused by current derivation
)

// Task is a derived, date-scoped care reminder. Tasks are regenerated in full
// on every relevant state change and are never persisted; only membership of
// their id in the completed set survives a reload.
//
// The id is a deterministic occurrence key: "{sourceID}-{YYYY-MM-DD}-{sub}"
// where sub is the dose index for medications or "diet" for feeding tasks.
type Task struct {
	ID           string   `json:"id"`
	BirdID       string   `json:"bird_id"`
	Title        string   `json:"title"`
	Type         TaskType `json:"type"`
	DueTime      string   `json:"due_time"` // HH:MM
	IsCompleted  bool     `json:"is_completed"`
	MedicationID string   `json:"medication_id,omitempty"`
}

var occurrenceDateRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})-(?:\d+|diet)$`)

// OccurrenceDate extracts the calendar date (YYYY-MM-DD) embedded in a task
// occurrence id. The second return is false for ids that do not follow the
// occurrence key format.
func OccurrenceDate(taskID string) (string, bool) {
	m := occurrenceDateRe.FindStringSubmatch(taskID)
	if m == nil {
		return "", false
	}
	return m[1], true
}
