package models

import (
	"fmt"
	"time"
)

type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyTwiceDaily Frequency = "twice-daily"
	FrequencyWeekly     Frequency = "weekly"
)

// TimesPerDay returns how many time-of-day values a medication with this
// frequency must carry.
func (f Frequency) TimesPerDay() int {
	if f == FrequencyTwiceDaily {
		return 2
	}
	return 1
}

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyTwiceDaily, FrequencyWeekly:
		return true
	default:
		return false
	}
}

// Medication is a recurring dose schedule for a bird. BirdID is a weak
// reference: it is resolved by lookup and may dangle after the bird is gone.
// There is no update-in-place; edits are modeled as delete and recreate.
type Medication struct {
	ID        string     `json:"id"`
	BirdID    string     `json:"bird_id"`
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	Frequency Frequency  `json:"frequency"`
	Times     []string   `json:"times"` // HH:MM, ordered
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  bool       `json:"is_active"`
}

// Validate enforces the creation-time invariants. The times/frequency
// correspondence is checked here and nowhere else: whatever times array is
// stored is what generates tasks.
func (m *Medication) Validate() error {
	if m.BirdID == "" {
		return fmt.Errorf("medication must reference a bird")
	}
	if m.Name == "" {
		return fmt.Errorf("medication name cannot be empty")
	}
	if !m.Frequency.IsValid() {
		return fmt.Errorf("invalid frequency: %s", m.Frequency)
	}
	if len(m.Times) != m.Frequency.TimesPerDay() {
		return fmt.Errorf("%s medication requires %d dose time(s), got %d",
			m.Frequency, m.Frequency.TimesPerDay(), len(m.Times))
	}
	for _, t := range m.Times {
		if _, err := time.Parse("15:04", t); err != nil {
			return fmt.Errorf("invalid dose time %q (expected HH:MM): %w", t, err)
		}
	}
	return nil
}
