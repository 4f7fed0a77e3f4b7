package models

import "time"

type BirdSpecies string

const (
	SpeciesCockatiel BirdSpecies = "Cockatiel"
	SpeciesBudgie    BirdSpecies = "Budgie"
	SpeciesOther     BirdSpecies = "Other"
)

func (s BirdSpecies) IsValid() bool {
	switch s {
	case SpeciesCockatiel, SpeciesBudgie, SpeciesOther:
		return true
	default:
		return false
	}
}

// Bird represents a bird in the user's flock. BirthDate is exact even when it
// was synthesized from a user-entered age at creation time.
type Bird struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Species   BirdSpecies `json:"species"`
	BirthDate time.Time   `json:"birth_date"`
	Image     string      `json:"image,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
