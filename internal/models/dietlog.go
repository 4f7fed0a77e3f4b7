package models

import "time"

type FoodType string

const (
	FoodSeeds      FoodType = "seeds"
	FoodPellets    FoodType = "pellets"
	FoodVegetables FoodType = "vegetables"
	FoodFruits     FoodType = "fruits"
	FoodTreats     FoodType = "treats"
)

func (f FoodType) IsValid() bool {
	switch f {
	case FoodSeeds, FoodPellets, FoodVegetables, FoodFruits, FoodTreats:
		return true
	default:
		return false
	}
}

// DietLog is a single feeding record. Logs are append-only: they are never
// edited and only disappear when the owning bird is deleted.
type DietLog struct {
	ID       string    `json:"id"`
	BirdID   string    `json:"bird_id"`
	Date     time.Time `json:"date"`
	FoodType FoodType  `json:"food_type"`
	Amount   string    `json:"amount"`
	Notes    string    `json:"notes,omitempty"`
}
