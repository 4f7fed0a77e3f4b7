package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mwhitlock/aviary/internal/constants"
	"github.com/mwhitlock/aviary/internal/models"
	"github.com/mwhitlock/aviary/internal/utils"
)

// ParseSpecies normalizes and validates a species name.
func ParseSpecies(input string) (models.BirdSpecies, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "cockatiel":
		return models.SpeciesCockatiel, nil
	case "budgie", "budgerigar", "parakeet":
		return models.SpeciesBudgie, nil
	case "other":
		return models.SpeciesOther, nil
	default:
		return "", fmt.Errorf("unknown species %q (expected Cockatiel, Budgie, or Other)", input)
	}
}

// ParseFoodType normalizes and validates a food type.
func ParseFoodType(input string) (models.FoodType, error) {
	food := models.FoodType(strings.ToLower(strings.TrimSpace(input)))
	if !food.IsValid() {
		return "", fmt.Errorf("unknown food type %q (expected seeds, pellets, vegetables, fruits, or treats)", input)
	}
	return food, nil
}

// ParseFrequency normalizes and validates a medication frequency.
func ParseFrequency(input string) (models.Frequency, error) {
	freq := models.Frequency(strings.ToLower(strings.TrimSpace(input)))
	if !freq.IsValid() {
		return "", fmt.Errorf("unknown frequency %q (expected daily, twice-daily, or weekly)", input)
	}
	return freq, nil
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(input string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, strings.TrimSpace(input))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", input)
	}
	return t, nil
}

// ParseDoseTimes splits a comma-separated list of HH:MM values.
func ParseDoseTimes(input string) ([]string, error) {
	var times []string
	for _, raw := range strings.Split(input, ",") {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if !utils.ValidateTimeFormat(value) {
			return nil, fmt.Errorf("invalid time %q (expected HH:MM)", value)
		}
		times = append(times, value)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("at least one dose time is required")
	}
	return times, nil
}

var agePartRe = regexp.MustCompile(`^(\d+)([ymd])$`)

// ParseAge reads a compact age expression like "2y 3m" or "1y 2m 15d".
// Parts may appear in any combination but each unit at most once.
func ParseAge(input string) (utils.Age, error) {
	var age utils.Age
	seen := map[string]bool{}

	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return utils.Age{}, fmt.Errorf("empty age (expected e.g. \"2y 3m\")")
	}

	for _, field := range fields {
		m := agePartRe.FindStringSubmatch(field)
		if m == nil {
			return utils.Age{}, fmt.Errorf("invalid age part %q (expected e.g. \"2y 3m 15d\")", field)
		}
		if seen[m[2]] {
			return utils.Age{}, fmt.Errorf("duplicate age unit %q", m[2])
		}
		seen[m[2]] = true

		n, err := strconv.Atoi(m[1])
		if err != nil {
			return utils.Age{}, fmt.Errorf("invalid age part %q: %w", field, err)
		}
		switch m[2] {
		case "y":
			age.Years = n
		case "m":
			age.Months = n
		case "d":
			age.Days = n
		}
	}
	return age, nil
}

// ValidateName checks a display name for birds and medications.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	return nil
}
