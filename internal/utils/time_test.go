package utils

import (
	"testing"
	"time"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		timeStr string
		want    int
		wantErr bool
	}{
		{"midnight", "00:00", 0, false},
		{"morning", "08:00", 480, false},
		{"evening", "20:30", 1230, false},
		{"end of day", "23:59", 1439, false},
		{"unpadded hour still parses", "8:00", 480, false},
		{"not a time", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.timeStr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTimeToMinutes() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseTimeToMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	got := DateKey(time.Date(2024, time.January, 5, 23, 59, 0, 0, time.UTC))
	if got != "2024-01-05" {
		t.Errorf("DateKey() = %q, want %q", got, "2024-01-05")
	}
}

func TestValidateTimeFormat(t *testing.T) {
	if !ValidateTimeFormat("09:15") {
		t.Error("expected 09:15 to be valid")
	}
	if ValidateTimeFormat("9:15pm") {
		t.Error("expected 9:15pm to be invalid")
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		timezone string
		want     bool
	}{
		{"", true},
		{"Local", true},
		{"UTC", true},
		{"America/New_York", true},
		{"Invalid/Timezone", false},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			if got := ValidateTimezone(tt.timezone); got != tt.want {
				t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
			}
		})
	}
}
