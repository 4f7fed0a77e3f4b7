package models

import "testing"

func TestMedicationValidate(t *testing.T) {
	tests := []struct {
		name    string
		med     Medication
		wantErr bool
	}{
		{
			name: "valid daily",
			med: Medication{
				BirdID:    "b1",
				Name:      "Baytril",
				Frequency: FrequencyDaily,
				Times:     []string{"08:00"},
			},
			wantErr: false,
		},
		{
			name: "valid twice-daily",
			med: Medication{
				BirdID:    "b1",
				Name:      "Baytril",
				Frequency: FrequencyTwiceDaily,
				Times:     []string{"08:00", "20:00"},
			},
			wantErr: false,
		},
		{
			name: "twice-daily with one time",
			med: Medication{
				BirdID:    "b1",
				Name:      "Baytril",
				Frequency: FrequencyTwiceDaily,
				Times:     []string{"08:00"},
			},
			wantErr: true,
		},
		{
			name: "daily with two times",
			med: Medication{
				BirdID:    "b1",
				Name:      "Baytril",
				Frequency: FrequencyDaily,
				Times:     []string{"08:00", "20:00"},
			},
			wantErr: true,
		},
		{
			name: "missing bird reference",
			med: Medication{
				Name:      "Baytril",
				Frequency: FrequencyDaily,
				Times:     []string{"08:00"},
			},
			wantErr: true,
		},
		{
			name: "bad time format",
			med: Medication{
				BirdID:    "b1",
				Name:      "Baytril",
				Frequency: FrequencyDaily,
				Times:     []string{"8am"},
			},
			wantErr: true,
		},
		{
			name: "unknown frequency",
			med: Medication{
				BirdID:    "b1",
				Name:      "Baytril",
				Frequency: "hourly",
				Times:     []string{"08:00"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.med.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOccurrenceDate(t *testing.T) {
	tests := []struct {
		id       string
		wantDate string
		wantOK   bool
	}{
		{"m1-2024-01-01-0", "2024-01-01", true},
		{"m1-2024-01-01-1", "2024-01-01", true},
		{"b7-2024-02-29-diet", "2024-02-29", true},
		{"550e8400-e29b-41d4-a716-446655440000-2025-12-31-diet", "2025-12-31", true},
		{"not-an-occurrence", "", false},
		{"m1-2024-01-01-cleaning", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			date, ok := OccurrenceDate(tt.id)
			if ok != tt.wantOK || date != tt.wantDate {
				t.Errorf("OccurrenceDate(%q) = (%q, %v), want (%q, %v)", tt.id, date, ok, tt.wantDate, tt.wantOK)
			}
		})
	}
}
