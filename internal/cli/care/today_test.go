package care

import (
	"testing"

	"github.com/mwhitlock/aviary/internal/models"
)

func TestMatchTask(t *testing.T) {
	tasks := []models.Task{
		{ID: "med-1-2024-01-01-0", Title: "Medicine: Baytril"},
		{ID: "med-1-2024-01-01-1", Title: "Medicine: Baytril"},
		{ID: "bird-1-2024-01-01-diet", Title: "Feed Kiwi"},
	}

	tests := []struct {
		name    string
		query   string
		wantID  string
		wantErr bool
	}{
		{"exact id", "bird-1-2024-01-01-diet", "bird-1-2024-01-01-diet", false},
		{"unique prefix", "bird-1", "bird-1-2024-01-01-diet", false},
		{"ambiguous prefix", "med-1", "", true},
		{"longer unique prefix", "med-1-2024-01-01-1", "med-1-2024-01-01-1", false},
		{"no match", "zzz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchTask(tasks, tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("matchTask(%q) error = %v, wantErr %v", tt.query, err, tt.wantErr)
			}
			if !tt.wantErr && got.ID != tt.wantID {
				t.Errorf("matchTask(%q) = %s, want %s", tt.query, got.ID, tt.wantID)
			}
		})
	}
}
