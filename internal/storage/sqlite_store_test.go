package storage

import (
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/mwhitlock/aviary/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aviary_v1.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_InitSeedsDefaultSettings(t *testing.T) {
	store := newTestSQLiteStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.FeedTime != "08:00" {
		t.Errorf("feed time = %q, want 08:00", settings.FeedTime)
	}
	if settings.NotificationsEnabled {
		t.Error("notifications should default to disabled")
	}
}

func TestSQLiteStore_BirdRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	bird := testBird("b1", "Kiwi")
	if err := store.AddBird(bird); err != nil {
		t.Fatalf("AddBird() error = %v", err)
	}

	got, err := store.GetBird("b1")
	if err != nil {
		t.Fatalf("GetBird() error = %v", err)
	}
	if got.Name != "Kiwi" || got.Species != models.SpeciesCockatiel {
		t.Errorf("GetBird() = %+v, want persisted bird", got)
	}
	if !got.BirthDate.Equal(bird.BirthDate) {
		t.Errorf("birth date = %v, want %v", got.BirthDate, bird.BirthDate)
	}

	if _, err := store.GetBird("missing"); err == nil {
		t.Error("GetBird() expected error for unknown id")
	}
}

func TestSQLiteStore_MedicationTimesSurviveStorage(t *testing.T) {
	store := newTestSQLiteStore(t)

	med := testMedication("m1", "b1")
	med.Frequency = models.FrequencyTwiceDaily
	med.Times = []string{"09:00", "21:00"}
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	med.EndDate = &end

	if err := store.AddMedication(med); err != nil {
		t.Fatalf("AddMedication() error = %v", err)
	}

	got, err := store.GetMedication("m1")
	if err != nil {
		t.Fatalf("GetMedication() error = %v", err)
	}
	if !reflect.DeepEqual(got.Times, []string{"09:00", "21:00"}) {
		t.Errorf("times = %v, want [09:00 21:00]", got.Times)
	}
	if got.EndDate == nil || !got.EndDate.Equal(end) {
		t.Errorf("end date = %v, want %v", got.EndDate, end)
	}
	if !got.IsActive {
		t.Error("is_active flag lost in storage")
	}
}

func TestSQLiteStore_DeleteBirdCascades(t *testing.T) {
	store := newTestSQLiteStore(t)

	for _, bird := range []models.Bird{testBird("b1", "Kiwi"), testBird("b2", "Mango")} {
		if err := store.AddBird(bird); err != nil {
			t.Fatal(err)
		}
	}
	for _, med := range []models.Medication{testMedication("m1", "b1"), testMedication("m2", "b2")} {
		if err := store.AddMedication(med); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.AddDietLog(models.DietLog{ID: "d1", BirdID: "b1", FoodType: models.FoodSeeds}); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteBird("b1"); err != nil {
		t.Fatalf("DeleteBird() error = %v", err)
	}

	meds, _ := store.GetAllMedications()
	if len(meds) != 1 || meds[0].ID != "m2" {
		t.Errorf("after cascade, medications = %+v, want only m2", meds)
	}
	logs, _ := store.GetAllDietLogs()
	if len(logs) != 0 {
		t.Errorf("after cascade, diet logs = %+v, want none", logs)
	}
}

func TestSQLiteStore_ToggleAndPruneCompletedTasks(t *testing.T) {
	store := newTestSQLiteStore(t)

	for _, id := range []string{"m1-2023-12-01-0", "m1-2024-01-15-0"} {
		if err := store.ToggleCompletedTask(id); err != nil {
			t.Fatal(err)
		}
	}

	// Toggle off and back on, set must be unchanged.
	if err := store.ToggleCompletedTask("m1-2024-01-15-0"); err != nil {
		t.Fatal(err)
	}
	if err := store.ToggleCompletedTask("m1-2024-01-15-0"); err != nil {
		t.Fatal(err)
	}

	pruned, err := store.PruneCompletedTasks("2024-01-01")
	if err != nil {
		t.Fatalf("PruneCompletedTasks() error = %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}

	remaining, _ := store.GetCompletedTaskIDs()
	sort.Strings(remaining)
	if !reflect.DeepEqual(remaining, []string{"m1-2024-01-15-0"}) {
		t.Errorf("remaining = %v, want [m1-2024-01-15-0]", remaining)
	}
}

func TestSQLiteStore_InsertionOrderPreserved(t *testing.T) {
	store := newTestSQLiteStore(t)

	names := []string{"Charlie", "Alpha", "Bravo"}
	for i, name := range names {
		bird := testBird(string(rune('a'+i)), name)
		if err := store.AddBird(bird); err != nil {
			t.Fatal(err)
		}
	}

	birds, err := store.GetAllBirds()
	if err != nil {
		t.Fatal(err)
	}
	for i, bird := range birds {
		if bird.Name != names[i] {
			t.Errorf("birds[%d].Name = %q, want %q", i, bird.Name, names[i])
		}
	}
}
