package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/mwhitlock/aviary/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aviary_v1.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return store
}

func testBird(id, name string) models.Bird {
	return models.Bird{
		ID:        id,
		Name:      name,
		Species:   models.SpeciesCockatiel,
		BirthDate: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testMedication(id, birdID string) models.Medication {
	return models.Medication{
		ID:        id,
		BirdID:    birdID,
		Name:      "Baytril",
		Dosage:    "0.2ml",
		Frequency: models.FrequencyDaily,
		Times:     []string{"09:00"},
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
}

func TestJSONStore_LoadMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aviary_v1.json")
	store := NewJSONStore(path)

	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	birds, err := store.GetAllBirds()
	if err != nil {
		t.Fatalf("GetAllBirds() error = %v", err)
	}
	if len(birds) != 0 {
		t.Errorf("expected no birds, got %d", len(birds))
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.FeedTime != "08:00" {
		t.Errorf("expected default feed time 08:00, got %q", settings.FeedTime)
	}
}

func TestJSONStore_LoadCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aviary_v1.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	store := NewJSONStore(path)

	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v, want recovery", err)
	}

	ids, err := store.GetCompletedTaskIDs()
	if err != nil {
		t.Fatalf("GetCompletedTaskIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty completed set, got %v", ids)
	}
}

func TestJSONStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aviary_v1.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	bird := testBird("b1", "Kiwi")
	if err := store.AddBird(bird); err != nil {
		t.Fatalf("AddBird() error = %v", err)
	}
	if err := store.AddMedication(testMedication("m1", "b1")); err != nil {
		t.Fatalf("AddMedication() error = %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got, err := reopened.GetBird("b1")
	if err != nil {
		t.Fatalf("GetBird() error = %v", err)
	}
	if got.Name != "Kiwi" || got.Species != models.SpeciesCockatiel {
		t.Errorf("GetBird() = %+v, want persisted bird", got)
	}

	meds, err := reopened.GetMedicationsForBird("b1")
	if err != nil {
		t.Fatalf("GetMedicationsForBird() error = %v", err)
	}
	if len(meds) != 1 || meds[0].ID != "m1" {
		t.Errorf("GetMedicationsForBird() = %+v, want [m1]", meds)
	}
}

func TestJSONStore_DeleteBirdCascades(t *testing.T) {
	store := newTestStore(t)

	for _, bird := range []models.Bird{testBird("b1", "Kiwi"), testBird("b2", "Mango")} {
		if err := store.AddBird(bird); err != nil {
			t.Fatal(err)
		}
	}
	for _, med := range []models.Medication{
		testMedication("m1", "b1"),
		testMedication("m2", "b1"),
		testMedication("m3", "b2"),
	} {
		if err := store.AddMedication(med); err != nil {
			t.Fatal(err)
		}
	}
	for _, dl := range []models.DietLog{
		{ID: "d1", BirdID: "b1", FoodType: models.FoodSeeds, Amount: "1 tsp"},
		{ID: "d2", BirdID: "b2", FoodType: models.FoodPellets, Amount: "2 tsp"},
	} {
		if err := store.AddDietLog(dl); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.DeleteBird("b1"); err != nil {
		t.Fatalf("DeleteBird() error = %v", err)
	}

	meds, _ := store.GetAllMedications()
	if len(meds) != 1 || meds[0].ID != "m3" {
		t.Errorf("after cascade, medications = %+v, want only m3", meds)
	}

	logs, _ := store.GetAllDietLogs()
	if len(logs) != 1 || logs[0].ID != "d2" {
		t.Errorf("after cascade, diet logs = %+v, want only d2", logs)
	}

	if _, err := store.GetBird("b2"); err != nil {
		t.Errorf("unrelated bird removed: %v", err)
	}
}

func TestJSONStore_DeleteBirdNotFound(t *testing.T) {
	store := newTestStore(t)
	if err := store.DeleteBird("missing"); err == nil {
		t.Error("DeleteBird() expected error for unknown id")
	}
}

func TestJSONStore_ToggleCompletedTaskRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.ToggleCompletedTask("m1-2024-01-01-0"); err != nil {
		t.Fatal(err)
	}
	before, err := store.GetCompletedTaskIDs()
	if err != nil {
		t.Fatal(err)
	}

	// Toggling any id twice must leave the set unchanged.
	for _, id := range []string{"m2-2024-01-01-0", "m1-2024-01-01-0"} {
		if err := store.ToggleCompletedTask(id); err != nil {
			t.Fatal(err)
		}
		if err := store.ToggleCompletedTask(id); err != nil {
			t.Fatal(err)
		}
	}

	after, err := store.GetCompletedTaskIDs()
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(before)
	sort.Strings(after)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("completed set changed: before = %v, after = %v", before, after)
	}
}

func TestJSONStore_PruneCompletedTasks(t *testing.T) {
	store := newTestStore(t)

	ids := []string{
		"m1-2023-12-01-0",
		"m1-2024-01-15-0",
		"b1-2023-11-30-diet",
		"not-a-task-id",
	}
	for _, id := range ids {
		if err := store.ToggleCompletedTask(id); err != nil {
			t.Fatal(err)
		}
	}

	pruned, err := store.PruneCompletedTasks("2024-01-01")
	if err != nil {
		t.Fatalf("PruneCompletedTasks() error = %v", err)
	}
	if pruned != 2 {
		t.Errorf("pruned = %d, want 2", pruned)
	}

	remaining, _ := store.GetCompletedTaskIDs()
	want := []string{"m1-2024-01-15-0", "not-a-task-id"}
	sort.Strings(remaining)
	sort.Strings(want)
	if !reflect.DeepEqual(remaining, want) {
		t.Errorf("remaining = %v, want %v", remaining, want)
	}
}

func TestJSONStore_InitRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aviary_v1.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(path).Init(); err == nil {
		t.Error("Init() expected error on already-initialized path")
	}
}
