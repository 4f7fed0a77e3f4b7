package system

import (
	"path/filepath"
	"testing"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/models"
	"github.com/mwhitlock/aviary/internal/storage"
)

func TestInitCmd_MigratesFromSource(t *testing.T) {
	dir := t.TempDir()

	sourcePath := filepath.Join(dir, "old.json")
	source := storage.NewJSONStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatal(err)
	}
	if err := source.AddBird(models.Bird{ID: "b1", Name: "Kiwi", Species: models.SpeciesCockatiel}); err != nil {
		t.Fatal(err)
	}
	if err := source.AddMedication(models.Medication{
		ID: "m1", BirdID: "b1", Name: "Baytril",
		Frequency: models.FrequencyDaily, Times: []string{"09:00"}, IsActive: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := source.AddDietLog(models.DietLog{ID: "d1", BirdID: "b1", FoodType: models.FoodSeeds}); err != nil {
		t.Fatal(err)
	}
	if err := source.ToggleCompletedTask("m1-2024-01-01-0"); err != nil {
		t.Fatal(err)
	}

	destPath := filepath.Join(dir, "new.json")
	dest := storage.NewJSONStore(destPath)
	ctx := &cli.Context{Store: dest}

	cmd := InitCmd{Source: sourcePath}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	birds, err := dest.GetAllBirds()
	if err != nil {
		t.Fatal(err)
	}
	if len(birds) != 1 || birds[0].Name != "Kiwi" {
		t.Errorf("migrated birds = %+v", birds)
	}

	meds, _ := dest.GetAllMedications()
	if len(meds) != 1 || meds[0].ID != "m1" {
		t.Errorf("migrated medications = %+v", meds)
	}

	logs, _ := dest.GetAllDietLogs()
	if len(logs) != 1 {
		t.Errorf("migrated diet logs = %+v", logs)
	}

	ids, _ := dest.GetCompletedTaskIDs()
	if len(ids) != 1 || ids[0] != "m1-2024-01-01-0" {
		t.Errorf("migrated completed ids = %v", ids)
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "aviary_v1.json")

	store := storage.NewJSONStore(statePath)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	ctx := &cli.Context{Store: store}
	cmd := InitCmd{Force: true, Source: statePath}
	if err := cmd.Run(ctx); err == nil {
		t.Error("Run() expected error when source equals destination")
	}
}
