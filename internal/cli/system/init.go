package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"State file to migrate data from (.json or .db)."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		statePath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absState, err := filepath.Abs(statePath)
			if err == nil {
				statePath = absState
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == statePath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", statePath)
			}
		}
		if _, err := os.Stat(statePath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(statePath); err != nil {
				return fmt.Errorf("failed to delete existing state: %w", err)
			}
			fmt.Printf("Deleted existing state at: %s\n", statePath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing state: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized aviary storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}
	return nil
}

// migrateData copies everything from another state file, letting users move
// between the JSON and the SQLite backend.
func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	if filepath.Ext(sourcePath) == ".db" {
		sourceStore = storage.NewSQLiteStore(sourcePath)
	} else {
		sourceStore = storage.NewJSONStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source state: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Println("  Migrating birds...")
	birds, err := sourceStore.GetAllBirds()
	if err != nil {
		return fmt.Errorf("failed to get birds from source: %w", err)
	}
	for _, bird := range birds {
		if err := ctx.Store.AddBird(bird); err != nil {
			return fmt.Errorf("failed to add bird %s: %w", bird.ID, err)
		}
	}
	fmt.Printf("    Migrated %d birds\n", len(birds))

	fmt.Println("  Migrating medications...")
	meds, err := sourceStore.GetAllMedications()
	if err != nil {
		return fmt.Errorf("failed to get medications from source: %w", err)
	}
	for _, med := range meds {
		if err := ctx.Store.AddMedication(med); err != nil {
			return fmt.Errorf("failed to add medication %s: %w", med.ID, err)
		}
	}
	fmt.Printf("    Migrated %d medications\n", len(meds))

	fmt.Println("  Migrating diet logs...")
	logs, err := sourceStore.GetAllDietLogs()
	if err != nil {
		return fmt.Errorf("failed to get diet logs from source: %w", err)
	}
	for _, dl := range logs {
		if err := ctx.Store.AddDietLog(dl); err != nil {
			return fmt.Errorf("failed to add diet log %s: %w", dl.ID, err)
		}
	}
	fmt.Printf("    Migrated %d diet logs\n", len(logs))

	fmt.Println("  Migrating completed tasks...")
	ids, err := sourceStore.GetCompletedTaskIDs()
	if err != nil {
		return fmt.Errorf("failed to get completed tasks from source: %w", err)
	}
	for _, id := range ids {
		if err := ctx.Store.ToggleCompletedTask(id); err != nil {
			return fmt.Errorf("failed to add completed task %s: %w", id, err)
		}
	}
	fmt.Printf("    Migrated %d completed task ids\n", len(ids))

	return nil
}
