package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/cli/advice"
	"github.com/mwhitlock/aviary/internal/cli/backups"
	"github.com/mwhitlock/aviary/internal/cli/birds"
	"github.com/mwhitlock/aviary/internal/cli/care"
	"github.com/mwhitlock/aviary/internal/cli/diet"
	"github.com/mwhitlock/aviary/internal/cli/meds"
	"github.com/mwhitlock/aviary/internal/cli/settings"
	"github.com/mwhitlock/aviary/internal/cli/system"
	"github.com/mwhitlock/aviary/internal/constants"
	apperrors "github.com/mwhitlock/aviary/internal/errors"
	"github.com/mwhitlock/aviary/internal/logger"
	"github.com/mwhitlock/aviary/internal/storage"
	"github.com/mwhitlock/aviary/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"State file path. Use a .db extension for the SQLite backend." default:"~/.config/aviary/aviary_v1.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init  system.InitCmd `cmd:"" help:"Initialize aviary storage."`
	Tui   system.TuiCmd  `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Today care.TodayCmd  `cmd:"" help:"Show today's care tasks."`
	Done  care.DoneCmd   `cmd:"" help:"Toggle completion of a task."`
	Watch care.WatchCmd  `cmd:"" help:"Watch for overdue tasks and notify."`
	Bird  struct {
		Add    birds.BirdAddCmd    `cmd:"" help:"Add a new bird."`
		List   birds.BirdListCmd   `cmd:"" help:"List all birds." default:"1"`
		Show   birds.BirdShowCmd   `cmd:"" help:"Show one bird in detail."`
		Delete birds.BirdDeleteCmd `cmd:"" help:"Delete a bird and everything attached to it."`
	} `cmd:"" help:"Manage birds."`
	Med struct {
		Add    meds.MedAddCmd    `cmd:"" help:"Add a medication schedule."`
		List   meds.MedListCmd   `cmd:"" help:"List medications." default:"1"`
		Stop   meds.MedStopCmd   `cmd:"" help:"Stop a medication without deleting its history."`
		Delete meds.MedDeleteCmd `cmd:"" help:"Delete a medication."`
	} `cmd:"" help:"Manage medication schedules."`
	Diet struct {
		Log  diet.DietLogCmd  `cmd:"" help:"Log a feeding."`
		List diet.DietListCmd `cmd:"" help:"List diet logs." default:"1"`
	} `cmd:"" help:"Track what your birds eat."`
	Advice struct {
		Ask       advice.AskCmd       `cmd:"" help:"Ask a care question about a bird." default:"1"`
		Factsheet advice.FactsheetCmd `cmd:"" help:"Show an AI species factsheet."`
		Diet      advice.DietCmd      `cmd:"" help:"Analyze a bird's diet balance."`
		Key       struct {
			Set    advice.KeySetCmd    `cmd:"" help:"Store the advice API key in the OS keyring."`
			Show   advice.KeyShowCmd   `cmd:"" help:"Show the stored API key (masked)."`
			Delete advice.KeyDeleteCmd `cmd:"" help:"Remove the API key from the OS keyring."`
		} `cmd:"" help:"Manage the advice API key."`
	} `cmd:"" help:"AI-assisted care advice."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data backups."`
	Settings struct {
		Show settings.ShowCmd `cmd:"" help:"Show current settings." default:"1"`
		Set  settings.SetCmd  `cmd:"" help:"Change settings."`
	} `cmd:"" help:"Manage application settings."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send overdue notifications (used internally)."`
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Bird care companion: medication schedules, feeding tasks, and AI advice"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandPath(CLI.Config)
	if err := logger.Init(filepath.Dir(configPath), CLI.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	var store storage.Provider
	if filepath.Ext(configPath) == ".db" {
		store = storage.NewSQLiteStore(configPath)
	} else {
		store = storage.NewJSONStore(configPath)
	}

	appCtx := &cli.Context{Store: store}

	// Init handles its own lifecycle, everything else loads first.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		pruneCompleted(appCtx)
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

// pruneCompleted drops completion records whose occurrence date has aged out.
func pruneCompleted(ctx *cli.Context) {
	cutoff := utils.DateKey(ctx.Now().AddDate(0, 0, -constants.CompletedRetentionDays))
	pruned, err := ctx.Store.PruneCompletedTasks(cutoff)
	if err != nil {
		logger.Warn("Failed to prune completed tasks", "error", err)
		return
	}
	if pruned > 0 {
		logger.Debug("Pruned old completion records", "count", pruned, "before", cutoff)
	}
}
