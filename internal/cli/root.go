package cli

import (
	"fmt"
	"time"

	"github.com/mwhitlock/aviary/internal/backup"
	"github.com/mwhitlock/aviary/internal/logger"
	"github.com/mwhitlock/aviary/internal/models"
	"github.com/mwhitlock/aviary/internal/scheduler"
	"github.com/mwhitlock/aviary/internal/storage"
	"github.com/mwhitlock/aviary/internal/utils"
)

// Context carries the shared dependencies into every command.
type Context struct {
	Store storage.Provider
}

// Now returns the current time in the configured timezone, falling back to
// local time when the setting is unusable.
func (c *Context) Now() time.Time {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Now()
	}
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return time.Now()
	}
	return now
}

// NewScheduler builds a task deriver from the stored feed time.
func (c *Context) NewScheduler() (*scheduler.Scheduler, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return scheduler.New(settings.FeedTime), nil
}

// DeriveToday recomputes today's task list from current entities.
func (c *Context) DeriveToday() ([]models.Task, error) {
	return c.DeriveAt(c.Now())
}

// DeriveAt derives the task list for the day containing now.
func (c *Context) DeriveAt(now time.Time) ([]models.Task, error) {
	sched, err := c.NewScheduler()
	if err != nil {
		return nil, err
	}

	birds, err := c.Store.GetAllBirds()
	if err != nil {
		return nil, fmt.Errorf("failed to get birds: %w", err)
	}
	medications, err := c.Store.GetAllMedications()
	if err != nil {
		return nil, fmt.Errorf("failed to get medications: %w", err)
	}
	completedIDs, err := c.Store.GetCompletedTaskIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to get completed tasks: %w", err)
	}

	return sched.DeriveTasks(birds, medications, scheduler.CompletedSet(completedIDs), now), nil
}

// PerformAutomaticBackup snapshots the state file without interrupting the
// user's workflow on failure.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// BirdLabel resolves a bird id to its name for display. Tasks can outlive
// their bird within a session, so a missing bird gets a placeholder instead
// of an error.
func BirdLabel(store storage.Provider, birdID string) string {
	bird, err := store.GetBird(birdID)
	if err != nil {
		return "(removed bird)"
	}
	return bird.Name
}
