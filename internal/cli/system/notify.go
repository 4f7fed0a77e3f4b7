package system

import (
	"fmt"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/constants"
	"github.com/mwhitlock/aviary/internal/monitor"
	"github.com/mwhitlock/aviary/internal/notifier"
)

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

// Run performs one overdue sweep, meant to be invoked from cron or a timer.
func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled && !c.DryRun {
		return nil
	}

	tasks, err := ctx.DeriveToday()
	if err != nil {
		return err
	}

	now := ctx.Now()
	n := notifier.New()
	for _, task := range tasks {
		if task.IsCompleted || !monitor.IsOverdue(task, now) {
			continue
		}

		body := fmt.Sprintf("Don't forget: %s for your bird!", task.Title)
		if c.DryRun {
			fmt.Printf("[DryRun] %s: %s\n", constants.NotificationTitle, body)
			continue
		}
		if err := n.Notify(constants.NotificationTitle, body); err != nil {
			fmt.Printf("Failed to send notification: %v\n", err)
		}
	}
	return nil
}
