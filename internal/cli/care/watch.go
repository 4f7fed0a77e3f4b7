package care

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/monitor"
	"github.com/mwhitlock/aviary/internal/notifier"
)

type WatchCmd struct {
	Interval time.Duration `help:"Poll interval. Defaults to the stored setting."`
	Quiet    bool          `help:"Only print when the overdue count changes."`
}

// Run keeps re-checking today's tasks until interrupted, sending a desktop
// notification the first time each task turns overdue.
func (c *WatchCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	interval := c.Interval
	if interval <= 0 {
		interval = time.Duration(settings.PollIntervalSec) * time.Second
	}

	var sink monitor.Notifier
	if settings.NotificationsEnabled {
		sink = notifier.New()
	}

	m := monitor.New(ctx.DeriveToday, interval, sink)

	watchCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching care tasks every %s (Ctrl+C to stop)...\n", interval)

	lastOverdue := -1
	m.Start(watchCtx, func(status monitor.Status) {
		if c.Quiet && status.OverdueCount == lastOverdue {
			return
		}
		lastOverdue = status.OverdueCount

		fmt.Printf("[%s] %d task(s), %d overdue\n",
			status.CheckedAt.Format("15:04:05"), status.TotalTasks, status.OverdueCount)
		for _, task := range status.Overdue {
			fmt.Printf("  ! %s %s - %s\n", task.DueTime, task.Title, cli.BirdLabel(ctx.Store, task.BirdID))
		}
	})

	fmt.Println("\nStopped.")
	return nil
}
