package care

import (
	"fmt"
	"strings"
	"time"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/models"
	"github.com/mwhitlock/aviary/internal/monitor"
	"github.com/mwhitlock/aviary/internal/utils"
	"github.com/mwhitlock/aviary/internal/validation"
)

type TodayCmd struct {
	ShowIDs bool   `help:"Show task IDs (needed for 'aviary done')." name:"show-ids"`
	Date    string `help:"Derive tasks for a specific date (YYYY-MM-DD) instead of today."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	day := now
	isToday := true
	if c.Date != "" {
		parsed, err := validation.ParseDate(c.Date)
		if err != nil {
			return err
		}
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())
		if utils.DateKey(parsed) != utils.DateKey(now) {
			day = parsed
			isToday = false
		}
	}

	tasks, err := ctx.DeriveAt(day)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No care tasks for this day. Add a bird or a medication first.")
		return nil
	}

	remaining := 0
	if isToday {
		fmt.Printf("Today's care tasks (%s):\n", day.Format("Mon Jan 2"))
	} else {
		fmt.Printf("Care tasks for %s:\n", day.Format("Mon Jan 2"))
	}
	for _, task := range tasks {
		marker := "[ ]"
		suffix := ""
		switch {
		case task.IsCompleted:
			marker = "[x]"
		case isToday && monitor.IsOverdue(task, now):
			suffix = "  OVERDUE"
			remaining++
		default:
			remaining++
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf("  (%s)", task.ID)
		}
		fmt.Printf("  %s %s  %s - %s%s%s\n",
			marker, task.DueTime, task.Title, cli.BirdLabel(ctx.Store, task.BirdID), suffix, idStr)
	}

	if remaining == 0 {
		fmt.Println("\nAll done here!")
	} else {
		fmt.Printf("\n%d task(s) remaining.\n", remaining)
	}
	return nil
}

type DoneCmd struct {
	Task string `arg:"" help:"Task ID (or unique prefix) to toggle."`
}

// Run toggles completion for one of today's tasks. The id may be a unique
// prefix of a derived task id.
func (c *DoneCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.DeriveToday()
	if err != nil {
		return err
	}

	task, err := matchTask(tasks, c.Task)
	if err != nil {
		return err
	}

	if err := ctx.Store.ToggleCompletedTask(task.ID); err != nil {
		return err
	}

	if task.IsCompleted {
		fmt.Printf("✓ Reopened: %s\n", task.Title)
	} else {
		fmt.Printf("✓ Completed: %s\n", task.Title)
	}
	return nil
}

func matchTask(tasks []models.Task, query string) (models.Task, error) {
	var matches []models.Task
	for _, task := range tasks {
		if task.ID == query {
			return task, nil
		}
		if strings.HasPrefix(task.ID, query) {
			matches = append(matches, task)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Task{}, fmt.Errorf("no task matches %q (run 'aviary today --show-ids')", query)
	default:
		return models.Task{}, fmt.Errorf("%q matches %d tasks, be more specific", query, len(matches))
	}
}
