package settings

import (
	"fmt"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/utils"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	fmt.Println("Settings:")
	fmt.Printf("  Feed time:      %s\n", settings.FeedTime)
	fmt.Printf("  Notifications:  %v\n", settings.NotificationsEnabled)
	fmt.Printf("  Timezone:       %s\n", settings.Timezone)
	fmt.Printf("  Language:       %s\n", settings.Language)
	fmt.Printf("  Poll interval:  %ds\n", settings.PollIntervalSec)
	return nil
}

type SetCmd struct {
	FeedTime      string `help:"Daily feeding time (HH:MM)." name:"feed-time"`
	Notifications string `help:"Enable desktop notifications (on/off)."`
	Timezone      string `help:"IANA timezone name, or \"Local\"."`
	Language      string `help:"Language for AI advice responses."`
	PollInterval  int    `help:"Overdue poll interval in seconds." name:"poll-interval"`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	changed := false
	if c.FeedTime != "" {
		if !utils.ValidateTimeFormat(c.FeedTime) {
			return fmt.Errorf("invalid feed time %q (expected HH:MM)", c.FeedTime)
		}
		settings.FeedTime = c.FeedTime
		changed = true
	}
	if c.Notifications != "" {
		switch c.Notifications {
		case "on", "true", "yes":
			settings.NotificationsEnabled = true
		case "off", "false", "no":
			settings.NotificationsEnabled = false
		default:
			return fmt.Errorf("invalid notifications value %q (expected on or off)", c.Notifications)
		}
		changed = true
	}
	if c.Timezone != "" {
		if !utils.ValidateTimezone(c.Timezone) {
			return fmt.Errorf("invalid timezone %q", c.Timezone)
		}
		settings.Timezone = c.Timezone
		changed = true
	}
	if c.Language != "" {
		settings.Language = c.Language
		changed = true
	}
	if c.PollInterval > 0 {
		settings.PollIntervalSec = c.PollInterval
		changed = true
	}

	if !changed {
		fmt.Println("Nothing to change. See 'aviary settings set --help'.")
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("✓ Settings updated")
	return nil
}
