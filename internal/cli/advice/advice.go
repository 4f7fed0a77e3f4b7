package advice

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwhitlock/aviary/internal/advisor"
	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/keyring"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// newClient resolves the API key from the environment first, then the OS
// keyring.
func newClient() (*advisor.Client, error) {
	if apiKey := os.Getenv("AVIARY_API_KEY"); apiKey != "" {
		return advisor.New(apiKey), nil
	}

	apiKey, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, errors.New("no advice API key found. Store one with 'aviary advice key set' or set AVIARY_API_KEY")
		}
		return nil, fmt.Errorf("failed to read API key from keyring: %w", err)
	}
	return advisor.New(apiKey), nil
}

func render(text string) {
	for _, line := range advisor.FormatLines(text) {
		if line.Header {
			fmt.Println(headerStyle.Render(line.Text))
		} else {
			fmt.Println(line.Text)
		}
	}
}

type AskCmd struct {
	Bird  string `arg:"" help:"Bird ID the question is about."`
	Query string `arg:"" help:"Your care question."`
}

func (c *AskCmd) Run(ctx *cli.Context) error {
	bird, err := ctx.Store.GetBird(c.Bird)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	text := withSpinner(fmt.Sprintf("Asking about %s...", bird.Name), func() string {
		return client.BirdAdvice(context.Background(), bird, c.Query, settings.Language)
	})
	render(text)
	return nil
}

type FactsheetCmd struct {
	Species string `arg:"" help:"Species to look up, e.g. Cockatiel."`
}

func (c *FactsheetCmd) Run(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	text := withSpinner(fmt.Sprintf("Looking up %s...", c.Species), func() string {
		return client.SpeciesFactsheet(context.Background(), c.Species, settings.Language)
	})
	render(text)
	return nil
}

type DietCmd struct {
	Bird string `arg:"" help:"Bird ID whose diet to analyze."`
}

func (c *DietCmd) Run(ctx *cli.Context) error {
	bird, err := ctx.Store.GetBird(c.Bird)
	if err != nil {
		return err
	}
	logs, err := ctx.Store.GetDietLogsForBird(c.Bird)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		return fmt.Errorf("no diet logs for %s yet. Log some feedings first with 'aviary diet log'", bird.Name)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	text := withSpinner(fmt.Sprintf("Analyzing %d diet log(s) for %s...", len(logs), bird.Name), func() string {
		return client.AnalyzeDiet(context.Background(), logs, string(bird.Species), settings.Language)
	})
	render(text)
	return nil
}

type KeySetCmd struct {
	Key string `arg:"" help:"Gemini API key to store in the OS keyring."`
}

func (c *KeySetCmd) Run(ctx *cli.Context) error {
	if c.Key == "" {
		return errors.New("API key must not be empty")
	}
	if err := keyring.SetAPIKey(c.Key); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	fmt.Println("✓ API key stored in OS keyring")
	return nil
}

type KeyShowCmd struct{}

func (c *KeyShowCmd) Run(ctx *cli.Context) error {
	apiKey, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return fmt.Errorf("failed to read API key from keyring: %w", err)
	}
	fmt.Println(maskKey(apiKey))
	return nil
}

type KeyDeleteCmd struct{}

func (c *KeyDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return fmt.Errorf("failed to delete API key from keyring: %w", err)
	}
	fmt.Println("✓ API key removed from OS keyring")
	return nil
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
