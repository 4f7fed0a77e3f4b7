package birds

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/models"
	"github.com/mwhitlock/aviary/internal/utils"
	"github.com/mwhitlock/aviary/internal/validation"
)

type BirdAddCmd struct {
	Name      string `help:"Bird's name."`
	Species   string `help:"Species: Cockatiel, Budgie, or Other."`
	Age       string `help:"Age at creation, e.g. \"2y 3m\" or \"6m 15d\"."`
	BirthDate string `help:"Birth date (YYYY-MM-DD). Overrides --age." name:"birth-date"`
	Image     string `help:"Image URL. A placeholder is generated when omitted."`
}

func (c *BirdAddCmd) Run(ctx *cli.Context) error {
	name := c.Name
	species := c.Species
	ageStr := c.Age

	// Prompt for anything not given on the command line.
	if name == "" || species == "" {
		var fields []huh.Field
		if name == "" {
			fields = append(fields, huh.NewInput().
				Title("Name").
				Validate(validation.ValidateName).
				Value(&name))
		}
		if species == "" {
			fields = append(fields, huh.NewSelect[string]().
				Title("Species").
				Options(
					huh.NewOption("Cockatiel", "Cockatiel"),
					huh.NewOption("Budgie", "Budgie"),
					huh.NewOption("Other", "Other"),
				).
				Value(&species))
		}
		if ageStr == "" && c.BirthDate == "" {
			fields = append(fields, huh.NewInput().
				Title("Age (e.g. \"2y 3m\", leave empty if unknown)").
				Value(&ageStr))
		}

		form := huh.NewForm(huh.NewGroup(fields...))
		if err := form.Run(); err != nil {
			return fmt.Errorf("form error: %w", err)
		}
	}

	if err := validation.ValidateName(name); err != nil {
		return err
	}
	parsedSpecies, err := validation.ParseSpecies(species)
	if err != nil {
		return err
	}

	now := ctx.Now()
	var birthDate time.Time
	switch {
	case c.BirthDate != "":
		birthDate, err = validation.ParseDate(c.BirthDate)
		if err != nil {
			return err
		}
	case ageStr != "":
		age, err := validation.ParseAge(ageStr)
		if err != nil {
			return err
		}
		birthDate = utils.BirthDateFromAge(now, age.Years, age.Months, age.Days)
	}

	bird := models.Bird{
		ID:        uuid.NewString(),
		Name:      name,
		Species:   parsedSpecies,
		BirthDate: birthDate,
		Image:     c.Image,
		CreatedAt: now,
	}
	if bird.Image == "" {
		bird.Image = fmt.Sprintf("https://picsum.photos/seed/%s/200/200", bird.ID)
	}

	if err := ctx.Store.AddBird(bird); err != nil {
		return err
	}

	fmt.Printf("✓ Added %s (%s)\n", bird.Name, bird.Species)
	if !bird.BirthDate.IsZero() {
		fmt.Printf("  Age: %s\n", utils.FormatAge(bird.BirthDate, now))
	}
	return nil
}

type BirdListCmd struct {
	ShowIDs bool `help:"Show bird IDs." name:"show-ids"`
}

func (c *BirdListCmd) Run(ctx *cli.Context) error {
	birds, err := ctx.Store.GetAllBirds()
	if err != nil {
		return fmt.Errorf("failed to get birds: %w", err)
	}
	if len(birds) == 0 {
		fmt.Println("No birds found. Add one with 'aviary bird add'.")
		return nil
	}

	now := ctx.Now()
	fmt.Println("Birds:")
	for _, bird := range birds {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", bird.ID)
		}

		meds, err := ctx.Store.GetMedicationsForBird(bird.ID)
		if err != nil {
			return err
		}
		active := 0
		for _, med := range meds {
			if med.IsActive {
				active++
			}
		}

		fmt.Printf("  %s%s - %s, %s", bird.Name, idStr, bird.Species, utils.FormatAge(bird.BirthDate, now))
		if active > 0 {
			fmt.Printf(", %d active medication(s)", active)
		}
		fmt.Println()
	}
	return nil
}

type BirdShowCmd struct {
	ID string `arg:"" help:"Bird ID to show."`
}

func (c *BirdShowCmd) Run(ctx *cli.Context) error {
	bird, err := ctx.Store.GetBird(c.ID)
	if err != nil {
		return err
	}

	now := ctx.Now()
	fmt.Printf("%s\n", bird.Name)
	fmt.Printf("  Species: %s\n", bird.Species)
	fmt.Printf("  Age:     %s\n", utils.FormatAge(bird.BirthDate, now))
	if !bird.BirthDate.IsZero() {
		fmt.Printf("  Born:    %s (%d days old)\n", utils.DateKey(bird.BirthDate), utils.AgeInDays(bird.BirthDate, now))
	}
	if bird.Image != "" {
		fmt.Printf("  Image:   %s\n", bird.Image)
	}

	meds, err := ctx.Store.GetMedicationsForBird(bird.ID)
	if err != nil {
		return err
	}
	if len(meds) > 0 {
		fmt.Println("  Medications:")
		for _, med := range meds {
			status := "active"
			if !med.IsActive {
				status = "stopped"
			}
			fmt.Printf("    [%s] %s %s (%s at %v)\n", status, med.Name, med.Dosage, med.Frequency, med.Times)
		}
	}

	logs, err := ctx.Store.GetDietLogsForBird(bird.ID)
	if err != nil {
		return err
	}
	if len(logs) > 0 {
		fmt.Printf("  Diet logs: %d recorded\n", len(logs))
	}
	return nil
}

type BirdDeleteCmd struct {
	ID  string `arg:"" help:"Bird ID to delete."`
	Yes bool   `help:"Skip confirmation." short:"y"`
}

func (c *BirdDeleteCmd) Run(ctx *cli.Context) error {
	bird, err := ctx.Store.GetBird(c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s and all of their medications and diet logs?", bird.Name)).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("form error: %w", err)
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteBird(c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted %s\n", bird.Name)
	return nil
}
