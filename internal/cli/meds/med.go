package meds

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/models"
	"github.com/mwhitlock/aviary/internal/validation"
)

type MedAddCmd struct {
	Bird      string `arg:"" help:"Bird ID the medication is for."`
	Name      string `help:"Medication name." required:""`
	Dosage    string `help:"Dosage description, e.g. \"0.2ml\"."`
	Frequency string `help:"daily, twice-daily, or weekly." default:"daily"`
	Times     string `help:"Comma-separated dose times (HH:MM)." required:""`
	Start     string `help:"Start date (YYYY-MM-DD). Defaults to today."`
	End       string `help:"End date (YYYY-MM-DD)."`
}

func (c *MedAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetBird(c.Bird); err != nil {
		return err
	}
	if err := validation.ValidateName(c.Name); err != nil {
		return err
	}

	frequency, err := validation.ParseFrequency(c.Frequency)
	if err != nil {
		return err
	}
	times, err := validation.ParseDoseTimes(c.Times)
	if err != nil {
		return err
	}

	startDate := ctx.Now()
	if c.Start != "" {
		startDate, err = validation.ParseDate(c.Start)
		if err != nil {
			return err
		}
	}
	var endDate *time.Time
	if c.End != "" {
		end, err := validation.ParseDate(c.End)
		if err != nil {
			return err
		}
		endDate = &end
	}

	med := models.Medication{
		ID:        uuid.NewString(),
		BirdID:    c.Bird,
		Name:      c.Name,
		Dosage:    c.Dosage,
		Frequency: frequency,
		Times:     times,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  true,
	}
	if err := med.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddMedication(med); err != nil {
		return err
	}

	fmt.Printf("✓ Added %s for %s (%s at %s)\n",
		med.Name, cli.BirdLabel(ctx.Store, med.BirdID), med.Frequency, strings.Join(med.Times, ", "))
	return nil
}

type MedListCmd struct {
	Bird    string `help:"Only show medications for this bird ID."`
	All     bool   `help:"Include stopped medications."`
	ShowIDs bool   `help:"Show medication IDs." name:"show-ids"`
}

func (c *MedListCmd) Run(ctx *cli.Context) error {
	var meds []models.Medication
	var err error
	if c.Bird != "" {
		meds, err = ctx.Store.GetMedicationsForBird(c.Bird)
	} else {
		meds, err = ctx.Store.GetAllMedications()
	}
	if err != nil {
		return fmt.Errorf("failed to get medications: %w", err)
	}

	shown := 0
	for _, med := range meds {
		if !c.All && !med.IsActive {
			continue
		}
		if shown == 0 {
			fmt.Println("Medications:")
		}
		shown++

		status := "active"
		if !med.IsActive {
			status = "stopped"
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", med.ID)
		}
		fmt.Printf("  [%s] %s%s for %s - %s, %s at %s\n",
			status, med.Name, idStr, cli.BirdLabel(ctx.Store, med.BirdID),
			med.Dosage, med.Frequency, strings.Join(med.Times, ", "))
	}
	if shown == 0 {
		fmt.Println("No medications found.")
	}
	return nil
}

type MedStopCmd struct {
	ID string `arg:"" help:"Medication ID to stop."`
}

// Run marks a medication inactive so it stops producing tasks. The store has
// no update-in-place, so this is a delete and re-add.
func (c *MedStopCmd) Run(ctx *cli.Context) error {
	med, err := ctx.Store.GetMedication(c.ID)
	if err != nil {
		return err
	}
	if !med.IsActive {
		fmt.Printf("%s is already stopped.\n", med.Name)
		return nil
	}

	if err := ctx.Store.DeleteMedication(c.ID); err != nil {
		return err
	}
	med.IsActive = false
	if err := ctx.Store.AddMedication(med); err != nil {
		return err
	}

	fmt.Printf("✓ Stopped %s\n", med.Name)
	return nil
}

type MedDeleteCmd struct {
	ID string `arg:"" help:"Medication ID to delete."`
}

func (c *MedDeleteCmd) Run(ctx *cli.Context) error {
	med, err := ctx.Store.GetMedication(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteMedication(c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted %s\n", med.Name)
	return nil
}
