package diet

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mwhitlock/aviary/internal/cli"
	"github.com/mwhitlock/aviary/internal/models"
	"github.com/mwhitlock/aviary/internal/utils"
	"github.com/mwhitlock/aviary/internal/validation"
)

type DietLogCmd struct {
	Bird   string `arg:"" help:"Bird ID the food was given to."`
	Food   string `arg:"" help:"Food type: seeds, pellets, vegetables, fruits, or treats."`
	Amount string `help:"Amount given, e.g. \"1 tsp\"."`
	Notes  string `help:"Free-form notes."`
	Date   string `help:"Date of the feeding (YYYY-MM-DD). Defaults to today."`
}

func (c *DietLogCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetBird(c.Bird); err != nil {
		return err
	}

	food, err := validation.ParseFoodType(c.Food)
	if err != nil {
		return err
	}

	date := ctx.Now()
	if c.Date != "" {
		date, err = validation.ParseDate(c.Date)
		if err != nil {
			return err
		}
	}

	dl := models.DietLog{
		ID:       uuid.NewString(),
		BirdID:   c.Bird,
		Date:     date,
		FoodType: food,
		Amount:   c.Amount,
		Notes:    c.Notes,
	}
	if err := ctx.Store.AddDietLog(dl); err != nil {
		return err
	}

	fmt.Printf("✓ Logged %s for %s\n", dl.FoodType, cli.BirdLabel(ctx.Store, dl.BirdID))
	return nil
}

type DietListCmd struct {
	Bird string `help:"Only show logs for this bird ID."`
	Last int    `help:"Show only the most recent N entries." default:"0"`
}

func (c *DietListCmd) Run(ctx *cli.Context) error {
	var logs []models.DietLog
	var err error
	if c.Bird != "" {
		logs, err = ctx.Store.GetDietLogsForBird(c.Bird)
	} else {
		logs, err = ctx.Store.GetAllDietLogs()
	}
	if err != nil {
		return fmt.Errorf("failed to get diet logs: %w", err)
	}
	if len(logs) == 0 {
		fmt.Println("No diet logs found.")
		return nil
	}

	if c.Last > 0 && len(logs) > c.Last {
		logs = logs[len(logs)-c.Last:]
	}

	fmt.Println("Diet logs:")
	for _, dl := range logs {
		line := fmt.Sprintf("  %s  %s - %s", utils.DateKey(dl.Date), cli.BirdLabel(ctx.Store, dl.BirdID), dl.FoodType)
		if dl.Amount != "" {
			line += fmt.Sprintf(" (%s)", dl.Amount)
		}
		if dl.Notes != "" {
			line += " - " + dl.Notes
		}
		fmt.Println(line)
	}
	return nil
}
