package plans

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/storage"
)

type SaveCmd struct {
	Name string `help:"Save under this name instead of the draft's name."`
}

func (c *SaveCmd) Run(ctx *cli.Context) error {
	plan, err := ctx.Lifecycle.Save(c.Name)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Saved %q (%d activities) as %s\n", plan.Name, plan.ActivityCount(), cli.ShortID(plan.ID))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	plans, err := ctx.Lifecycle.List()
	if err != nil {
		return fmt.Errorf("failed to list plans: %w", err)
	}
	if len(plans) == 0 {
		ctx.Println("No saved plans. Use 'weekendly plans save' to keep the current draft.")
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "NAME", "THEME", "SAT", "SUN", "SAVED")
	for _, p := range plans {
		tbl.AddRow(cli.ShortID(p.ID), p.Name, string(p.Theme), len(p.Saturday), len(p.Sunday), humanize.Time(p.UpdatedAt))
	}
	ctx.Println(tbl)
	return nil
}

type ShowCmd struct {
	ID string `arg:"" help:"Plan id or a unique prefix of it."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	plan, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.Println(cli.RenderPlan(plan))
	return nil
}

type LoadCmd struct {
	ID  string `arg:"" help:"Plan id or a unique prefix of it."`
	Yes bool   `short:"y" help:"Replace a non-empty draft without asking."`
}

func (c *LoadCmd) Run(ctx *cli.Context) error {
	plan, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	if n := ctx.Engine.Plan().ActivityCount(); n > 0 {
		ok, err := ctx.Confirm(c.Yes,
			fmt.Sprintf("Replace the working draft with %q?", plan.Name),
			fmt.Sprintf("The draft has %d scheduled activities that are not saved.", n))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Load cancelled.")
			return nil
		}
	}

	draft, err := ctx.Lifecycle.Load(plan.ID)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Loaded %q into the working draft (%d activities)\n", draft.Name, draft.ActivityCount())
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Plan id or a unique prefix of it."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	plan, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Lifecycle.Delete(plan.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted %q\n", plan.Name)
	return nil
}

// resolve finds a saved plan by full id or unique id prefix.
func resolve(ctx *cli.Context, ref string) (models.WeekendPlan, error) {
	plan, err := ctx.Lifecycle.Get(ref)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, storage.ErrPlanNotFound) {
		return models.WeekendPlan{}, err
	}

	plans, err := ctx.Lifecycle.List()
	if err != nil {
		return models.WeekendPlan{}, err
	}
	var matches []models.WeekendPlan
	for _, p := range plans {
		if ref != "" && strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return models.WeekendPlan{}, fmt.Errorf("%w: %s", storage.ErrPlanNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.WeekendPlan{}, fmt.Errorf("plan id prefix %q matches %d plans", ref, len(matches))
	}
}
