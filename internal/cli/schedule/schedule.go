package schedule

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/utils"
)

type SlotsCmd struct {
	Activity string `arg:"" help:"Catalog activity id."`
	Day      string `arg:"" help:"saturday or sunday."`
	All      bool   `help:"Include start times that would conflict."`
}

func (c *SlotsCmd) Run(ctx *cli.Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}
	template, err := ctx.Activity(c.Activity)
	if err != nil {
		return err
	}
	slots, err := ctx.Engine.ProposeSlot(template, day)
	if err != nil {
		return err
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	free := 0
	var period models.TimePeriod
	for _, slot := range slots {
		if slot.Disabled && !c.All {
			continue
		}
		label := ""
		if slot.Period != period {
			period = slot.Period
			label = string(period)
		}
		status := "free"
		if slot.Disabled {
			status = "taken"
		} else {
			free++
		}
		tbl.AddRow(label, slot.Time, slot.Display, status)
	}
	ctx.Printf("%s %s (%dm) on %s: %d free start times\n\n", template.Icon, template.Name, template.Duration, cli.DayTitle(day), free)
	ctx.Println(tbl)
	return nil
}

type AddCmd struct {
	Activity string `arg:"" help:"Catalog activity id."`
	Day      string `arg:"" help:"saturday or sunday."`
	Start    string `arg:"" optional:"" help:"Start time (HH:MM). Defaults to the activity's suggested time."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}
	template, err := ctx.Activity(c.Activity)
	if err != nil {
		return err
	}
	start := c.Start
	if start == "" {
		start = template.SuggestedTime
	}
	if start == "" {
		return fmt.Errorf("%s has no suggested time, pass a start time", template.ID)
	}
	if err := validateStart(start); err != nil {
		return err
	}

	placed, err := ctx.Engine.Add(template, day, start)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", template.ID, err)
	}
	ctx.Printf("✓ Added to %s: %s\n", cli.DayTitle(day), cli.FormatEntry(placed))
	return nil
}

type RemoveCmd struct {
	Day string `arg:"" help:"saturday or sunday."`
	ID  string `arg:"" help:"Scheduled id or a unique prefix of it."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}
	id, err := ctx.ResolveScheduledID(day, c.ID)
	if err != nil {
		ctx.Printf("Nothing to remove: %v\n", err)
		return nil
	}
	if err := ctx.Engine.Remove(day, id); err != nil {
		return err
	}
	ctx.Printf("✓ Removed %s from %s\n", cli.ShortID(id), cli.DayTitle(day))
	return nil
}

type ReorderCmd struct {
	Day string   `arg:"" help:"saturday or sunday."`
	IDs []string `arg:"" name:"ids" help:"Every scheduled id on the day in the new order."`
}

func (c *ReorderCmd) Run(ctx *cli.Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(c.IDs))
	for _, ref := range c.IDs {
		id, err := ctx.ResolveScheduledID(day, ref)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := ctx.Engine.Reorder(day, ids); err != nil {
		return fmt.Errorf("failed to reorder %s: %w", day, err)
	}
	ctx.Printf("✓ Reordered %s\n", cli.DayTitle(day))
	return nil
}

type MoveCmd struct {
	Day  string `arg:"" help:"saturday or sunday."`
	From int    `arg:"" help:"Current position (1-based)."`
	To   int    `arg:"" help:"New position (1-based)."`
}

func (c *MoveCmd) Run(ctx *cli.Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}
	if err := ctx.Engine.MoveWithinDay(day, c.From-1, c.To-1); err != nil {
		return fmt.Errorf("failed to move activity: %w", err)
	}
	ctx.Printf("✓ Moved position %d to %d on %s\n", c.From, c.To, cli.DayTitle(day))
	return nil
}

type TransferCmd struct {
	From  string `arg:"" help:"Day the activity is on."`
	To    string `arg:"" help:"Day to move it to."`
	ID    string `arg:"" help:"Scheduled id or a unique prefix of it."`
	Start string `arg:"" help:"New start time (HH:MM)."`
}

func (c *TransferCmd) Run(ctx *cli.Context) error {
	from, err := models.ParseDay(c.From)
	if err != nil {
		return err
	}
	to, err := models.ParseDay(c.To)
	if err != nil {
		return err
	}
	if err := validateStart(c.Start); err != nil {
		return err
	}
	id, err := ctx.ResolveScheduledID(from, c.ID)
	if err != nil {
		return err
	}
	moved, err := ctx.Engine.MoveBetweenDays(from, to, id, c.Start)
	if err != nil {
		return fmt.Errorf("failed to move activity to %s: %w", to, err)
	}
	ctx.Printf("✓ Moved to %s: %s\n", cli.DayTitle(to), cli.FormatEntry(moved))
	return nil
}

type MoodCmd struct {
	Day  string `arg:"" help:"saturday or sunday."`
	ID   string `arg:"" help:"Scheduled id or a unique prefix of it."`
	Mood string `arg:"" help:"happy, party, calm, rocket, strong, zen, or the emoji itself."`
}

func (c *MoodCmd) Run(ctx *cli.Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}
	mood, err := models.ParseMood(c.Mood)
	if err != nil {
		return err
	}
	id, err := ctx.ResolveScheduledID(day, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Engine.UpdateMood(day, id, mood); err != nil {
		return err
	}
	ctx.Printf("✓ Mood set to %s for %s\n", mood, cli.ShortID(id))
	return nil
}

type NotesCmd struct {
	Day   string   `arg:"" help:"saturday or sunday."`
	ID    string   `arg:"" help:"Scheduled id or a unique prefix of it."`
	Text  []string `arg:"" optional:"" help:"Note text."`
	Clear bool     `help:"Remove the note."`
}

func (c *NotesCmd) Run(ctx *cli.Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}
	id, err := ctx.ResolveScheduledID(day, c.ID)
	if err != nil {
		return err
	}

	if c.Clear {
		if err := ctx.Engine.UpdateNotes(day, id, nil); err != nil {
			return err
		}
		ctx.Printf("✓ Notes cleared for %s\n", cli.ShortID(id))
		return nil
	}

	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		return fmt.Errorf("note text is required (use --clear to remove a note)")
	}
	if err := ctx.Engine.UpdateNotes(day, id, &text); err != nil {
		return err
	}
	ctx.Printf("✓ Notes updated for %s\n", cli.ShortID(id))
	return nil
}

// validateStart rejects malformed times before they reach the engine.
func validateStart(start string) error {
	if !utils.ValidateTimeFormat(start) {
		return fmt.Errorf("invalid start time %q (expected HH:MM)", start)
	}
	return nil
}
