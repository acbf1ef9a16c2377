package catalog

import (
	"fmt"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/models"
)

type ListCmd struct {
	Theme string `help:"Only show activities suited to this theme (lazy, adventure, social, balanced)."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	activities := ctx.Catalog.ListAll()
	if c.Theme != "" {
		theme, err := models.ParseTheme(c.Theme)
		if err != nil {
			return err
		}
		activities = ctx.Catalog.ListByTheme(theme)
	}
	printActivities(ctx, activities)
	return nil
}

type SearchCmd struct {
	Term     string `arg:"" help:"Text to match against activity names and descriptions."`
	Category string `help:"Restrict results to one category, or 'all'." default:"all"`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	category := models.Category(c.Category)
	if category != models.CategoryAll && !category.Valid() {
		return fmt.Errorf("invalid category: %q", c.Category)
	}
	activities := ctx.Catalog.Search(c.Term, category)
	if len(activities) == 0 {
		ctx.Printf("No activities match %q.\n", c.Term)
		return nil
	}
	printActivities(ctx, activities)
	return nil
}

func printActivities(ctx *cli.Context, activities []models.ActivityTemplate) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.Wrap = true
	tbl.AddRow("ID", "", "NAME", "CATEGORY", "DURATION", "SUGGESTED")
	for _, a := range activities {
		suggested := a.SuggestedTime
		if suggested == "" {
			suggested = "-"
		}
		tbl.AddRow(a.ID, a.Icon, a.Name, string(a.Category), fmt.Sprintf("%dm", a.Duration), suggested)
	}
	ctx.Println(tbl)
}
