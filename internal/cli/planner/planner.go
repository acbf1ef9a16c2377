package planner

import (
	"fmt"
	"strings"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/models"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	ctx.Println(cli.RenderPlan(ctx.Engine.Plan()))
	return nil
}

type ThemeCmd struct {
	Theme string `arg:"" help:"lazy, adventure, social or balanced."`
}

func (c *ThemeCmd) Run(ctx *cli.Context) error {
	theme, err := models.ParseTheme(c.Theme)
	if err != nil {
		return err
	}
	if err := ctx.Engine.SetTheme(theme); err != nil {
		return err
	}
	ctx.Printf("✓ Theme set to %s\n", theme)
	return nil
}

type NameCmd struct {
	Name []string `arg:"" help:"New plan name."`
}

func (c *NameCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(strings.Join(c.Name, " "))
	if name == "" {
		return fmt.Errorf("plan name cannot be empty")
	}
	if err := ctx.Engine.SetName(name); err != nil {
		return err
	}
	ctx.Printf("✓ Plan renamed to %q\n", name)
	return nil
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	plan := ctx.Engine.Plan()
	if plan.ActivityCount() > 0 {
		ok, err := ctx.Confirm(c.Yes,
			"Clear the working draft?",
			fmt.Sprintf("%d scheduled activities will be removed.", plan.ActivityCount()))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Reset cancelled.")
			return nil
		}
		ctx.PerformAutomaticBackup()
	}

	if err := ctx.Lifecycle.Reset(); err != nil {
		return err
	}
	ctx.Println("✓ Working draft cleared")
	return nil
}

type ExportCmd struct {
	Raw   bool `help:"Print plain Markdown without terminal styling."`
	Width int  `help:"Word wrap width for styled output." default:"80"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	md := cli.PlanMarkdown(ctx.Engine.Plan())
	if c.Raw {
		ctx.Printf("%s", md)
		return nil
	}
	ctx.Println(cli.RenderMarkdown(md, c.Width))
	return nil
}
