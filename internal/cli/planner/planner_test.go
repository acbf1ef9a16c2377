package planner

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/config"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/storage"
	"github.com/julianstephens/weekendly/internal/storage/memory"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	cfg := &config.Config{ConfigDir: t.TempDir(), Backend: constants.BackendMemory}
	ctx := cli.NewContext(cfg, storage.New(memory.NewStore()), cat)
	out := &bytes.Buffer{}
	ctx.Out = out
	if err := ctx.Open(); err != nil {
		t.Fatalf("failed to open context: %v", err)
	}
	return ctx, out
}

func seed(t *testing.T, ctx *cli.Context) {
	t.Helper()
	for _, p := range []struct {
		id    string
		day   models.Day
		start string
	}{
		{"hiking", models.Saturday, "08:00"},
		{"brunch", models.Saturday, "11:00"},
		{"movie", models.Sunday, "20:00"},
	} {
		tmpl, err := ctx.Activity(p.id)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ctx.Engine.Add(tmpl, p.day, p.start); err != nil {
			t.Fatalf("failed to seed %s: %v", p.id, err)
		}
	}
}

func TestShowCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out.String(), "nothing planned yet") {
		t.Errorf("empty plan output: %q", out.String())
	}

	seed(t, ctx)
	out.Reset()
	if err := (&ShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	text := out.String()
	for _, want := range []string{constants.DefaultPlanName, "Saturday (2)", "Sunday (1)", "Brunch", "Movie Night"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(text, "Hiking") > strings.Index(text, "Brunch") {
		t.Error("saturday entries should render in sequence order")
	}
}

func TestThemeAndNameCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&ThemeCmd{Theme: "Adventure"}).Run(ctx); err != nil {
		t.Fatalf("theme failed: %v", err)
	}
	if err := (&ThemeCmd{Theme: "chaotic"}).Run(ctx); err == nil {
		t.Error("an unknown theme should fail")
	}
	if err := (&NameCmd{Name: []string{"Lake", "Weekend"}}).Run(ctx); err != nil {
		t.Fatalf("name failed: %v", err)
	}
	if err := (&NameCmd{Name: []string{"  "}}).Run(ctx); err == nil {
		t.Error("a blank name should fail")
	}

	plan := ctx.Engine.Plan()
	if plan.Theme != models.ThemeAdventure || plan.Name != "Lake Weekend" {
		t.Errorf("plan = %s/%s", plan.Theme, plan.Name)
	}
}

func TestResetCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	seed(t, ctx)

	ctx.Ask = func(string, string) (bool, error) { return false, nil }
	if err := (&ResetCmd{}).Run(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if !strings.Contains(out.String(), "Reset cancelled") || ctx.Engine.Plan().ActivityCount() != 3 {
		t.Error("declined reset should keep the plan")
	}

	ctx.Ask = func(string, string) (bool, error) { return false, errors.New("no tty") }
	if err := (&ResetCmd{}).Run(ctx); err == nil {
		t.Error("prompt errors should be returned")
	}

	ctx.Ask = nil
	if err := (&ResetCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("reset --yes failed: %v", err)
	}
	if ctx.Engine.Plan().ActivityCount() != 0 {
		t.Error("reset should clear both days")
	}

	backups, err := ctx.BackupManager().ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("reset should take one automatic backup, got %d", len(backups))
	}
}

func TestExportCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	seed(t, ctx)

	if err := (&ExportCmd{Raw: true}).Run(ctx); err != nil {
		t.Fatalf("export --raw failed: %v", err)
	}
	md := out.String()
	for _, want := range []string{"# " + constants.DefaultPlanName, "## Saturday", "## Sunday", "**8:00 AM - 10:00 AM**"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	out.Reset()
	if err := (&ExportCmd{Width: 60}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Error("styled export should not be empty")
	}
}
