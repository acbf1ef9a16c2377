package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/utils"
)

// PlanMarkdown renders the plan as a Markdown document.
func PlanMarkdown(plan models.WeekendPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", plan.Name)
	fmt.Fprintf(&b, "_Theme: %s_\n", plan.Theme)

	for _, day := range models.Days {
		fmt.Fprintf(&b, "\n## %s\n\n", DayTitle(day))
		schedule := plan.Schedule(day)
		if len(schedule) == 0 {
			b.WriteString("Nothing planned yet.\n")
			continue
		}
		for _, a := range schedule {
			span, err := utils.FormatRange(a.StartTime, a.EndTime)
			if err != nil {
				span = a.StartTime + " - " + a.EndTime
			}
			fmt.Fprintf(&b, "- **%s** %s %s", span, a.Icon, a.Name)
			if a.Mood != nil {
				fmt.Fprintf(&b, " %s", *a.Mood)
			}
			b.WriteString("\n")
			if a.Notes != nil && *a.Notes != "" {
				fmt.Fprintf(&b, "  > %s\n", *a.Notes)
			}
		}
	}
	return b.String()
}

// RenderMarkdown styles md for a terminal of the given width. The input is
// returned unchanged if rendering fails.
func RenderMarkdown(md string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
