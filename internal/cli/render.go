package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/utils"
)

// ShortID trims a uuid to its first block for display.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// DayTitle capitalizes a day for headings.
func DayTitle(day models.Day) string {
	s := string(day)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatEntry renders one placement as a single line.
func FormatEntry(a models.ScheduledActivity) string {
	span, err := utils.FormatRange(a.StartTime, a.EndTime)
	if err != nil {
		span = a.StartTime + " - " + a.EndTime
	}
	line := fmt.Sprintf("%s %s", a.Icon, a.Name)
	if a.Mood != nil {
		line += " " + string(*a.Mood)
	}
	return timeStyle.Render(span) + line + "  " + idStyle.Render(ShortID(a.ScheduledID))
}

// RenderPlan renders the whole weekend for the terminal.
func RenderPlan(plan models.WeekendPlan) string {
	var b strings.Builder
	header := fmt.Sprintf("%s (%s weekend)", plan.Name, plan.Theme)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	if !plan.UpdatedAt.IsZero() {
		b.WriteString(mutedStyle.Render("saved " + humanize.Time(plan.UpdatedAt)))
		b.WriteString("\n")
	}

	for _, day := range models.Days {
		b.WriteString("\n")
		schedule := plan.Schedule(day)
		b.WriteString(dayStyle.Render(fmt.Sprintf("%s (%d)", DayTitle(day), len(schedule))))
		b.WriteString("\n")
		if len(schedule) == 0 {
			b.WriteString(mutedStyle.Render("  nothing planned yet"))
			b.WriteString("\n")
			continue
		}
		for _, a := range schedule {
			b.WriteString("  ")
			b.WriteString(FormatEntry(a))
			b.WriteString("\n")
			if a.Notes != nil && *a.Notes != "" {
				b.WriteString(notesStyle.Render(*a.Notes))
				b.WriteString("\n")
			}
		}
	}
	return docStyle.Render(strings.TrimRight(b.String(), "\n"))
}
