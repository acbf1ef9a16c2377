package models

import (
	"time"

	"github.com/julianstephens/weekendly/internal/constants"
)

// DaySchedule is the ordered list of placements for one day.
type DaySchedule []ScheduledActivity

// Clone deep-copies the schedule. A nil schedule clones to an empty one.
func (d DaySchedule) Clone() DaySchedule {
	out := make(DaySchedule, len(d))
	for i, a := range d {
		out[i] = a.Clone()
	}
	return out
}

// IndexOf returns the position of scheduledID, or -1.
func (d DaySchedule) IndexOf(scheduledID string) int {
	for i, a := range d {
		if a.ScheduledID == scheduledID {
			return i
		}
	}
	return -1
}

// IDs returns the scheduled ids in sequence order.
func (d DaySchedule) IDs() []string {
	ids := make([]string, len(d))
	for i, a := range d {
		ids[i] = a.ScheduledID
	}
	return ids
}

type WeekendPlan struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Theme     Theme       `json:"theme"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewWeekendPlan returns the empty draft a user starts from.
func NewWeekendPlan() WeekendPlan {
	return WeekendPlan{
		Name:     constants.DefaultPlanName,
		Theme:    DefaultTheme,
		Saturday: DaySchedule{},
		Sunday:   DaySchedule{},
	}
}

// Schedule returns the schedule for day. Unknown days yield nil.
func (p WeekendPlan) Schedule(day Day) DaySchedule {
	switch day {
	case Saturday:
		return p.Saturday
	case Sunday:
		return p.Sunday
	default:
		return nil
	}
}

// SetSchedule replaces the schedule for day.
func (p *WeekendPlan) SetSchedule(day Day, schedule DaySchedule) {
	switch day {
	case Saturday:
		p.Saturday = schedule
	case Sunday:
		p.Sunday = schedule
	}
}

// Clone deep-copies the plan.
func (p WeekendPlan) Clone() WeekendPlan {
	c := p
	c.Saturday = p.Saturday.Clone()
	c.Sunday = p.Sunday.Clone()
	return c
}

// ActivityCount is the number of placements across both days.
func (p WeekendPlan) ActivityCount() int {
	return len(p.Saturday) + len(p.Sunday)
}
