package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/models"
)

// ErrInvalidFormat is returned when a clock value is not two colon-separated integers.
var ErrInvalidFormat = errors.New("invalid time format (expected HH:MM)")

// ClockToMinutes parses a clock value (HH:MM) and returns the minutes since 00:00.
// Hours are not capped at 23 so that activities running past midnight keep
// their place in the day they started on.
func ClockToMinutes(clock string) (int, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	return hours*60 + mins, nil
}

// MinutesToClock formats minutes since 00:00 as HH:MM without wrapping at 24 hours.
func MinutesToClock(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// AddMinutes adds minutes to a clock value. 23:30 plus 30 is 24:00, not 00:00.
func AddMinutes(clock string, minutes int) (string, error) {
	start, err := ClockToMinutes(clock)
	if err != nil {
		return "", err
	}
	total := start + minutes
	if total < 0 {
		return "", fmt.Errorf("%w: %q minus %d minutes is before 00:00", ErrInvalidFormat, clock, -minutes)
	}
	return MinutesToClock(total), nil
}

// FormatClock renders a clock value in 12-hour form, e.g. "9:05 AM".
func FormatClock(clock string) (string, error) {
	total, err := ClockToMinutes(clock)
	if err != nil {
		return "", err
	}
	hours, mins := total/60, total%60

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours
	switch {
	case hours > 12:
		display = hours - 12
	case hours == 0:
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, mins, period), nil
}

// FormatRange renders a start/end pair as "9:00 AM - 10:30 AM".
func FormatRange(start, end string) (string, error) {
	s, err := FormatClock(start)
	if err != nil {
		return "", err
	}
	e, err := FormatClock(end)
	if err != nil {
		return "", err
	}
	return s + " - " + e, nil
}

// OverlapsMinutes reports whether [startA, endA) and [startB, endB) intersect.
// Touching endpoints do not overlap.
func OverlapsMinutes(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// Overlaps is OverlapsMinutes for clock values.
func Overlaps(startA, endA, startB, endB string) (bool, error) {
	vals := make([]int, 0, 4)
	for _, clock := range []string{startA, endA, startB, endB} {
		m, err := ClockToMinutes(clock)
		if err != nil {
			return false, err
		}
		vals = append(vals, m)
	}
	return OverlapsMinutes(vals[0], vals[1], vals[2], vals[3]), nil
}

// TimePeriod buckets a clock value into the part of the day it starts in.
func TimePeriod(clock string) (models.TimePeriod, error) {
	total, err := ClockToMinutes(clock)
	if err != nil {
		return "", err
	}
	hour := total / 60
	switch {
	case hour < 12:
		return models.PeriodMorning, nil
	case hour < 17:
		return models.PeriodAfternoon, nil
	case hour < 21:
		return models.PeriodEvening, nil
	default:
		return models.PeriodNight, nil
	}
}

// TimeSlots returns the start-time grid offered to the user, from 00:00 up to
// the last step before midnight. A non-positive step falls back to the default.
func TimeSlots(stepMin int) []models.TimeSlot {
	if stepMin <= 0 {
		stepMin = constants.DefaultSlotStepMin
	}
	slots := make([]models.TimeSlot, 0, constants.MinutesPerDay/stepMin)
	for m := 0; m < constants.MinutesPerDay; m += stepMin {
		clock := MinutesToClock(m)
		display, _ := FormatClock(clock) // generated values always parse
		period, _ := TimePeriod(clock)
		slots = append(slots, models.TimeSlot{
			Time:    clock,
			Display: display,
			Period:  period,
		})
	}
	return slots
}

// ValidateTimeFormat checks if the string is a parseable clock value.
func ValidateTimeFormat(clock string) bool {
	_, err := ClockToMinutes(clock)
	return err == nil
}
