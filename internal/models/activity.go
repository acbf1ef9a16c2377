package models

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryAdventure     Category = "adventure"
	CategoryRelaxation    Category = "relaxation"
	CategorySocial        Category = "social"
	CategoryFood          Category = "food"
	CategoryEntertainment Category = "entertainment"
	CategoryWellness      Category = "wellness"

	// CategoryAll is a search filter, never a template category
	CategoryAll Category = "all"
)

// Categories lists every template category in display order.
var Categories = []Category{
	CategoryAdventure,
	CategoryRelaxation,
	CategorySocial,
	CategoryFood,
	CategoryEntertainment,
	CategoryWellness,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Mood string

const (
	MoodHappy  Mood = "😊"
	MoodParty  Mood = "🎉"
	MoodCalm   Mood = "😌"
	MoodRocket Mood = "🚀"
	MoodStrong Mood = "💪"
	MoodZen    Mood = "🧘"
)

// Moods lists every mood marker in display order.
var Moods = []Mood{MoodHappy, MoodParty, MoodCalm, MoodRocket, MoodStrong, MoodZen}

var moodNames = map[string]Mood{
	"happy":  MoodHappy,
	"party":  MoodParty,
	"calm":   MoodCalm,
	"rocket": MoodRocket,
	"strong": MoodStrong,
	"zen":    MoodZen,
}

func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMood accepts either the glyph itself or its name ("happy", "zen", ...).
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	if m := Mood(s); m.Valid() {
		return m, nil
	}
	if m, ok := moodNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown mood: %q", s)
}

type Day string

const (
	Saturday Day = "saturday"
	Sunday   Day = "sunday"
)

// Days lists the two schedulable days in order.
var Days = []Day{Saturday, Sunday}

func (d Day) Valid() bool {
	return d == Saturday || d == Sunday
}

// ParseDay accepts "saturday"/"sunday" and their three-letter forms.
func ParseDay(s string) (Day, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sat", "saturday":
		return Saturday, nil
	case "sun", "sunday":
		return Sunday, nil
	default:
		return "", fmt.Errorf("invalid day: %q (expected saturday or sunday)", s)
	}
}

type Theme string

const (
	ThemeLazy      Theme = "lazy"
	ThemeAdventure Theme = "adventure"
	ThemeSocial    Theme = "social"
	ThemeBalanced  Theme = "balanced"

	DefaultTheme = ThemeBalanced
)

// Themes lists every weekend theme in display order.
var Themes = []Theme{ThemeLazy, ThemeAdventure, ThemeSocial, ThemeBalanced}

func (t Theme) Valid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid theme: %q (expected lazy, adventure, social or balanced)", s)
	}
	return t, nil
}

// ActivityTemplate is a catalog definition. Templates are never mutated.
type ActivityTemplate struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Category      Category `json:"category" yaml:"category"`
	Duration      int      `json:"duration" yaml:"duration"` // minutes
	Icon          string   `json:"icon" yaml:"icon"`
	SuggestedTime string   `json:"suggestedTime,omitempty" yaml:"suggested_time,omitempty"` // HH:MM format
}

// ScheduledActivity is one placement of a template on a day.
type ScheduledActivity struct {
	ActivityTemplate
	ScheduledID string  `json:"scheduledId"`
	Day         Day     `json:"day"`
	StartTime   string  `json:"startTime"` // HH:MM format
	EndTime     string  `json:"endTime"`   // HH:MM format, may exceed 24:00
	Mood        *Mood   `json:"mood,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// Clone returns a copy that shares no pointers with s.
func (s ScheduledActivity) Clone() ScheduledActivity {
	c := s
	if s.Mood != nil {
		m := *s.Mood
		c.Mood = &m
	}
	if s.Notes != nil {
		n := *s.Notes
		c.Notes = &n
	}
	return c
}

type TimePeriod string

const (
	PeriodMorning   TimePeriod = "morning"
	PeriodAfternoon TimePeriod = "afternoon"
	PeriodEvening   TimePeriod = "evening"
	PeriodNight     TimePeriod = "night"
)

// TimeSlot is one entry of the start-time grid.
type TimeSlot struct {
	Time     string     `json:"time"`
	Display  string     `json:"display"`
	Period   TimePeriod `json:"period"`
	Disabled bool       `json:"disabled,omitempty"`
}
