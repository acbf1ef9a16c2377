package models

import "testing"

func TestParseMood(t *testing.T) {
	tests := []struct {
		input   string
		want    Mood
		wantErr bool
	}{
		{input: "😊", want: MoodHappy},
		{input: "zen", want: MoodZen},
		{input: " Party ", want: MoodParty},
		{input: "grumpy", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseMood(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMood(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMood(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDay(t *testing.T) {
	for _, input := range []string{"saturday", "SAT", " Saturday"} {
		if d, err := ParseDay(input); err != nil || d != Saturday {
			t.Errorf("ParseDay(%q) = %q, %v; want saturday", input, d, err)
		}
	}
	if d, err := ParseDay("sun"); err != nil || d != Sunday {
		t.Errorf("ParseDay(sun) = %q, %v; want sunday", d, err)
	}
	if _, err := ParseDay("monday"); err == nil {
		t.Error("ParseDay(monday) should fail")
	}
}

func TestParseTheme(t *testing.T) {
	if th, err := ParseTheme("Lazy"); err != nil || th != ThemeLazy {
		t.Errorf("ParseTheme(Lazy) = %q, %v", th, err)
	}
	if _, err := ParseTheme("chaotic"); err == nil {
		t.Error("ParseTheme(chaotic) should fail")
	}
}

func TestNewWeekendPlan(t *testing.T) {
	p := NewWeekendPlan()
	if p.Theme != ThemeBalanced {
		t.Errorf("default theme = %q, want balanced", p.Theme)
	}
	if p.Name == "" {
		t.Error("default name should not be empty")
	}
	if p.Saturday == nil || p.Sunday == nil {
		t.Error("default day schedules should be empty, not nil")
	}
	if p.ID != "" {
		t.Errorf("unsaved plan has id %q", p.ID)
	}
}

func TestWeekendPlanCloneIsDeep(t *testing.T) {
	notes := "bring sunscreen"
	mood := MoodHappy
	p := NewWeekendPlan()
	p.Saturday = DaySchedule{{ScheduledID: "a", Notes: &notes, Mood: &mood}}

	c := p.Clone()
	*c.Saturday[0].Notes = "changed"
	*c.Saturday[0].Mood = MoodZen
	c.Saturday[0].StartTime = "10:00"

	if *p.Saturday[0].Notes != "bring sunscreen" {
		t.Errorf("clone shares notes pointer, original now %q", *p.Saturday[0].Notes)
	}
	if *p.Saturday[0].Mood != MoodHappy {
		t.Errorf("clone shares mood pointer, original now %q", *p.Saturday[0].Mood)
	}
	if p.Saturday[0].StartTime != "" {
		t.Error("clone shares backing array with original")
	}
}

func TestDayScheduleIndexOf(t *testing.T) {
	d := DaySchedule{{ScheduledID: "a"}, {ScheduledID: "b"}}
	if i := d.IndexOf("b"); i != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", i)
	}
	if i := d.IndexOf("zzz"); i != -1 {
		t.Errorf("IndexOf(zzz) = %d, want -1", i)
	}
}

func plannedWeekend() WeekendPlan {
	plan := NewWeekendPlan()
	plan.Saturday = DaySchedule{{ScheduledID: "sat-1", Day: Saturday}}
	plan.Sunday = DaySchedule{{ScheduledID: "sun-1", Day: Sunday}, {ScheduledID: "sun-2", Day: Sunday}}
	return plan
}

func TestScheduleOnReturnedPlan(t *testing.T) {
	if n := len(plannedWeekend().Schedule(Saturday)); n != 1 {
		t.Errorf("Schedule(saturday) has %d entries, want 1", n)
	}
	if n := len(plannedWeekend().Schedule(Sunday)); n != 2 {
		t.Errorf("Schedule(sunday) has %d entries, want 2", n)
	}
	if s := plannedWeekend().Schedule(Day("friday")); s != nil {
		t.Errorf("Schedule(friday) = %v, want nil", s)
	}
}
