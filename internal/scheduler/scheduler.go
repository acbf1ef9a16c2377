// Package scheduler owns the working weekend plan and every mutation made to
// it. Entries of a day are chronological after Add and MoveBetweenDays, and
// keep whatever order the user gave them after Reorder or MoveWithinDay.
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/utils"
)

var (
	ErrConflict       = errors.New("time slot conflicts with an existing activity")
	ErrNotPermutation = errors.New("order must contain exactly the day's scheduled ids")
	ErrInvalidDay     = errors.New("invalid day")
	ErrInvalidMood    = errors.New("invalid mood")
)

// ConflictError describes a rejected placement.
type ConflictError struct {
	Day      models.Day
	Start    string
	End      string
	Existing models.ScheduledActivity
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s-%s overlaps %q (%s-%s)",
		e.Day, e.Start, e.End, e.Existing.Name, e.Existing.StartTime, e.Existing.EndTime)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Hint() string {
	return fmt.Sprintf("run `weekendly slots <activity-id> %s` to see free start times", e.Day)
}

// DraftSaver persists the working draft after each mutation.
type DraftSaver interface {
	SaveWorkingDraft(plan models.WeekendPlan) error
}

// Listener is called with a snapshot of the plan after every committed mutation.
type Listener func(plan models.WeekendPlan)

type Options struct {
	// SlotStepMin is the spacing of the start-time grid in minutes
	SlotStepMin int
	// NewID mints scheduled ids. Defaults to uuid v4.
	NewID func() string
}

type Engine struct {
	mu        sync.Mutex
	plan      models.WeekendPlan
	saver     DraftSaver
	step      int
	newID     func() string
	listeners map[int]Listener
	nextID    int
}

// New returns an engine seeded with initial. A nil saver keeps the plan in memory only.
func New(initial models.WeekendPlan, saver DraftSaver, opts Options) *Engine {
	if opts.SlotStepMin <= 0 {
		opts.SlotStepMin = constants.DefaultSlotStepMin
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	plan := initial.Clone()
	if plan.Name == "" {
		plan.Name = constants.DefaultPlanName
	}
	if plan.Theme == "" {
		plan.Theme = models.DefaultTheme
	}
	return &Engine{
		plan:      plan,
		saver:     saver,
		step:      opts.SlotStepMin,
		newID:     opts.NewID,
		listeners: make(map[int]Listener),
	}
}

// Plan returns a deep copy of the working plan.
func (e *Engine) Plan() models.WeekendPlan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.plan.Clone()
}

// Subscribe registers fn and returns a function that removes it.
func (e *Engine) Subscribe(fn Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

// ProposeSlot returns the start-time grid for placing template on day, with
// every slot that would overlap an existing entry marked disabled.
func (e *Engine) ProposeSlot(template models.ActivityTemplate, day models.Day) ([]models.TimeSlot, error) {
	if !day.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	e.mu.Lock()
	schedule := e.plan.Schedule(day).Clone()
	e.mu.Unlock()

	slots := utils.TimeSlots(e.step)
	for i := range slots {
		start, _ := utils.ClockToMinutes(slots[i].Time)
		if _, hit := findConflict(schedule, start, start+template.Duration, ""); hit {
			slots[i].Disabled = true
		}
	}
	return slots, nil
}

// DisabledTimes lists the grid start times at which template would conflict on day.
func (e *Engine) DisabledTimes(template models.ActivityTemplate, day models.Day) ([]string, error) {
	slots, err := e.ProposeSlot(template, day)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0)
	for _, s := range slots {
		if s.Disabled {
			out = append(out, s.Time)
		}
	}
	return out, nil
}

// Add places template on day at start and re-sorts the day chronologically.
func (e *Engine) Add(template models.ActivityTemplate, day models.Day, start string) (models.ScheduledActivity, error) {
	if !day.Valid() {
		return models.ScheduledActivity{}, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	placed, err := place(template, day, start)
	if err != nil {
		return models.ScheduledActivity{}, err
	}

	e.mu.Lock()
	placed.ScheduledID = e.newID()
	schedule := e.plan.Schedule(day)
	if err := checkConflict(schedule, placed, ""); err != nil {
		e.mu.Unlock()
		return models.ScheduledActivity{}, err
	}
	e.plan.SetSchedule(day, insertSorted(schedule, placed))
	snapshot := e.plan.Clone()
	e.mu.Unlock()

	logger.Debug("Activity added", "day", day, "activity", template.ID, "start", placed.StartTime, "end", placed.EndTime)
	return placed.Clone(), e.commit(snapshot)
}

// Remove drops scheduledID from day. Unknown ids are ignored.
func (e *Engine) Remove(day models.Day, scheduledID string) error {
	return e.mutate(day, func(schedule models.DaySchedule) (models.DaySchedule, error) {
		i := schedule.IndexOf(scheduledID)
		if i < 0 {
			return schedule, nil
		}
		out := make(models.DaySchedule, 0, len(schedule)-1)
		out = append(out, schedule[:i]...)
		return append(out, schedule[i+1:]...), nil
	})
}

// Reorder replaces the order of day with ordered, which must be a
// permutation of the day's ids. Start times are left untouched.
func (e *Engine) Reorder(day models.Day, ordered []string) error {
	return e.mutate(day, func(schedule models.DaySchedule) (models.DaySchedule, error) {
		return permute(schedule, ordered)
	})
}

// MoveWithinDay moves the entry at position from to position to.
func (e *Engine) MoveWithinDay(day models.Day, from, to int) error {
	if !day.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	ids := e.Plan().Schedule(day).IDs()
	if from < 0 || from >= len(ids) || to < 0 || to >= len(ids) {
		return fmt.Errorf("position out of range: from=%d to=%d (day has %d activities)", from, to, len(ids))
	}
	moved := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids[:to], append([]string{moved}, ids[to:]...)...)
	return e.Reorder(day, ids)
}

// UpdateMood sets the mood of scheduledID on day. Unknown ids are ignored.
func (e *Engine) UpdateMood(day models.Day, scheduledID string, mood models.Mood) error {
	if !mood.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMood, mood)
	}
	return e.mutate(day, func(schedule models.DaySchedule) (models.DaySchedule, error) {
		if i := schedule.IndexOf(scheduledID); i >= 0 {
			m := mood
			schedule[i].Mood = &m
		}
		return schedule, nil
	})
}

// UpdateNotes sets the notes of scheduledID on day. A nil notes clears them.
func (e *Engine) UpdateNotes(day models.Day, scheduledID string, notes *string) error {
	return e.mutate(day, func(schedule models.DaySchedule) (models.DaySchedule, error) {
		if i := schedule.IndexOf(scheduledID); i >= 0 {
			if notes == nil {
				schedule[i].Notes = nil
			} else {
				n := *notes
				schedule[i].Notes = &n
			}
		}
		return schedule, nil
	})
}

// MoveBetweenDays moves scheduledID from one day to another at newStart,
// keeping its id and annotations. Nothing changes if the destination conflicts.
func (e *Engine) MoveBetweenDays(from, to models.Day, scheduledID, newStart string) (models.ScheduledActivity, error) {
	if !from.Valid() {
		return models.ScheduledActivity{}, fmt.Errorf("%w: %q", ErrInvalidDay, from)
	}
	if !to.Valid() {
		return models.ScheduledActivity{}, fmt.Errorf("%w: %q", ErrInvalidDay, to)
	}

	e.mu.Lock()
	source := e.plan.Schedule(from)
	i := source.IndexOf(scheduledID)
	if i < 0 {
		e.mu.Unlock()
		return models.ScheduledActivity{}, nil
	}
	moved, err := place(source[i].ActivityTemplate, to, newStart)
	if err != nil {
		e.mu.Unlock()
		return models.ScheduledActivity{}, err
	}
	moved.ScheduledID = source[i].ScheduledID
	moved.Mood = source[i].Mood
	moved.Notes = source[i].Notes
	moved = moved.Clone()

	remaining := make(models.DaySchedule, 0, len(source))
	remaining = append(remaining, source[:i]...)
	remaining = append(remaining, source[i+1:]...)

	dest := e.plan.Schedule(to)
	if from == to {
		dest = remaining
	}
	if err := checkConflict(dest, moved, scheduledID); err != nil {
		e.mu.Unlock()
		return models.ScheduledActivity{}, err
	}
	e.plan.SetSchedule(from, remaining)
	e.plan.SetSchedule(to, insertSorted(e.plan.Schedule(to), moved))
	snapshot := e.plan.Clone()
	e.mu.Unlock()

	logger.Debug("Activity moved", "from", from, "to", to, "id", scheduledID, "start", moved.StartTime)
	return moved.Clone(), e.commit(snapshot)
}

func (e *Engine) SetTheme(theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("invalid theme: %q", theme)
	}
	e.mu.Lock()
	e.plan.Theme = theme
	snapshot := e.plan.Clone()
	e.mu.Unlock()
	return e.commit(snapshot)
}

func (e *Engine) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("plan name cannot be empty")
	}
	e.mu.Lock()
	e.plan.Name = name
	snapshot := e.plan.Clone()
	e.mu.Unlock()
	return e.commit(snapshot)
}

// Reset clears both days and restores the default theme. The plan name is kept.
func (e *Engine) Reset() error {
	e.mu.Lock()
	e.plan.Saturday = models.DaySchedule{}
	e.plan.Sunday = models.DaySchedule{}
	e.plan.Theme = models.DefaultTheme
	snapshot := e.plan.Clone()
	e.mu.Unlock()

	logger.Info("Working draft reset")
	return e.commit(snapshot)
}

// Replace swaps the whole working plan, e.g. when a saved plan is loaded.
func (e *Engine) Replace(plan models.WeekendPlan) error {
	e.mu.Lock()
	e.plan = plan.Clone()
	snapshot := e.plan.Clone()
	e.mu.Unlock()
	return e.commit(snapshot)
}

func (e *Engine) mutate(day models.Day, fn func(models.DaySchedule) (models.DaySchedule, error)) error {
	if !day.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	e.mu.Lock()
	next, err := fn(e.plan.Schedule(day).Clone())
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.plan.SetSchedule(day, next)
	snapshot := e.plan.Clone()
	e.mu.Unlock()
	return e.commit(snapshot)
}

// commit persists the snapshot and notifies listeners. The in-memory state
// has already changed when a save fails.
func (e *Engine) commit(snapshot models.WeekendPlan) error {
	var saveErr error
	if e.saver != nil {
		if err := e.saver.SaveWorkingDraft(snapshot); err != nil {
			logger.Error("Failed to persist working draft", "error", err)
			saveErr = fmt.Errorf("failed to save working draft: %w", err)
		}
	}

	e.mu.Lock()
	listeners := make([]Listener, 0, len(e.listeners))
	for id := 0; id < e.nextID; id++ {
		if fn, ok := e.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot.Clone())
	}
	return saveErr
}

func place(template models.ActivityTemplate, day models.Day, start string) (models.ScheduledActivity, error) {
	if template.Duration <= 0 {
		return models.ScheduledActivity{}, fmt.Errorf("activity %s must have a positive duration", template.ID)
	}
	startMin, err := utils.ClockToMinutes(start)
	if err != nil {
		return models.ScheduledActivity{}, err
	}
	startClock := utils.MinutesToClock(startMin)
	end, err := utils.AddMinutes(startClock, template.Duration)
	if err != nil {
		return models.ScheduledActivity{}, err
	}
	return models.ScheduledActivity{
		ActivityTemplate: template,
		Day:              day,
		StartTime:        startClock,
		EndTime:          end,
	}, nil
}

func checkConflict(schedule models.DaySchedule, candidate models.ScheduledActivity, ignoreID string) error {
	start, _ := utils.ClockToMinutes(candidate.StartTime)
	end, _ := utils.ClockToMinutes(candidate.EndTime)
	if existing, hit := findConflict(schedule, start, end, ignoreID); hit {
		return &ConflictError{
			Day:      candidate.Day,
			Start:    candidate.StartTime,
			End:      candidate.EndTime,
			Existing: existing.Clone(),
		}
	}
	return nil
}

func findConflict(schedule models.DaySchedule, start, end int, ignoreID string) (models.ScheduledActivity, bool) {
	for _, a := range schedule {
		if ignoreID != "" && a.ScheduledID == ignoreID {
			continue
		}
		aStart, err := utils.ClockToMinutes(a.StartTime)
		if err != nil {
			continue
		}
		aEnd, err := utils.ClockToMinutes(a.EndTime)
		if err != nil {
			continue
		}
		if utils.OverlapsMinutes(start, end, aStart, aEnd) {
			return a, true
		}
	}
	return models.ScheduledActivity{}, false
}

func insertSorted(schedule models.DaySchedule, a models.ScheduledActivity) models.DaySchedule {
	out := make(models.DaySchedule, 0, len(schedule)+1)
	out = append(out, schedule...)
	out = append(out, a)
	sort.SliceStable(out, func(i, j int) bool {
		mi, _ := utils.ClockToMinutes(out[i].StartTime)
		mj, _ := utils.ClockToMinutes(out[j].StartTime)
		return mi < mj
	})
	return out
}

func permute(schedule models.DaySchedule, ordered []string) (models.DaySchedule, error) {
	if len(ordered) != len(schedule) {
		return nil, fmt.Errorf("%w: got %d ids, day has %d", ErrNotPermutation, len(ordered), len(schedule))
	}
	byID := make(map[string]models.ScheduledActivity, len(schedule))
	for _, a := range schedule {
		byID[a.ScheduledID] = a
	}
	out := make(models.DaySchedule, 0, len(ordered))
	for _, id := range ordered {
		a, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown or repeated id %q", ErrNotPermutation, id)
		}
		delete(byID, id)
		out = append(out, a)
	}
	return out, nil
}
