// Package storage persists the working draft and the saved plan collection
// as JSON records in a key-value Backend.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/utils"
)

var (
	// ErrCorrupt marks a record that exists but cannot be decoded. It is
	// recovered inside this package and never returned to callers.
	ErrCorrupt      = errors.New("corrupt record")
	ErrPlanNotFound = errors.New("plan not found")
)

// draftRecord is the persisted shape of the working draft.
type draftRecord struct {
	Name     string             `json:"name"`
	Theme    models.Theme       `json:"theme"`
	Saturday models.DaySchedule `json:"saturday"`
	Sunday   models.DaySchedule `json:"sunday"`
}

type Store struct {
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Backend exposes the underlying record store.
func (s *Store) Backend() Backend {
	return s.backend
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// SaveWorkingDraft writes the unsaved plan under the draft key.
func (s *Store) SaveWorkingDraft(plan models.WeekendPlan) error {
	data, err := json.Marshal(draftRecord{
		Name:     plan.Name,
		Theme:    plan.Theme,
		Saturday: nonNil(plan.Saturday),
		Sunday:   nonNil(plan.Sunday),
	})
	if err != nil {
		return fmt.Errorf("failed to encode working draft: %w", err)
	}
	if err := s.backend.Put(constants.WorkingDraftKey, data); err != nil {
		return fmt.Errorf("failed to write working draft: %w", err)
	}
	return nil
}

// LoadWorkingDraft returns the persisted draft, or the default empty plan
// when none exists or the record is unreadable.
func (s *Store) LoadWorkingDraft() (models.WeekendPlan, error) {
	data, found, err := s.backend.Get(constants.WorkingDraftKey)
	if err != nil {
		return models.WeekendPlan{}, fmt.Errorf("failed to read working draft: %w", err)
	}
	if !found {
		return models.NewWeekendPlan(), nil
	}

	plan, err := decodeDraft(data)
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			logger.Warn("Discarding unreadable working draft", "error", err)
			return models.NewWeekendPlan(), nil
		}
		return models.WeekendPlan{}, err
	}
	return plan, nil
}

// ClearWorkingDraft removes the draft record.
func (s *Store) ClearWorkingDraft() error {
	if err := s.backend.Delete(constants.WorkingDraftKey); err != nil {
		return fmt.Errorf("failed to delete working draft: %w", err)
	}
	return nil
}

// SavePlan upserts plan into the saved collection. The saved plan moves to
// the front of the list.
func (s *Store) SavePlan(plan models.WeekendPlan) error {
	if plan.ID == "" {
		return fmt.Errorf("cannot save a plan without an id")
	}
	plans, err := s.ListPlans()
	if err != nil {
		return err
	}
	next := make([]models.WeekendPlan, 0, len(plans)+1)
	next = append(next, plan)
	for _, p := range plans {
		if p.ID != plan.ID {
			next = append(next, p)
		}
	}
	return s.ReplacePlans(next)
}

// ListPlans returns every saved plan, most recently saved first.
func (s *Store) ListPlans() ([]models.WeekendPlan, error) {
	data, found, err := s.backend.Get(constants.SavedPlansKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved plans: %w", err)
	}
	if !found {
		return []models.WeekendPlan{}, nil
	}

	var plans []models.WeekendPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		logger.Warn("Discarding unreadable saved plans", "error", fmt.Errorf("%w: %v", ErrCorrupt, err))
		return []models.WeekendPlan{}, nil
	}
	for i := range plans {
		plans[i].Saturday = nonNil(plans[i].Saturday)
		plans[i].Sunday = nonNil(plans[i].Sunday)
	}
	return plans, nil
}

func (s *Store) GetPlan(id string) (models.WeekendPlan, error) {
	plans, err := s.ListPlans()
	if err != nil {
		return models.WeekendPlan{}, err
	}
	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}
	return models.WeekendPlan{}, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
}

func (s *Store) DeletePlan(id string) error {
	plans, err := s.ListPlans()
	if err != nil {
		return err
	}
	next := make([]models.WeekendPlan, 0, len(plans))
	for _, p := range plans {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if len(next) == len(plans) {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	return s.ReplacePlans(next)
}

// ReplacePlans overwrites the whole saved collection.
func (s *Store) ReplacePlans(plans []models.WeekendPlan) error {
	if plans == nil {
		plans = []models.WeekendPlan{}
	}
	data, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("failed to encode saved plans: %w", err)
	}
	if err := s.backend.Put(constants.SavedPlansKey, data); err != nil {
		return fmt.Errorf("failed to write saved plans: %w", err)
	}
	return nil
}

func decodeDraft(data []byte) (models.WeekendPlan, error) {
	var rec draftRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.WeekendPlan{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	plan := models.NewWeekendPlan()
	if rec.Name != "" {
		plan.Name = rec.Name
	}
	if rec.Theme.Valid() {
		plan.Theme = rec.Theme
	}
	plan.Saturday = wellFormed(models.Saturday, rec.Saturday)
	plan.Sunday = wellFormed(models.Sunday, rec.Sunday)
	return plan, nil
}

// wellFormed drops entries whose clock values cannot take part in conflict
// checks, so a hand-edited draft cannot hide overlaps.
func wellFormed(day models.Day, d models.DaySchedule) models.DaySchedule {
	out := make(models.DaySchedule, 0, len(d))
	for _, a := range d {
		start, err := utils.ClockToMinutes(a.StartTime)
		if err == nil {
			var end int
			end, err = utils.ClockToMinutes(a.EndTime)
			if err == nil && end <= start {
				err = fmt.Errorf("end %s is not after start %s", a.EndTime, a.StartTime)
			}
		}
		if err != nil {
			logger.Warn("Dropping malformed draft entry", "day", day, "id", a.ScheduledID, "error", err)
			continue
		}
		out = append(out, a)
	}
	return out
}

func nonNil(d models.DaySchedule) models.DaySchedule {
	if d == nil {
		return models.DaySchedule{}
	}
	return d
}
