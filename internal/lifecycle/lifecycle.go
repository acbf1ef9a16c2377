// Package lifecycle moves plans between the working draft and the saved collection.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/scheduler"
)

// PlanStore holds the named plan collection.
type PlanStore interface {
	SavePlan(plan models.WeekendPlan) error
	ListPlans() ([]models.WeekendPlan, error)
	GetPlan(id string) (models.WeekendPlan, error)
	DeletePlan(id string) error
}

type Manager struct {
	Engine *scheduler.Engine
	Store  PlanStore
	// Clock defaults to time.Now
	Clock func() time.Time
	// NewID defaults to uuid v4
	NewID func() string
}

func New(engine *scheduler.Engine, store PlanStore) *Manager {
	return &Manager{Engine: engine, Store: store}
}

func (m *Manager) now() time.Time {
	if m.Clock != nil {
		return m.Clock()
	}
	return time.Now()
}

func (m *Manager) newID() string {
	if m.NewID != nil {
		return m.NewID()
	}
	return uuid.NewString()
}

// Save snapshots the working draft into the saved collection under a new id.
// A non-empty name overrides the draft's name.
func (m *Manager) Save(name string) (models.WeekendPlan, error) {
	plan := m.Engine.Plan()
	plan.ID = m.newID()
	if name = strings.TrimSpace(name); name != "" {
		plan.Name = name
	}
	now := m.now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if err := m.Store.SavePlan(plan); err != nil {
		return models.WeekendPlan{}, fmt.Errorf("failed to save plan: %w", err)
	}
	logger.Info("Plan saved", "id", plan.ID, "name", plan.Name, "activities", plan.ActivityCount())
	return plan, nil
}

// Reset empties the working draft.
func (m *Manager) Reset() error {
	return m.Engine.Reset()
}

// Load copies a saved plan into the working draft. The saved copy is unchanged.
func (m *Manager) Load(id string) (models.WeekendPlan, error) {
	saved, err := m.Store.GetPlan(id)
	if err != nil {
		return models.WeekendPlan{}, err
	}
	draft := saved.Clone()
	draft.ID = ""
	draft.CreatedAt = time.Time{}
	draft.UpdatedAt = time.Time{}
	if err := m.Engine.Replace(draft); err != nil {
		return models.WeekendPlan{}, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	logger.Info("Plan loaded into draft", "id", id)
	return m.Engine.Plan(), nil
}

func (m *Manager) List() ([]models.WeekendPlan, error) {
	return m.Store.ListPlans()
}

func (m *Manager) Get(id string) (models.WeekendPlan, error) {
	return m.Store.GetPlan(id)
}

func (m *Manager) Delete(id string) error {
	if err := m.Store.DeletePlan(id); err != nil {
		return err
	}
	logger.Info("Plan deleted", "id", id)
	return nil
}
