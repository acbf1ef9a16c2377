package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/storage/diskv"
	"github.com/julianstephens/weekendly/internal/storage/memory"
	"github.com/julianstephens/weekendly/internal/storage/sqlite"
)

func backendsForTest(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()
	return map[string]Backend{
		constants.BackendMemory: memory.NewStore(),
		constants.BackendDiskv:  diskv.NewStore(filepath.Join(dir, "records")),
		constants.BackendSQLite: sqlite.NewStore(filepath.Join(dir, "weekendly.db")),
	}
}

func newTestStore(t *testing.T, b Backend) *Store {
	t.Helper()
	require.NoError(t, b.Init())
	t.Cleanup(func() { b.Close() })
	return New(b)
}

func samplePlan() models.WeekendPlan {
	mood := models.MoodCalm
	notes := ""
	plan := models.NewWeekendPlan()
	plan.Name = "Lake Weekend"
	plan.Theme = models.ThemeLazy
	plan.Saturday = models.DaySchedule{
		{
			ActivityTemplate: models.ActivityTemplate{ID: "brunch", Name: "Brunch", Category: models.CategoryFood, Duration: 60, Icon: "🥞"},
			ScheduledID:      "s-1",
			Day:              models.Saturday,
			StartTime:        "10:00",
			EndTime:          "11:00",
			Mood:             &mood,
			Notes:            &notes,
		},
		{
			ActivityTemplate: models.ActivityTemplate{ID: "stargazing", Name: "Stargazing", Category: models.CategoryRelaxation, Duration: 120},
			ScheduledID:      "s-2",
			Day:              models.Saturday,
			StartTime:        "23:00",
			EndTime:          "25:00",
		},
	}
	return plan
}

func TestWorkingDraftRoundTrip(t *testing.T) {
	for name, b := range backendsForTest(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t, b)

			want := samplePlan()
			require.NoError(t, s.SaveWorkingDraft(want))

			got, err := s.LoadWorkingDraft()
			require.NoError(t, err)
			assert.Equal(t, want.Name, got.Name)
			assert.Equal(t, want.Theme, got.Theme)
			assert.Equal(t, want.Saturday, got.Saturday)
			assert.Empty(t, got.Sunday)
			assert.NotNil(t, got.Sunday)

			// Present-but-empty notes survive; absent stays absent
			require.NotNil(t, got.Saturday[0].Notes)
			assert.Equal(t, "", *got.Saturday[0].Notes)
			assert.Nil(t, got.Saturday[1].Notes)
			assert.Nil(t, got.Saturday[1].Mood)
		})
	}
}

func TestLoadWorkingDraftDefaults(t *testing.T) {
	s := newTestStore(t, memory.NewStore())

	got, err := s.LoadWorkingDraft()
	require.NoError(t, err)
	assert.Equal(t, models.NewWeekendPlan(), got)

	require.NoError(t, s.Backend().Put(constants.WorkingDraftKey, []byte("{not json")))
	got, err = s.LoadWorkingDraft()
	require.NoError(t, err, "corrupt draft must fall back to the default plan")
	assert.Equal(t, models.NewWeekendPlan(), got)

	require.NoError(t, s.Backend().Put(constants.WorkingDraftKey, []byte(`{"saturday":null}`)))
	got, err = s.LoadWorkingDraft()
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultPlanName, got.Name)
	assert.Equal(t, models.DefaultTheme, got.Theme)
	assert.NotNil(t, got.Saturday)

	require.NoError(t, s.ClearWorkingDraft())
	_, found, err := s.Backend().Get(constants.WorkingDraftKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadWorkingDraftDropsMalformedEntries(t *testing.T) {
	s := newTestStore(t, memory.NewStore())

	draft := `{"name":"Hand edited","theme":"balanced","saturday":[
		{"id":"hiking","name":"Hike","category":"adventure","duration":60,"scheduledId":"good","day":"saturday","startTime":"09:00","endTime":"10:00"},
		{"id":"brunch","name":"Brunch","category":"food","duration":60,"scheduledId":"bad-start","day":"saturday","startTime":"soon","endTime":"10:30"},
		{"id":"brunch","name":"Brunch","category":"food","duration":60,"scheduledId":"bad-end","day":"saturday","startTime":"09:30","endTime":""},
		{"id":"brunch","name":"Brunch","category":"food","duration":60,"scheduledId":"backwards","day":"saturday","startTime":"11:00","endTime":"10:00"}
	],"sunday":[]}`
	require.NoError(t, s.Backend().Put(constants.WorkingDraftKey, []byte(draft)))

	got, err := s.LoadWorkingDraft()
	require.NoError(t, err)
	assert.Equal(t, "Hand edited", got.Name)
	assert.Equal(t, []string{"good"}, got.Saturday.IDs())
	assert.NotNil(t, got.Sunday)
}

func TestSavedPlans(t *testing.T) {
	for name, b := range backendsForTest(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t, b)
			created := time.Date(2026, 10, 10, 9, 30, 0, 0, time.UTC)

			plans, err := s.ListPlans()
			require.NoError(t, err)
			assert.Empty(t, plans)

			first := samplePlan()
			first.ID, first.CreatedAt, first.UpdatedAt = "p-1", created, created
			second := models.NewWeekendPlan()
			second.ID, second.Name, second.CreatedAt, second.UpdatedAt = "p-2", "City Break", created, created

			require.NoError(t, s.SavePlan(first))
			require.NoError(t, s.SavePlan(second))

			plans, err = s.ListPlans()
			require.NoError(t, err)
			require.Len(t, plans, 2)
			assert.Equal(t, "p-2", plans[0].ID, "newest save comes first")

			// Upsert replaces and moves to the front
			first.Name = "Lake Weekend v2"
			first.UpdatedAt = created.Add(time.Hour)
			require.NoError(t, s.SavePlan(first))
			plans, err = s.ListPlans()
			require.NoError(t, err)
			require.Len(t, plans, 2)
			assert.Equal(t, "p-1", plans[0].ID)
			assert.Equal(t, "Lake Weekend v2", plans[0].Name)

			got, err := s.GetPlan("p-1")
			require.NoError(t, err)
			assert.True(t, got.CreatedAt.Equal(created))
			assert.True(t, got.UpdatedAt.Equal(created.Add(time.Hour)))
			assert.Equal(t, first.Saturday, got.Saturday)

			_, err = s.GetPlan("missing")
			assert.ErrorIs(t, err, ErrPlanNotFound)

			require.NoError(t, s.DeletePlan("p-2"))
			assert.ErrorIs(t, s.DeletePlan("p-2"), ErrPlanNotFound)
			plans, err = s.ListPlans()
			require.NoError(t, err)
			assert.Len(t, plans, 1)
		})
	}
}

func TestSavePlanRequiresID(t *testing.T) {
	s := newTestStore(t, memory.NewStore())
	assert.Error(t, s.SavePlan(models.NewWeekendPlan()))
}

func TestCorruptPlansReadAsEmpty(t *testing.T) {
	s := newTestStore(t, memory.NewStore())
	require.NoError(t, s.Backend().Put(constants.SavedPlansKey, []byte("[{")))

	plans, err := s.ListPlans()
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestTimestampsSerializeRFC3339(t *testing.T) {
	s := newTestStore(t, memory.NewStore())
	plan := models.NewWeekendPlan()
	plan.ID = "p-1"
	plan.CreatedAt = time.Date(2026, 10, 10, 9, 30, 0, 0, time.UTC)
	plan.UpdatedAt = plan.CreatedAt
	require.NoError(t, s.SavePlan(plan))

	raw, found, err := s.Backend().Get(constants.SavedPlansKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, string(raw), `"createdAt":"2026-10-10T09:30:00Z"`)
}

func TestNewBackend(t *testing.T) {
	dir := t.TempDir()

	b, err := NewBackend(constants.BackendDiskv, dir)
	require.NoError(t, err)
	assert.IsType(t, &diskv.Store{}, b)

	b, err = NewBackend(constants.BackendSQLite, filepath.Join(dir, "w.db"))
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, b)

	_, err = NewBackend(constants.BackendPostgres, "")
	assert.Error(t, err)

	_, err = NewBackend("redis", dir)
	assert.Error(t, err)
}

func TestLoadBeforeInit(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, diskv.NewStore(filepath.Join(dir, "missing")).Load())
	assert.Error(t, sqlite.NewStore(filepath.Join(dir, "missing.db")).Load())
}
