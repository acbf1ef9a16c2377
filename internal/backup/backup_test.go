package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/storage"
	"github.com/julianstephens/weekendly/internal/storage/memory"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func setupTestManager(t *testing.T) (*Manager, *storage.Store, *testClock) {
	t.Helper()
	store := storage.New(memory.NewStore())

	draft := models.NewWeekendPlan()
	draft.Name = "Draft Weekend"
	draft.Saturday = models.DaySchedule{{
		ActivityTemplate: models.ActivityTemplate{ID: "yoga", Name: "Yoga", Category: models.CategoryWellness, Duration: 45},
		ScheduledID:      "s-1",
		Day:              models.Saturday,
		StartTime:        "08:00",
		EndTime:          "08:45",
	}}
	if err := store.SaveWorkingDraft(draft); err != nil {
		t.Fatalf("failed to seed draft: %v", err)
	}
	saved := models.NewWeekendPlan()
	saved.ID = "p-1"
	saved.Name = "Saved Weekend"
	if err := store.SavePlan(saved); err != nil {
		t.Fatalf("failed to seed plan: %v", err)
	}

	clock := &testClock{t: time.Date(2026, 10, 10, 9, 0, 0, 0, time.Local)}
	mgr := NewManager(store, t.TempDir())
	mgr.now = clock.now
	return mgr, store, clock
}

func TestCreateBackup(t *testing.T) {
	mgr, _, _ := setupTestManager(t)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Base(backupPath) != "weekendly-20261010-0900.json" {
		t.Errorf("unexpected backup name: %s", filepath.Base(backupPath))
	}
	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written outside backup dir: %s", backupPath)
	}

	snap, err := ReadSnapshot(backupPath)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if snap.Version != SnapshotVersion {
		t.Errorf("snapshot version = %d, want %d", snap.Version, SnapshotVersion)
	}
	if snap.Draft.Name != "Draft Weekend" || len(snap.Draft.Saturday) != 1 {
		t.Errorf("snapshot draft = %+v", snap.Draft)
	}
	if len(snap.Plans) != 1 || snap.Plans[0].ID != "p-1" {
		t.Errorf("snapshot plans = %+v", snap.Plans)
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	mgr, _, clock := setupTestManager(t)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}
	clock.t = clock.t.Add(time.Second)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
}

func TestBackupRotation(t *testing.T) {
	mgr, _, clock := setupTestManager(t)

	var first string
	for i := 0; i < constants.MaxBackups+2; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		if i == 0 {
			first = path
		}
		clock.t = clock.t.Add(time.Hour)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Error("oldest backup should have been rotated out")
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
}

func TestListBackupsIgnoresOtherFiles(t *testing.T) {
	mgr, _, _ := setupTestManager(t)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups on missing dir failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	for _, name := range []string{"notes.txt", "weekendly-garbage.json", "weekendly-20261010-0900.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup size should be recorded")
	}
}

func TestRestoreBackup(t *testing.T) {
	mgr, store, clock := setupTestManager(t)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	clock.t = clock.t.Add(time.Hour)

	// Diverge from the snapshot
	if err := store.SaveWorkingDraft(models.NewWeekendPlan()); err != nil {
		t.Fatal(err)
	}
	if err := store.DeletePlan("p-1"); err != nil {
		t.Fatal(err)
	}

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(previous), constants.BackupFilePrefix) {
		t.Errorf("pre-restore backup path = %s", previous)
	}

	draft, err := store.LoadWorkingDraft()
	if err != nil {
		t.Fatal(err)
	}
	if draft.Name != "Draft Weekend" || len(draft.Saturday) != 1 {
		t.Errorf("restored draft = %+v", draft)
	}
	if _, err := store.GetPlan("p-1"); err != nil {
		t.Errorf("restored plan missing: %v", err)
	}

	// The pre-restore snapshot captured the diverged state
	snap, err := ReadSnapshot(previous)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Plans) != 0 {
		t.Errorf("pre-restore snapshot should have no plans, got %d", len(snap.Plans))
	}
}

func TestRestoreRejectsInvalidFiles(t *testing.T) {
	mgr, _, _ := setupTestManager(t)
	dir := t.TempDir()

	if _, err := mgr.RestoreBackup(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("restoring a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bad); err == nil {
		t.Error("restoring a corrupt file should fail")
	}

	future := filepath.Join(dir, "future.json")
	if err := os.WriteFile(future, []byte(`{"version": 99}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(future); err == nil {
		t.Error("restoring an unsupported version should fail")
	}
}
