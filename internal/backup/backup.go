// Package backup writes JSON snapshots of the working draft and the saved
// plans so any backend can be restored from a file.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/models"
)

// SnapshotVersion is bumped when the snapshot layout changes
const SnapshotVersion = 1

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// Source is the data a snapshot is taken from and restored into.
type Source interface {
	LoadWorkingDraft() (models.WeekendPlan, error)
	SaveWorkingDraft(plan models.WeekendPlan) error
	ListPlans() ([]models.WeekendPlan, error)
	ReplacePlans(plans []models.WeekendPlan) error
}

// Snapshot is the on-disk backup document.
type Snapshot struct {
	Version   int                  `json:"version"`
	CreatedAt time.Time            `json:"createdAt"`
	Draft     models.WeekendPlan   `json:"draft"`
	Plans     []models.WeekendPlan `json:"plans"`
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations
type Manager struct {
	source    Source
	backupDir string
	now       func() time.Time
}

// NewManager stores backups under configDir/backups.
func NewManager(source Source, configDir string) *Manager {
	return &Manager{
		source:    source,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes a snapshot and prunes the oldest files beyond MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	draft, err := m.source.LoadWorkingDraft()
	if err != nil {
		return "", fmt.Errorf("failed to read working draft: %w", err)
	}
	plans, err := m.source.ListPlans()
	if err != nil {
		return "", fmt.Errorf("failed to read saved plans: %w", err)
	}

	now := m.now()
	backupPath, err := m.uniquePath(now)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(Snapshot{
		Version:   SnapshotVersion,
		CreatedAt: now,
		Draft:     draft,
		Plans:     plans,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := writeFileAtomic(backupPath, data); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	logger.Info("Backup created", "path", backupPath, "plans", len(plans))
	return backupPath, nil
}

// uniquePath names a backup by minute, then by second, then with a counter.
func (m *Manager) uniquePath(now time.Time) (string, error) {
	candidate := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := candidate(now.Format(minuteLayout))
	if !exists(path) {
		return path, nil
	}
	stamp := now.Format(secondLayout)
	path = candidate(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = candidate(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return path, nil
}

// ListBackups returns every backup, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}
		timestamp, ok := parseStamp(strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix))
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseStamp reads YYYYMMDD-HHMM or YYYYMMDD-HHMMSS with an optional -N counter.
func parseStamp(stamp string) (time.Time, bool) {
	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		stamp = parts[0] + "-" + parts[1]
	}
	for _, layout := range []string{minuteLayout, secondLayout} {
		if t, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// ReadSnapshot decodes and validates a backup file.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read backup: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	if snap.Version < 1 || snap.Version > SnapshotVersion {
		return Snapshot{}, fmt.Errorf("unsupported backup version %d", snap.Version)
	}
	return snap, nil
}

// RestoreBackup replaces the draft and saved plans with the snapshot at
// backupPath. The current state is backed up first; its path is returned.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	snap, err := ReadSnapshot(backupPath)
	if err != nil {
		return "", err
	}

	previous, err := m.createBackup(true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current state before restore: %w", err)
	}

	if err := m.source.ReplacePlans(snap.Plans); err != nil {
		return previous, fmt.Errorf("failed to restore saved plans: %w", err)
	}
	if err := m.source.SaveWorkingDraft(snap.Draft); err != nil {
		return previous, fmt.Errorf("failed to restore working draft: %w", err)
	}

	logger.Info("Backup restored", "path", backupPath, "previous", previous)
	return previous, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeFileAtomic writes to a temp file in the target directory and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".backup-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
