package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/constants"
)

type CreateCmd struct{}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	backupPath, err := ctx.BackupManager().CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, b := range backups {
		tbl.AddRow(b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), humanize.Bytes(uint64(b.Size)))
	}
	ctx.Println(tbl)
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type RestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	mgr := ctx.BackupManager()

	backupPath, err := c.resolvePath(mgr.GetBackupDir())
	if err != nil {
		return err
	}

	ctx.Println("⚠️  WARNING: This will replace your working draft and saved plans with the backup.")
	ctx.Println("A backup of the current state will be created before restoring.")
	ctx.Printf("\nRestore from: %s\n", backupPath)
	ok, err := ctx.Confirm(c.Yes, "Continue with restore?", backupPath)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Restore cancelled.")
		return nil
	}

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	draft, err := ctx.Store.LoadWorkingDraft()
	if err != nil {
		return err
	}
	if err := ctx.Engine.Replace(draft); err != nil {
		return err
	}

	ctx.Println("✓ Backup restored successfully!")
	ctx.Printf("  Previous state saved to: %s\n", filepath.Base(previous))
	return nil
}

// resolvePath accepts an absolute path, a path relative to the working
// directory, or a file name inside the backup directory.
func (c *RestoreCmd) resolvePath(backupDir string) (string, error) {
	backupPath := c.BackupFile
	if filepath.IsAbs(backupPath) {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", backupPath)
		}
		return backupPath, nil
	}
	if _, err := os.Stat(backupPath); err == nil {
		absPath, err := filepath.Abs(backupPath)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return absPath, nil
	}
	possiblePath := filepath.Join(backupDir, c.BackupFile)
	if _, err := os.Stat(possiblePath); err == nil {
		return possiblePath, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
