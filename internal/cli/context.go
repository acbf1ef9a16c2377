package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/weekendly/internal/backup"
	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/config"
	"github.com/julianstephens/weekendly/internal/lifecycle"
	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/scheduler"
	"github.com/julianstephens/weekendly/internal/storage"
)

type Context struct {
	Config    *config.Config
	Store     *storage.Store
	Catalog   *catalog.Catalog
	Engine    *scheduler.Engine
	Lifecycle *lifecycle.Manager
	Out       io.Writer

	// Ask overrides the interactive prompt used by Confirm.
	Ask ConfirmFunc
}

func NewContext(cfg *config.Config, store *storage.Store, cat *catalog.Catalog) *Context {
	return &Context{
		Config:  cfg,
		Store:   store,
		Catalog: cat,
		Out:     os.Stdout,
	}
}

// Open loads the working draft and wires the engine. The backend must be
// initialized or loaded first.
func (c *Context) Open() error {
	draft, err := c.Store.LoadWorkingDraft()
	if err != nil {
		return err
	}
	step := 0
	if c.Config != nil {
		step = c.Config.SlotStepMin
	}
	c.Engine = scheduler.New(draft, c.Store, scheduler.Options{SlotStepMin: step})
	c.Lifecycle = lifecycle.New(c.Engine, c.Store)
	return nil
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// BackupManager returns a manager rooted at the config directory.
func (c *Context) BackupManager() *backup.Manager {
	dir := ""
	if c.Config != nil {
		dir = c.Config.ConfigDir
	}
	return backup.NewManager(c.Store, dir)
}

// PerformAutomaticBackup snapshots the current state before destructive
// commands. Failures are logged and never block the command.
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.BackupManager().CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Activity resolves a catalog template by id.
func (c *Context) Activity(id string) (models.ActivityTemplate, error) {
	return c.Catalog.Get(id)
}

// ResolveScheduledID accepts a full scheduled id or a unique prefix of one.
func (c *Context) ResolveScheduledID(day models.Day, ref string) (string, error) {
	schedule := c.Engine.Plan().Schedule(day)
	if schedule.IndexOf(ref) >= 0 {
		return ref, nil
	}
	match := ""
	for _, id := range schedule.IDs() {
		if len(ref) >= 4 && len(id) >= len(ref) && id[:len(ref)] == ref {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous on %s", ref, day)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no activity %q on %s", ref, day)
	}
	return match, nil
}
