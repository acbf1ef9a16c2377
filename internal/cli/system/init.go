package system

import (
	"fmt"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/constants"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	backend := ctx.Store.Backend()
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := ctx.Open(); err != nil {
		return err
	}

	_, found, err := backend.Get(constants.WorkingDraftKey)
	if err != nil {
		return fmt.Errorf("failed to read working draft: %w", err)
	}
	if !found {
		if err := ctx.Store.SaveWorkingDraft(ctx.Engine.Plan()); err != nil {
			return err
		}
	}

	ctx.Printf("Initialized %s storage at: %s\n", ctx.Config.Backend, backend.GetConfigPath())
	return nil
}
