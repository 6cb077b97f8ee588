package system

import (
	"fmt"

	"habitual/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Re-run initialization even if storage already exists."`
}

func (cmd *InitCmd) Run(appCtx *cli.Context) error {
	if !cmd.Force {
		if err := appCtx.Store.Load(); err == nil {
			fmt.Println("Storage is already initialized. Use --force to re-run migrations.")
			return nil
		}
	}
	if err := appCtx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	fmt.Println("Storage initialized.")
	fmt.Println("Next: create an account with 'habitual user register <name>'.")
	return nil
}
