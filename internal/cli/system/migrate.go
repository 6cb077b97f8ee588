package system

import (
	"fmt"

	"habitual/internal/cli"
)

type MigrateCmd struct {
	DryRun bool `help:"Show pending migrations without applying them."`
}

func (cmd *MigrateCmd) Run(appCtx *cli.Context) error {
	m, ok := appCtx.Store.(cli.Migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}
	runner := m.MigrationRunner()

	if cmd.DryRun {
		current, err := runner.GetCurrentVersion()
		if err != nil {
			return err
		}
		latest, err := runner.GetLatestVersion()
		if err != nil {
			return err
		}
		if current >= latest {
			fmt.Printf("Database schema is up to date (version %d)\n", current)
		} else {
			fmt.Printf("Schema version %d, %d migration(s) pending up to version %d\n",
				current, latest-current, latest)
		}
		return nil
	}

	appCtx.PerformAutomaticBackup()

	_, err := runner.ApplyMigrations(func(msg string) { fmt.Println(msg) })
	return err
}
