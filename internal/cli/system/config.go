package system

import (
	"fmt"

	"habitual/internal/cli"
	"habitual/internal/keyring"
	"habitual/internal/models"
	"habitual/internal/storage"
	"habitual/internal/validation"
)

type ConfigCmd struct {
	Get   ConfigGetCmd   `cmd:"" help:"Show a configuration value."`
	Set   ConfigSetCmd   `cmd:"" help:"Set a configuration value."`
	Unset ConfigUnsetCmd `cmd:"" help:"Remove a configuration value."`
}

const keyringHint = "stored in the OS keyring, never in the database"

type ConfigGetCmd struct {
	Key string `arg:"" help:"One of: timezone, connection-string." enum:"timezone,connection-string"`
}

func (cmd *ConfigGetCmd) Run(appCtx *cli.Context) error {
	switch cmd.Key {
	case "timezone":
		settings, err := appCtx.Store.GetSettings()
		if err != nil {
			return err
		}
		fmt.Println(settings.Timezone)
	case "connection-string":
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return err
		}
		fmt.Println(connStr)
	}
	return nil
}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"One of: timezone, connection-string." enum:"timezone,connection-string"`
	Value string `arg:"" help:"The value to store."`
}

func (cmd *ConfigSetCmd) Run(appCtx *cli.Context) error {
	switch cmd.Key {
	case "timezone":
		if !validation.Timezone(cmd.Value) {
			return fmt.Errorf("invalid timezone %q (expected an IANA name like Europe/Berlin)", cmd.Value)
		}
		if err := appCtx.Store.SaveSettings(models.Settings{Timezone: cmd.Value}); err != nil {
			return err
		}
		fmt.Printf("Timezone set to %s\n", cmd.Value)
	case "connection-string":
		if !storage.IsPostgres(cmd.Value) {
			return fmt.Errorf("connection string must start with postgres:// or postgresql://")
		}
		if err := keyring.SetConnectionString(cmd.Value); err != nil {
			return err
		}
		fmt.Println("Connection string saved (" + keyringHint + ").")
	}
	return nil
}

type ConfigUnsetCmd struct {
	Key string `arg:"" help:"One of: connection-string." enum:"connection-string"`
}

func (cmd *ConfigUnsetCmd) Run(appCtx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from the OS keyring.")
	return nil
}
