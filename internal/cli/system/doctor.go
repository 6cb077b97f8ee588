package system

import (
	"fmt"
	"os"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"habitual/internal/backup"
	"habitual/internal/cli"
	"habitual/internal/constants"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(appCtx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := appCtx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		if err := checkSchemaVersion(appCtx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// The store assumes a single local writer; warn if another habitual
	// process is already running.
	if count, err := countRunningInstances(); err != nil {
		fmt.Printf("⚠ Single instance: UNKNOWN (%v)\n", err)
	} else if count > 1 {
		fmt.Printf("⚠ Single instance: WARNING (%d habitual processes running)\n", count)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	if err := checkBackupsPresent(appCtx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkSchemaVersion(appCtx *cli.Context) error {
	m, ok := appCtx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	return m.MigrationRunner().Validate()
}

func countRunningInstances() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, p := range procs {
		name := p.Executable()
		if name == constants.AppName || strings.TrimSuffix(name, ".exe") == constants.AppName {
			count++
		}
	}
	if count == 0 {
		// At minimum this process is running; some platforms report a
		// truncated executable name.
		count = 1
	}
	return count, nil
}

func checkBackupsPresent(appCtx *cli.Context) error {
	fb, ok := appCtx.Store.(cli.DatabaseFile)
	if !ok {
		return nil
	}
	backups, err := backup.NewManager(fb.DatabasePath()).ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'habitual backup create'")
	}
	if _, err := os.Stat(backups[0].Path); err != nil {
		return fmt.Errorf("latest backup unreadable: %w", err)
	}
	return nil
}
