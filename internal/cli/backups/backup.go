package backups

import (
	"fmt"
	"path/filepath"

	"habitual/internal/backup"
	"habitual/internal/cli"
)

func manager(appCtx *cli.Context) (*backup.Manager, error) {
	fb, ok := appCtx.Store.(cli.DatabaseFile)
	if !ok {
		return nil, fmt.Errorf("backups are only supported with sqlite storage; use pg_dump for postgres")
	}
	return backup.NewManager(fb.DatabasePath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(appCtx *cli.Context) error {
	mgr, err := manager(appCtx)
	if err != nil {
		return err
	}
	path, err := mgr.CreateBackup()
	if err != nil {
		return err
	}
	fmt.Printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(appCtx *cli.Context) error {
	mgr, err := manager(appCtx)
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %s  %d bytes\n",
			filepath.Base(b.Path), b.Timestamp.Format("2006-01-02 15:04:05"), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Name  string `arg:"" optional:"" help:"Backup filename to restore (default: latest)."`
	Force bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *BackupRestoreCmd) Run(appCtx *cli.Context) error {
	mgr, err := manager(appCtx)
	if err != nil {
		return err
	}

	path := ""
	if c.Name != "" {
		path = filepath.Join(mgr.GetBackupDir(), c.Name)
	} else {
		backups, err := mgr.ListBackups()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return fmt.Errorf("no backups to restore")
		}
		path = backups[0].Path
	}

	if !c.Force {
		ok, err := cli.Confirm(fmt.Sprintf(
			"Replace the current database with %s?", filepath.Base(path)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := appCtx.Store.Close(); err != nil {
		return err
	}
	if err := mgr.Restore(path); err != nil {
		return err
	}
	fmt.Printf("Restored from %s\n", filepath.Base(path))
	return nil
}
