package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestReadMigrationFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		want     []int
		wantErr  bool
		errMatch string
	}{
		{
			name: "sorted by version",
			files: map[string]string{
				"002_add_settings.sql": "CREATE TABLE settings (id INTEGER);",
				"001_init.sql":         "CREATE TABLE habits (id TEXT);",
			},
			want: []int{1, 2},
		},
		{
			name: "ignores non-sql files",
			files: map[string]string{
				"001_init.sql": "CREATE TABLE habits (id TEXT);",
				"README.md":    "notes",
			},
			want: []int{1},
		},
		{
			name: "rejects bad filename",
			files: map[string]string{
				"init.sql": "CREATE TABLE habits (id TEXT);",
			},
			wantErr:  true,
			errMatch: "invalid migration filename",
		},
		{
			name: "rejects duplicate version",
			files: map[string]string{
				"001_init.sql":  "CREATE TABLE a (id TEXT);",
				"001_other.sql": "CREATE TABLE b (id TEXT);",
			},
			wantErr:  true,
			errMatch: "duplicate migration version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(nil, testFS(tt.files))
			migrations, err := r.ReadMigrationFiles()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMatch) {
					t.Errorf("error %q does not contain %q", err, tt.errMatch)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadMigrationFiles: %v", err)
			}
			var got []int
			for _, m := range migrations {
				got = append(got, m.Version)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got versions %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got versions %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	fsys := testFS(map[string]string{
		"001_init.sql":     "CREATE TABLE habits (id TEXT PRIMARY KEY);",
		"002_settings.sql": "CREATE TABLE settings (id INTEGER PRIMARY KEY, timezone TEXT);",
	})
	r := NewRunner(db, fsys)

	applied, err := r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err := r.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// A second run is a no-op.
	applied, err = r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (second run): %v", err)
	}
	if applied != 0 {
		t.Errorf("applied = %d on up-to-date schema, want 0", applied)
	}

	if err := r.Validate(); err != nil {
		t.Errorf("Validate on current schema: %v", err)
	}
}

func TestApplyMigrationsPartial(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, testFS(map[string]string{
		"001_init.sql": "CREATE TABLE habits (id TEXT PRIMARY KEY);",
	}))
	if _, err := r.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}

	// A new migration appears; only the pending one runs.
	r = NewRunner(db, testFS(map[string]string{
		"001_init.sql":     "CREATE TABLE habits (id TEXT PRIMARY KEY);",
		"002_settings.sql": "CREATE TABLE settings (id INTEGER PRIMARY KEY);",
	}))
	applied, err := r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
}

func TestValidateOutOfDate(t *testing.T) {
	db := openTestDB(t)
	fsys := testFS(map[string]string{
		"001_init.sql":     "CREATE TABLE habits (id TEXT PRIMARY KEY);",
		"002_settings.sql": "CREATE TABLE settings (id INTEGER PRIMARY KEY);",
	})
	r := NewRunner(db, testFS(map[string]string{
		"001_init.sql": "CREATE TABLE habits (id TEXT PRIMARY KEY);",
	}))
	if _, err := r.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}

	r = NewRunner(db, fsys)
	err := r.Validate()
	if err == nil {
		t.Fatal("expected out-of-date error, got nil")
	}
	if !strings.Contains(err.Error(), "out of date") {
		t.Errorf("error %q does not mention out of date", err)
	}
}

func TestValidateNewerThanSupported(t *testing.T) {
	db := openTestDB(t)
	fsys := testFS(map[string]string{
		"001_init.sql":     "CREATE TABLE habits (id TEXT PRIMARY KEY);",
		"002_settings.sql": "CREATE TABLE settings (id INTEGER PRIMARY KEY);",
	})
	r := NewRunner(db, fsys)
	if _, err := r.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}

	r = NewRunner(db, testFS(map[string]string{
		"001_init.sql": "CREATE TABLE habits (id TEXT PRIMARY KEY);",
	}))
	if err := r.Validate(); err == nil {
		t.Fatal("expected newer-than-supported error, got nil")
	}
}
