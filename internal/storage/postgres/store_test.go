package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"

	"habitual/internal/apperr"
	"habitual/internal/models"
)

// recorder captures every statement a Store issues and can fail
// statements by substring, standing in for a live server.
type recorder struct {
	stmts  []string
	errFor map[string]error
}

func (r *recorder) exec(query string) error {
	r.stmts = append(r.stmts, query)
	for sub, err := range r.errFor {
		if strings.Contains(query, sub) {
			return err
		}
	}
	return nil
}

func (r *recorder) indexOf(sub string) int {
	for i, q := range r.stmts {
		if strings.Contains(q, sub) {
			return i
		}
	}
	return -1
}

type stubConnector struct{ rec *recorder }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) {
	return &stubConn{rec: c.rec}, nil
}
func (c stubConnector) Driver() driver.Driver { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open via connector")
}

type stubConn struct{ rec *recorder }

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return &stubStmt{rec: c.rec, query: query}, nil
}
func (c *stubConn) Close() error              { return nil }
func (c *stubConn) Begin() (driver.Tx, error) { return stubTx{}, nil }

type stubStmt struct {
	rec   *recorder
	query string
}

func (s *stubStmt) Close() error  { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	if err := s.rec.exec(s.query); err != nil {
		return nil, err
	}
	return driver.RowsAffected(1), nil
}

func (s *stubStmt) Query(args []driver.Value) (driver.Rows, error) {
	if err := s.rec.exec(s.query); err != nil {
		return nil, err
	}
	return &emptyRows{cols: []string{"version"}}, nil
}

type emptyRows struct{ cols []string }

func (r *emptyRows) Columns() []string              { return r.cols }
func (r *emptyRows) Close() error                   { return nil }
func (r *emptyRows) Next(dest []driver.Value) error { return io.EOF }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func stubStore(t *testing.T, rec *recorder) *Store {
	t.Helper()
	db := sql.OpenDB(stubConnector{rec: rec})
	t.Cleanup(func() { db.Close() })
	return &Store{connStr: "postgres://localhost/habitual", db: db}
}

func TestInitCreatesSchemaFirst(t *testing.T) {
	rec := &recorder{}
	store := stubStore(t, rec)

	if err := store.Init(); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}

	schemaIdx := rec.indexOf("CREATE SCHEMA IF NOT EXISTS habitual")
	if schemaIdx == -1 {
		t.Fatal("Init() never created the habitual schema")
	}
	versionIdx := rec.indexOf("schema_version")
	if versionIdx == -1 {
		t.Fatal("Init() never touched schema_version")
	}
	if schemaIdx > versionIdx {
		t.Errorf("schema created at statement %d, after schema_version at %d; a fresh database would reject the unqualified DDL", schemaIdx, versionIdx)
	}
	if rec.indexOf("CREATE TABLE IF NOT EXISTS habitual.users") == -1 {
		t.Error("Init() did not apply the initial migration")
	}
}

func TestCreateHabitErrorMapping(t *testing.T) {
	habit := models.Habit{
		ID:        "h1",
		UserID:    "u1",
		Name:      "meditate",
		Frequency: models.FrequencyDaily,
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{
			name:    "unique violation",
			dbErr:   &pq.Error{Code: pqUniqueViolation},
			wantErr: apperr.ErrDuplicateHabit,
		},
		{
			name:    "check violation",
			dbErr:   &pq.Error{Code: pqCheckViolation},
			wantErr: apperr.ErrInvalidFrequency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{errFor: map[string]error{"INSERT INTO habits": tt.dbErr}}
			store := stubStore(t, rec)

			err := store.CreateHabit(habit)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateHabit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
