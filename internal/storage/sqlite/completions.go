package sqlite

import (
	"fmt"
	"time"

	"habitual/internal/apperr"
	"habitual/internal/constants"
	"habitual/internal/models"
	"habitual/internal/streak"
)

// RecordCompletion appends a completion for the habit. The duplicate-period
// check and the insert run inside one transaction so two near-simultaneous
// completions for the same period cannot both pass the check.
func (s *Store) RecordCompletion(habit models.Habit, completion models.Completion, loc *time.Location) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT completed_at FROM completions
		WHERE habit_id = ? ORDER BY completed_at ASC`, habit.ID)
	if err != nil {
		return err
	}
	existing, err := scanCompletionTimes(rows)
	if err != nil {
		return err
	}

	_, dup, err := streak.FindDuplicate(habit.Frequency, existing, completion.CompletedAt, loc)
	if err != nil {
		return err
	}
	if dup {
		return apperr.ErrDuplicateCompletion
	}

	_, err = tx.Exec(`
		INSERT INTO completions (id, habit_id, completed_at)
		VALUES (?, ?, ?)`,
		completion.ID, completion.HabitID, completion.CompletedAt.Format(constants.TimestampFormat))
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}

	return tx.Commit()
}

func (s *Store) ListCompletions(habitID string) ([]time.Time, error) {
	rows, err := s.db.Query(`
		SELECT completed_at FROM completions
		WHERE habit_id = ? ORDER BY completed_at ASC`, habitID)
	if err != nil {
		return nil, err
	}
	return scanCompletionTimes(rows)
}

type timeRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

func scanCompletionTimes(rows timeRows) ([]time.Time, error) {
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		t, err := time.Parse(constants.TimestampFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse completed_at: %w", err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}
