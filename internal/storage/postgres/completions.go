package postgres

import (
	"fmt"
	"time"

	"habitual/internal/apperr"
	"habitual/internal/models"
	"habitual/internal/streak"
)

// RecordCompletion appends a completion for the habit. The habit's
// completion rows are locked for the duration of the transaction so the
// duplicate-period check and the insert are atomic.
func (s *Store) RecordCompletion(habit models.Habit, completion models.Completion, loc *time.Location) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT completed_at FROM completions
		WHERE habit_id = $1 ORDER BY completed_at ASC FOR UPDATE`, habit.ID)
	if err != nil {
		return err
	}

	var existing []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			rows.Close()
			return err
		}
		existing = append(existing, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	_, dup, err := streak.FindDuplicate(habit.Frequency, existing, completion.CompletedAt, loc)
	if err != nil {
		return err
	}
	if dup {
		return apperr.ErrDuplicateCompletion
	}

	_, err = tx.Exec(`
		INSERT INTO completions (id, habit_id, completed_at)
		VALUES ($1, $2, $3)`,
		completion.ID, completion.HabitID, completion.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}

	return tx.Commit()
}

func (s *Store) ListCompletions(habitID string) ([]time.Time, error) {
	rows, err := s.db.Query(`
		SELECT completed_at FROM completions
		WHERE habit_id = $1 ORDER BY completed_at ASC`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}
