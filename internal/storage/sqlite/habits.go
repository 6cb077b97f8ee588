package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"habitual/internal/apperr"
	"habitual/internal/constants"
	"habitual/internal/models"
)

func (s *Store) CreateHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, user_id, name, display_name, frequency, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.Name, habit.DisplayName,
		string(habit.Frequency), habit.CreatedAt.Format(constants.TimestampFormat))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperr.ErrDuplicateHabit
		}
		if strings.Contains(err.Error(), "CHECK constraint failed") {
			return apperr.ErrInvalidFrequency
		}
		return fmt.Errorf("failed to create habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, name, display_name, frequency, created_at
		FROM habits WHERE id = ?`, id)
	return scanHabit(row)
}

func (s *Store) GetHabitByName(userID, name string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, name, display_name, frequency, created_at
		FROM habits WHERE user_id = ? AND name = ?`, userID, strings.ToLower(name))
	return scanHabit(row)
}

func (s *Store) ListHabits(userID string) ([]models.Habit, error) {
	return s.queryHabits(`
		SELECT id, user_id, name, display_name, frequency, created_at
		FROM habits WHERE user_id = ? ORDER BY created_at`, userID)
}

func (s *Store) ListHabitsByFrequency(userID string, freq models.Frequency) ([]models.Habit, error) {
	return s.queryHabits(`
		SELECT id, user_id, name, display_name, frequency, created_at
		FROM habits WHERE user_id = ? AND frequency = ? ORDER BY created_at`,
		userID, string(freq))
}

func (s *Store) DeleteHabit(id string) error {
	// Hard delete; completions cascade via the foreign key.
	res, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrHabitNotFound
	}
	return nil
}

func (s *Store) queryHabits(query string, args ...any) ([]models.Habit, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var frequency, createdAt string
	if err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.DisplayName, &frequency, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, apperr.ErrHabitNotFound
		}
		return models.Habit{}, err
	}
	h.Frequency = models.Frequency(frequency)
	t, err := time.Parse(constants.TimestampFormat, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	h.CreatedAt = t
	return h, nil
}
