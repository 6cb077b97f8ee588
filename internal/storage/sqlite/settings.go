package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"habitual/internal/apperr"
	"habitual/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	var settings models.Settings
	err := s.db.QueryRow("SELECT timezone FROM settings WHERE id = 1").Scan(&settings.Timezone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Settings{Timezone: "Local"}, nil
		}
		return models.Settings{}, err
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, timezone) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET timezone = excluded.timezone`,
		settings.Timezone)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *Store) SetSessionUser(userID string) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, user_id) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET user_id = excluded.user_id`, userID)
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *Store) GetSessionUser() (models.User, error) {
	var userID string
	err := s.db.QueryRow("SELECT user_id FROM session WHERE id = 1").Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperr.ErrNotLoggedIn
		}
		return models.User{}, err
	}
	user, err := s.GetUser(userID)
	if errors.Is(err, apperr.ErrUserNotFound) {
		// Session row survived a cascade miss; treat as logged out.
		return models.User{}, apperr.ErrNotLoggedIn
	}
	return user, err
}

func (s *Store) ClearSession() error {
	_, err := s.db.Exec("DELETE FROM session WHERE id = 1")
	return err
}
