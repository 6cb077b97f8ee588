package cli

import (
	"github.com/charmbracelet/huh"

	"habitual/internal/apperr"
	"habitual/internal/models"
)

// SelectHabit prompts for one of the user's habits when a command was run
// without a habit name argument.
func SelectHabit(title string, habits []models.Habit) (models.Habit, error) {
	if len(habits) == 0 {
		return models.Habit{}, apperr.ErrHabitNotFound
	}

	options := make([]huh.Option[string], 0, len(habits))
	for _, h := range habits {
		options = append(options, huh.NewOption(h.DisplayName+" ("+string(h.Frequency)+")", h.ID))
	}

	var id string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&id),
		),
	).Run()
	if err != nil {
		return models.Habit{}, err
	}

	for _, h := range habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, apperr.ErrHabitNotFound
}

// SelectFrequency prompts for a habit cadence.
func SelectFrequency(title string) (models.Frequency, error) {
	var freq models.Frequency
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Frequency]().
				Title(title).
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
				).
				Value(&freq),
		),
	).Run()
	return freq, err
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	return ok, err
}

// PromptText collects a single line of free text.
func PromptText(title string) (string, error) {
	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&value),
		),
	).Run()
	return value, err
}

// PromptPassword collects a password without echoing it.
func PromptPassword(title string) (string, error) {
	var password string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	).Run()
	return password, err
}
