package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"habitual/internal/apperr"
	"habitual/internal/models"
	"habitual/internal/storage"
	"habitual/internal/streak"
)

// row is one habit with its derived display state.
type row struct {
	habit  models.Habit
	streak models.Streak
	due    bool
}

type rowsMsg struct {
	rows []row
	err  error
}

type markedMsg struct {
	name string
	err  error
}

// Model is the habit dashboard: one line per habit with due status and
// streaks, enter to mark the selected habit done.
type Model struct {
	store  storage.Provider
	user   models.User
	loc    *time.Location
	rows   []row
	cursor int
	status string
	help   help.Model
	err    error
}

func NewModel(store storage.Provider, user models.User, loc *time.Location) Model {
	return Model{
		store: store,
		user:  user,
		loc:   loc,
		help:  help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadRows
}

func (m Model) loadRows() tea.Msg {
	habits, err := m.store.ListHabits(m.user.ID)
	if err != nil {
		return rowsMsg{err: err}
	}

	now := time.Now().In(m.loc)
	rows := make([]row, 0, len(habits))
	for _, h := range habits {
		completions, err := m.store.ListCompletions(h.ID)
		if err != nil {
			return rowsMsg{err: err}
		}
		st, err := streak.Compute(h.Frequency, completions, now, m.loc)
		if err != nil {
			return rowsMsg{err: err}
		}
		due, err := streak.IsDue(h.Frequency, completions, now, m.loc)
		if err != nil {
			return rowsMsg{err: err}
		}
		rows = append(rows, row{habit: h, streak: st, due: due})
	}
	return rowsMsg{rows: rows}
}

func (m Model) markSelected() tea.Cmd {
	if m.cursor >= len(m.rows) {
		return nil
	}
	r := m.rows[m.cursor]
	return func() tea.Msg {
		completion := models.Completion{
			ID:          uuid.New().String(),
			HabitID:     r.habit.ID,
			CompletedAt: time.Now().In(m.loc),
		}
		err := m.store.RecordCompletion(r.habit, completion, m.loc)
		return markedMsg{name: r.habit.DisplayName, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rowsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.rows = msg.rows
		if m.cursor >= len(m.rows) && len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
		return m, nil

	case markedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperr.ErrDuplicateCompletion) {
				m.status = fmt.Sprintf("%q is already completed for this period", msg.name)
				return m, nil
			}
			m.err = msg.err
			return m, tea.Quit
		}
		m.status = fmt.Sprintf("Marked %q as done", msg.name)
		return m, m.loadRows

	case tea.KeyMsg:
		switch {
		case keyMatches(msg, keys.Quit):
			return m, tea.Quit
		case keyMatches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case keyMatches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case keyMatches(msg, keys.Done):
			return m, m.markSelected()
		case keyMatches(msg, keys.Refresh):
			m.status = ""
			return m, m.loadRows
		}
	}
	return m, nil
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}
