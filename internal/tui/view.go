package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("habitual / %s", m.user.DisplayName)))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString("No habits yet. Create one with 'habitual habit add'.\n")
	}

	for i, r := range m.rows {
		status := doneStyle.Render("[done]")
		if r.due {
			status = dueStyle.Render("[due] ")
		}
		line := fmt.Sprintf("%s %-30s %-7s %s",
			status, r.habit.DisplayName, r.habit.Frequency,
			streakStyle.Render(fmt.Sprintf("streak %d/%d", r.streak.Current, r.streak.Longest)))
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(keys))

	return docStyle.Render(b.String())
}
