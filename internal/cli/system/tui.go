package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"habitual/internal/cli"
	"habitual/internal/tui"
)

type TuiCmd struct{}

func (cmd *TuiCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}

	model := tui.NewModel(appCtx.Store, user, appCtx.Location())
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok {
		return m.Err()
	}
	return nil
}
