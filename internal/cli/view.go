package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/grid/backend/terminal"
)

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view FILE.csv",
		Short: "Browse a CSV file in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}
			t, err := a.readTable(args[0])
			if err != nil {
				return err
			}

			m, err := terminal.NewModel(t.Columns, t.Rows, a.cfg.Terminal.ColumnWidth, a.cfg.Options(a.log)...)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
				tea.WithContext(cmd.Context()),
			)
			_, err = p.Run()
			m.Grid().Destroy()
			return err
		},
	}
}
