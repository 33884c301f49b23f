package cli

import (
	"github.com/spf13/cobra"
)

func newSuggestCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Print example commands",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.Printer.Suggestions(app.Session.Suggestions())
		},
	}
}
