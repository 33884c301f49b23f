package cli

import (
	"github.com/spf13/cobra"

	"flowbot/internal/engine"
	"flowbot/internal/session"
)

func newSayCommand(app *App) *cobra.Command {
	var showBoard, strict bool

	cmd := &cobra.Command{
		Use:   "say <command> [command...]",
		Short: "Run commands against the board",
		Long: `Run one or more chat commands in order against the seeded board and
print each reply. Every command sees the board left by the previous one.

With --strict, the run stops at the first command that does not apply or
answer (not found, ambiguous, unrecognized...) and exits with status 1
without printing an error of its own.

Example:
  flowbot say "create workflow Launch Campaign" \
    "add step to Launch Campaign: Prepare email sequence" --board`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.Printer
			for _, text := range args {
				p.Message(session.RoleUser, text)
				res, err := app.Session.Send(cmd.Context(), text)
				if err != nil {
					return err
				}
				p.Message(session.RoleAssistant, res.Reply)

				if strict && !succeeded(res.Outcome) {
					app.Logger.Sugar().Debugw("say stopped", "input", text, "outcome", res.Outcome)
					if showBoard {
						printBoard(app)
					}
					return NewExitError(ExitFailed)
				}
			}
			if showBoard {
				printBoard(app)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showBoard, "board", false, "Print the board after the last command")
	cmd.Flags().BoolVar(&strict, "strict", false, "Stop and exit 1 on the first command that fails")
	return cmd
}

func succeeded(o engine.Outcome) bool {
	return o == engine.OutcomeApplied || o == engine.OutcomeAnswered
}
