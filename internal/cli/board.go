package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"flowbot/internal/seed"
)

func newBoardCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the seeded board",
		Long: `Print the board a chat would start from.

--format text renders workflow cards; --format yaml prints a board file
that can be edited and loaded back with seed.path or FLOWBOT_SEED_PATH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text":
				printBoard(app)
				return nil
			case "yaml":
				return seed.Encode(cmd.OutOrStdout(), app.Session.State())
			default:
				return fmt.Errorf("unknown format %q: want text or yaml", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, yaml)")
	return cmd
}
