package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"flowbot/internal/engine"
	"flowbot/internal/session"
)

func newChatCommand(app *App) *cobra.Command {
	var noBoard bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat",
		Long: `Start an interactive chat with the workflow board.

Each line you type is one command. The board is reprinted after every
command that changes it.

Besides workflow commands, the chat understands:
  /board    print the board
  /suggest  print example commands
  exit      leave the chat (Ctrl-D works too)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, app, noBoard)
		},
	}

	cmd.Flags().BoolVar(&noBoard, "no-board", false, "Don't reprint the board after changes")
	return cmd
}

func runChat(cmd *cobra.Command, app *App, noBoard bool) error {
	p := app.Printer
	p.Transcript(app.Session.Transcript())
	p.Suggestions(app.Session.Suggestions())
	if !noBoard {
		printBoard(app)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		p.Prompt()
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit", "/exit", "/quit":
			return nil
		case "/board":
			printBoard(app)
			continue
		case "/suggest":
			p.Suggestions(app.Session.Suggestions())
			continue
		}

		if app.Config.Session.ThinkingDelay > 0 {
			p.Thinking()
		}
		res, err := app.Session.Send(cmd.Context(), line)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			p.Error(err)
			continue
		}

		p.Message(session.RoleAssistant, res.Reply)
		if !noBoard && res.Outcome == engine.OutcomeApplied {
			printBoard(app)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// printBoard renders the session board with the current highlight.
func printBoard(app *App) {
	var highlightID string
	if hl := app.Session.Highlighted(); hl != nil {
		highlightID = hl.ID
	}
	app.Printer.Board(app.Session.State(), highlightID, app.Now())
}
