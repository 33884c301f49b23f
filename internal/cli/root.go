// Package cli provides the command-line interface for flowbot.
//
// The CLI is built on Cobra. Every command shares an [App] holding the
// configuration, the seeded chat [session.Session] and the output printer.
//
// Key types:
//   - [App] - dependency container passed to every command
//   - [ExitError] - non-zero exit codes without calling os.Exit in commands
//   - [ExecuteResult] - exit code and error returned by [RunWithConfig]
//
// Commands:
//   - chat: interactive chat loop over stdin
//   - say: run one or more commands against the seeded board
//   - board: print the seeded board as cards or YAML
//   - suggest: print example commands
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"flowbot/internal/config"
	"flowbot/internal/engine"
	"flowbot/internal/output"
	"flowbot/internal/seed"
	"flowbot/internal/session"
	"flowbot/internal/workflow"
)

// App holds the dependencies shared by every command.
type App struct {
	Config  *config.Config
	Session *session.Session
	Printer *output.Printer
	Logger  *zap.Logger

	// Now anchors relative times on the board. Defaults to time.Now.
	Now func() time.Time
}

// NewApp wires an [App] from cfg: it builds the logger, loads the seed
// board and starts a session over it.
func NewApp(cfg *config.Config) (*App, error) {
	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	state, err := LoadBoard(cfg, time.Now, engine.NewID)
	if err != nil {
		return nil, err
	}

	eng := engine.NewEngine()
	eng.SetDefaultOwner(cfg.Owner.Default)

	printer := output.NewPrinter()
	printer.SetWidth(cfg.Output.Width)
	printer.SetColor(cfg.Output.Color)

	return &App{
		Config:  cfg,
		Session: session.NewSession(eng, state, cfg.Session, logger),
		Printer: printer,
		Logger:  logger,
		Now:     time.Now,
	}, nil
}

// LoadBoard returns the initial board selected by cfg.Seed.
//
// A configured path (or FLOWBOT_SEED_PATH) wins; otherwise the demo board is
// used when Builtin is set, and an empty board when it is not.
func LoadBoard(cfg *config.Config, now func() time.Time, newID func() string) (workflow.State, error) {
	reader := seed.NewReader(now, newID)
	if path := seed.ResolvePath(cfg.Seed.Path); path != "" {
		return reader.ReadFile(path)
	}
	if cfg.Seed.Builtin {
		return reader.Demo()
	}
	return workflow.State{}, nil
}

// NewLogger builds a zap logger from cfg. Logs go to stderr so they never
// interleave with chat output on stdout.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
		zc.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("invalid log format %q: want console or json", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flowbot",
		Short: "Chat with a workflow board",
		Long: `flowbot is a conversational front-end for a small workflow tracker.

Type commands such as "create workflow Launch Campaign" or
"add step to Launch Campaign: Prepare email sequence" and flowbot
updates the board and replies.

The board starts from the built-in demo unless a seed file is configured
(seed.path in the config file, or FLOWBOT_SEED_PATH).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Bare "flowbot" starts a chat.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, app, false)
		},
	}

	rootCmd.AddCommand(
		newChatCommand(app),
		newSayCommand(app),
		newBoardCommand(app),
		newSuggestCommand(app),
	)

	return rootCmd
}

// ExecuteResult is the outcome of a CLI run.
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// RunWithConfig builds the app from cfg and runs the root command with
// args. It never calls os.Exit.
func RunWithConfig(cfg *config.Config, args []string) ExecuteResult {
	app, err := NewApp(cfg)
	if err != nil {
		return ExecuteResult{ExitCode: ExitFailed, Err: err}
	}
	defer func() { _ = app.Logger.Sync() }()

	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		return ExecuteResult{ExitCode: ExitFailed, Err: err}
	}
	return ExecuteResult{ExitCode: ExitOK}
}

// Execute loads the configuration, runs the CLI with the process arguments
// and exits with the resulting code.
func Execute() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	result := RunWithConfig(cfg, os.Args[1:])
	if result.ExitCode != ExitOK {
		if _, ok := IsExitError(result.Err); !ok && result.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", result.Err)
		}
		os.Exit(result.ExitCode)
	}
}
