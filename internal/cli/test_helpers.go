package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"flowbot/internal/config"
	"flowbot/internal/engine"
	"flowbot/internal/output"
	"flowbot/internal/session"
	"flowbot/internal/workflow"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// newTestApp creates an App over state with no thinking delay, sequential
// ids, a fixed clock and a printer writing to the returned buffer.
func newTestApp(t *testing.T, state workflow.State) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Session.ThinkingDelay = 0

	clock := func() time.Time { return testNow }
	n := 0
	eng := engine.NewEngine()
	eng.SetClock(clock)
	eng.SetIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})

	sess := session.NewSession(eng, state, cfg.Session, zap.NewNop())
	sess.SetClock(clock)

	buf := &bytes.Buffer{}
	return &App{
		Config:  cfg,
		Session: sess,
		Printer: output.NewPrinterWithWriter(buf),
		Logger:  zap.NewNop(),
		Now:     clock,
	}, buf
}

// demoState loads the built-in demo board with deterministic ids.
func demoState(t *testing.T) workflow.State {
	t.Helper()
	cfg := config.DefaultConfig()
	n := 0
	state, err := LoadBoard(cfg, func() time.Time { return testNow }, func() string {
		n++
		return fmt.Sprintf("seed-%d", n)
	})
	if err != nil {
		t.Fatalf("failed to load demo board: %v", err)
	}
	return state
}

// writeBoardFile writes a board YAML file into tmpDir and returns its path.
func writeBoardFile(t *testing.T, tmpDir string, content string) string {
	t.Helper()

	boardDir := filepath.Join(tmpDir, "boards")
	if err := os.MkdirAll(boardDir, 0755); err != nil {
		t.Fatalf("failed to create board directory: %v", err)
	}

	boardPath := filepath.Join(boardDir, "board.yaml")
	if err := os.WriteFile(boardPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write board file: %v", err)
	}
	return boardPath
}
