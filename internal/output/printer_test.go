package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"flowbot/internal/session"
	"flowbot/internal/workflow"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleState() workflow.State {
	release := &workflow.Workflow{
		ID:     "wf-release",
		Name:   "Product Release QA",
		Owner:  "Quality Team",
		Status: workflow.StatusActive,
		Steps: []*workflow.Step{
			{ID: "s1", Title: "Run regression suite", Status: workflow.StepDone},
			{ID: "s2", Title: "Verify staging deploy", Owner: "Dana", Status: workflow.StepInProgress},
			{ID: "s3", Title: "Sign off release", Status: workflow.StepPending},
		},
		Tags:      []string{"release", "qa"},
		UpdatedAt: now.Add(-5 * time.Minute),
	}
	launch := &workflow.Workflow{
		ID:          "wf-launch",
		Name:        "Launch Campaign",
		Description: "Spring product push",
		Owner:       workflow.DefaultOwner,
		Status:      workflow.StatusDraft,
		UpdatedAt:   now,
	}
	return workflow.State{Workflows: []*workflow.Workflow{release, launch}, SelectedID: "wf-launch"}
}

func TestRenderBoard_Cards(t *testing.T) {
	p := NewPrinterWithWriter(&bytes.Buffer{})

	out := p.RenderBoard(sampleState(), "", now)

	for _, want := range []string{
		"Workflows",
		"2 total",
		"Product Release QA",
		"ACTIVE",
		"Owner: Quality Team",
		"Updated 5 minutes ago",
		"33%",
		"1. Run regression suite",
		"2. Verify staging deploy (Dana)",
		"in progress",
		"pending",
		"#release #qa",
		"Launch Campaign",
		"DRAFT",
		"Spring product push",
		"0%",
		"No steps yet. Use the chat to add your first one.",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderBoard_Empty(t *testing.T) {
	p := NewPrinterWithWriter(&bytes.Buffer{})

	out := p.RenderBoard(workflow.State{}, "", now)

	assert.Contains(t, out, "0 total")
	assert.Contains(t, out, "No workflows yet")
}

func TestRenderBoard_HighlightBorder(t *testing.T) {
	p := NewPrinterWithWriter(&bytes.Buffer{})
	state := workflow.State{Workflows: sampleState().Workflows[:1]}

	plain := p.RenderBoard(state, "", now)
	lit := p.RenderBoard(state, "wf-release", now)

	assert.Contains(t, plain, "╭")
	assert.NotContains(t, plain, "┏")
	assert.Contains(t, lit, "┏")
	assert.NotContains(t, lit, "╭")
}

func TestRenderBoard_CompletedProgress(t *testing.T) {
	p := NewPrinterWithWriter(&bytes.Buffer{})
	w := &workflow.Workflow{
		ID:        "wf",
		Name:      "Done Deal",
		Owner:     "Ops",
		Status:    workflow.StatusCompleted,
		Steps:     []*workflow.Step{{ID: "s", Title: "Ship", Status: workflow.StepDone}},
		UpdatedAt: now,
	}

	out := p.RenderBoard(workflow.State{Workflows: []*workflow.Workflow{w}}, "", now)

	assert.Contains(t, out, "COMPLETED")
	assert.Contains(t, out, "100%")
	assert.NotContains(t, out, "░")
}

func TestPrinter_Message(t *testing.T) {
	tests := []struct {
		name  string
		role  session.Role
		label string
	}{
		{"user", session.RoleUser, "You"},
		{"assistant", session.RoleAssistant, "Flowbot"},
		{"system", session.RoleSystem, "Flowbot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinterWithWriter(&buf)

			p.Message(tt.role, "list workflows")

			out := buf.String()
			assert.True(t, strings.HasPrefix(out, tt.label), "got %q", out)
			assert.Contains(t, out, "list workflows")
		})
	}
}

func TestPrinter_MessageWraps(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(&buf)
	p.SetWidth(24)

	p.Message(session.RoleAssistant, "Added step \"Prepare email sequence\" to \"Launch Campaign\" as step 1.")

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 24, "line %q", line)
	}
}

func TestPrinter_Transcript(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(&buf)

	p.Transcript([]session.Message{
		{ID: "m1", Role: session.RoleSystem, Content: "Hello there"},
		{ID: "m2", Role: session.RoleUser, Content: "list workflows"},
		{ID: "m3", Role: session.RoleAssistant, Content: "The board is empty."},
	})

	out := buf.String()
	first := strings.Index(out, "Hello there")
	second := strings.Index(out, "list workflows")
	third := strings.Index(out, "The board is empty.")
	assert.True(t, first >= 0 && first < second && second < third, "messages out of order:\n%s", out)
	assert.Contains(t, out, "You\n")
}

func TestPrinter_Suggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(&buf)

	p.Suggestions([]string{"list workflows", "create workflow Launch Campaign"})

	out := buf.String()
	assert.Contains(t, out, "Try one of these:")
	assert.Contains(t, out, "  list workflows\n")
	assert.Contains(t, out, "  create workflow Launch Campaign\n")
}

func TestPrinter_ErrorAndThinking(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(&buf)
	p.SetColor(false)

	p.Thinking()
	p.Error(errors.New("boom"))

	assert.Equal(t, "Thinking...\nError: boom\n", buf.String())
}

func TestPrinter_SetWidthIgnoresNonPositive(t *testing.T) {
	p := NewPrinterWithWriter(&bytes.Buffer{})

	p.SetWidth(0)
	assert.Equal(t, 80, p.width)

	p.SetWidth(-3)
	assert.Equal(t, 80, p.width)

	p.SetWidth(100)
	assert.Equal(t, 100, p.width)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 10), progressBar(0, 10))
	assert.Equal(t, strings.Repeat("█", 5)+strings.Repeat("░", 5), progressBar(50, 10))
	assert.Equal(t, strings.Repeat("█", 10), progressBar(100, 4))
}
