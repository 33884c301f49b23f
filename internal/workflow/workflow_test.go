package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func stepsWith(statuses ...StepStatus) []*Step {
	steps := make([]*Step, len(statuses))
	for i, s := range statuses {
		steps[i] = &Step{ID: string(rune('a' + i)), Title: "step", Status: s}
	}
	return steps
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		steps []*Step
		want  Status
	}{
		{name: "no steps is draft", steps: nil, want: StatusDraft},
		{name: "all pending is draft", steps: stepsWith(StepPending, StepPending), want: StatusDraft},
		{name: "one in progress is active", steps: stepsWith(StepPending, StepInProgress), want: StatusActive},
		{name: "blocked counts as touched", steps: stepsWith(StepBlocked), want: StatusActive},
		{name: "some done is active", steps: stepsWith(StepDone, StepPending), want: StatusActive},
		{name: "all done is completed", steps: stepsWith(StepDone, StepDone), want: StatusCompleted},
		{name: "single done is completed", steps: stepsWith(StepDone), want: StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.steps))
		})
	}
}

func TestNewWorkflow_DefaultsOwner(t *testing.T) {
	w := NewWorkflow("wf-1", "Launch", "", testNow)

	assert.Equal(t, DefaultOwner, w.Owner)
	assert.Equal(t, StatusDraft, w.Status)
	assert.Empty(t, w.Steps)
	assert.Empty(t, w.Tags)
	assert.Equal(t, testNow, w.UpdatedAt)
}

func TestWorkflow_WithStep(t *testing.T) {
	orig := NewWorkflow("wf-1", "Launch", "Ops", testNow)
	later := testNow.Add(time.Minute)

	got := orig.WithStep(NewStep("s-1", "Draft copy", ""), later)

	require.Len(t, got.Steps, 1)
	assert.Empty(t, orig.Steps, "original must not change")
	assert.Equal(t, StepPending, got.Steps[0].Status)
	assert.Equal(t, StatusDraft, got.Status)
	assert.Equal(t, later, got.UpdatedAt)
	assert.Equal(t, testNow, orig.UpdatedAt)
}

func TestWorkflow_WithStepStatus_SharesUntouchedSteps(t *testing.T) {
	orig := &Workflow{ID: "wf-1", Name: "Launch", Steps: stepsWith(StepPending, StepPending)}

	got := orig.WithStepStatus(1, StepDone, testNow)

	assert.Same(t, orig.Steps[0], got.Steps[0])
	assert.NotSame(t, orig.Steps[1], got.Steps[1])
	assert.Equal(t, StepPending, orig.Steps[1].Status)
	assert.Equal(t, StepDone, got.Steps[1].Status)
	assert.Equal(t, StatusActive, got.Status)
}

func TestWorkflow_Tags(t *testing.T) {
	w := NewWorkflow("wf-1", "Launch", "", testNow)

	w2, added := w.WithTags([]string{"marketing", "Q3", "Marketing", " "}, testNow)
	assert.Equal(t, []string{"marketing", "Q3"}, added)
	assert.Equal(t, []string{"marketing", "Q3"}, w2.Tags)
	assert.Empty(t, w.Tags)

	w3, added := w2.WithTags([]string{"q3"}, testNow)
	assert.Nil(t, added)
	assert.Same(t, w2, w3, "no-op tag returns the same workflow")

	w4, err := w2.WithoutTag("MARKETING", testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q3"}, w4.Tags)

	_, err = w4.WithoutTag("marketing", testNow)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestWorkflow_NextRunnableAndProgress(t *testing.T) {
	w := &Workflow{Steps: stepsWith(StepDone, StepBlocked, StepPending)}
	idx, err := w.NextRunnable()
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 33, w.Progress())
	assert.Equal(t, 1, w.DoneCount())

	done := &Workflow{Steps: stepsWith(StepDone)}
	_, err = done.NextRunnable()
	assert.True(t, errors.Is(err, ErrNothingToRun))
	_, err = (&Workflow{}).NextRunnable()
	assert.True(t, errors.Is(err, ErrNothingToRun))
	assert.Equal(t, 100, done.Progress())

	assert.Equal(t, 0, (&Workflow{}).Progress())
}

func TestParseStepStatus(t *testing.T) {
	tests := []struct {
		word   string
		want   StepStatus
		wantOK bool
	}{
		{"done", StepDone, true},
		{"Complete", StepDone, true},
		{"in progress", StepInProgress, true},
		{"IN-PROGRESS", StepInProgress, true},
		{"blocked", StepBlocked, true},
		{"todo", StepPending, true},
		{"banana", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := ParseStepStatus(tt.word)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStepStatus_Label(t *testing.T) {
	assert.Equal(t, "in progress", StepInProgress.Label())
	assert.Equal(t, "done", StepDone.Label())
}
