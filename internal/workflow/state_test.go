package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() State {
	return State{
		Workflows: []*Workflow{
			{ID: "wf-1", Name: "Launch Campaign", Owner: "Ops", Status: StatusDraft},
			{ID: "wf-2", Name: "Launch Campaign QA", Owner: "QA", Status: StatusDraft},
			{ID: "wf-3", Name: "Customer Onboarding", Owner: "CS", Status: StatusDraft},
		},
	}
}

func TestState_AppendAndReplace(t *testing.T) {
	s := sampleState()

	added := NewWorkflow("wf-4", "Hiring", "", testNow)
	s2 := s.Append(added)
	require.Len(t, s2.Workflows, 4)
	assert.Len(t, s.Workflows, 3, "input state must not change")
	assert.Equal(t, "wf-4", s2.SelectedID)
	for i := range s.Workflows {
		assert.Same(t, s.Workflows[i], s2.Workflows[i])
	}

	changed := s2.Workflows[1].WithOwner("Eve", testNow)
	s3 := s2.Replace(changed)
	assert.Same(t, changed, s3.Workflows[1])
	assert.Same(t, s2.Workflows[0], s3.Workflows[0])
	assert.Same(t, s2.Workflows[2], s3.Workflows[2])
	assert.Equal(t, "QA", s2.Workflows[1].Owner)
	assert.Equal(t, "wf-2", s3.SelectedID)
}

func TestState_ReplaceUnknownID(t *testing.T) {
	s := sampleState()
	got := s.Replace(&Workflow{ID: "missing"})
	assert.Equal(t, s, got)
}

func TestState_Selected(t *testing.T) {
	s := sampleState()
	assert.Nil(t, s.Selected())

	s.SelectedID = "wf-3"
	require.NotNil(t, s.Selected())
	assert.Equal(t, "Customer Onboarding", s.Selected().Name)

	s.SelectedID = "gone"
	assert.Nil(t, s.Selected())
}

func TestState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		wantErr string
	}{
		{name: "empty state is valid", state: State{}},
		{name: "sample is valid", state: sampleState()},
		{
			name:    "dangling selection",
			state:   State{Workflows: sampleState().Workflows, SelectedID: "nope"},
			wantErr: "not on the board",
		},
		{
			name: "duplicate workflow id",
			state: State{Workflows: []*Workflow{
				{ID: "x", Name: "A", Status: StatusDraft},
				{ID: "x", Name: "B", Status: StatusDraft},
			}},
			wantErr: "duplicate workflow id",
		},
		{
			name: "status out of sync with steps",
			state: State{Workflows: []*Workflow{
				{ID: "x", Name: "A", Status: StatusDraft, Steps: stepsWith(StepDone)},
			}},
			wantErr: "does not match steps",
		},
		{
			name: "duplicate step id",
			state: State{Workflows: []*Workflow{
				{ID: "x", Name: "A", Status: StatusDraft, Steps: []*Step{
					{ID: "s", Status: StepPending}, {ID: "s", Status: StepPending},
				}},
			}},
			wantErr: "duplicate step id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
