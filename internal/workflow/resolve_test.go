package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWorkflow(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantKind   MatchKind
		wantID     string
		candidates int
	}{
		{name: "exact match wins over substring", query: "Launch Campaign", wantKind: MatchFound, wantID: "wf-1"},
		{name: "exact match ignores case", query: "  launch campaign qa ", wantKind: MatchFound, wantID: "wf-2"},
		{name: "unique substring", query: "onboard", wantKind: MatchFound, wantID: "wf-3"},
		{name: "ambiguous substring", query: "Launch", wantKind: MatchAmbiguous, candidates: 2},
		{name: "no match", query: "payroll", wantKind: MatchNotFound},
		{name: "empty query", query: "   ", wantKind: MatchNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ResolveWorkflow(sampleState(), tt.query)

			assert.Equal(t, tt.wantKind, m.Kind)
			switch tt.wantKind {
			case MatchFound:
				require.NotNil(t, m.Item)
				assert.Equal(t, tt.wantID, m.Item.ID)
				assert.NoError(t, m.Err())
			case MatchAmbiguous:
				assert.Nil(t, m.Item)
				assert.Len(t, m.Candidates, tt.candidates)
				assert.True(t, errors.Is(m.Err(), ErrAmbiguous))
			default:
				assert.Nil(t, m.Item)
				assert.Equal(t, -1, m.Index)
				assert.True(t, errors.Is(m.Err(), ErrNotFound))
			}
		})
	}
}

func TestResolve_DuplicateExactNamesAreAmbiguous(t *testing.T) {
	items := []string{"Alpha", "alpha", "Alphabet"}
	m := Resolve(items, "ALPHA", func(s string) string { return s })

	assert.Equal(t, MatchAmbiguous, m.Kind)
	assert.Equal(t, []string{"Alpha", "alpha"}, m.Candidates)
}

func TestResolveStep(t *testing.T) {
	w := &Workflow{Steps: []*Step{
		{ID: "s1", Title: "Prepare email sequence", Status: StepPending},
		{ID: "s2", Title: "Schedule social posts", Status: StepPending},
		{ID: "s3", Title: "Send email blast", Status: StepPending},
	}}

	tests := []struct {
		name     string
		ref      string
		wantKind MatchKind
		wantIdx  int
	}{
		{name: "by position", ref: "2", wantKind: MatchFound, wantIdx: 1},
		{name: "by hash position", ref: "#3", wantKind: MatchFound, wantIdx: 2},
		{name: "position out of range", ref: "4", wantKind: MatchNotFound, wantIdx: -1},
		{name: "zero position", ref: "0", wantKind: MatchNotFound, wantIdx: -1},
		{name: "by title fragment", ref: "social", wantKind: MatchFound, wantIdx: 1},
		{name: "ambiguous title fragment", ref: "email", wantKind: MatchAmbiguous, wantIdx: -1},
		{name: "exact title", ref: "send email blast", wantKind: MatchFound, wantIdx: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ResolveStep(w, tt.ref)
			assert.Equal(t, tt.wantKind, m.Kind)
			assert.Equal(t, tt.wantIdx, m.Index)
		})
	}
}

func TestNames(t *testing.T) {
	ws := sampleState().Workflows[:2]
	assert.Equal(t, `"Launch Campaign", "Launch Campaign QA"`, Names(ws))
}
