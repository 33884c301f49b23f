// Package seed loads the initial workflow board for a chat session.
//
// A board file is YAML with a top-level workflows list:
//
//	workflows:
//	  - name: Product Release QA
//	    owner: Quality Team
//	    tags: [release, qa]
//	    steps:
//	      - title: Run regression suite
//	        status: done
//
// Missing ids are generated, missing owners default to
// [workflow.DefaultOwner], and workflow statuses are always recomputed from
// the steps, so hand-written files cannot break the status invariant.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"flowbot/internal/workflow"
)

// EnvSeedPath overrides every other board file location when set.
const EnvSeedPath = "FLOWBOT_SEED_PATH"

//go:embed demo.yaml
var demoBoard []byte

// ResolvePath returns the board file to load.
//
// Resolution order:
//  1. FLOWBOT_SEED_PATH environment variable (used as-is if set)
//  2. Explicit path parameter (if non-empty)
//
// An empty result means no file: the caller should use the demo board or an
// empty state.
func ResolvePath(path string) string {
	if envPath := os.Getenv(EnvSeedPath); envPath != "" {
		return envPath
	}
	return path
}

// Reader reads boards from YAML.
//
// Use [NewReader] to create one. The clock and id generator fill in
// timestamps and ids that the file leaves out.
type Reader struct {
	now   func() time.Time
	newID func() string
}

// NewReader creates a [Reader] that stamps missing fields with now and newID.
func NewReader(now func() time.Time, newID func() string) *Reader {
	return &Reader{now: now, newID: newID}
}

// ReadFile reads and normalizes the board file at path.
func (r *Reader) ReadFile(path string) (workflow.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return workflow.State{}, fmt.Errorf("failed to read board: %w", err)
	}
	return r.Parse(data)
}

// Demo returns the built-in demo board.
func (r *Reader) Demo() (workflow.State, error) {
	return r.Parse(demoBoard)
}

// Parse decodes and normalizes a YAML board.
//
// Returns an error if the YAML is malformed, a workflow or step has no name,
// a step status is unknown, or the resulting state fails
// [workflow.State.Validate].
func (r *Reader) Parse(data []byte) (workflow.State, error) {
	var state workflow.State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return workflow.State{}, fmt.Errorf("failed to parse board: %w", err)
	}

	now := r.now()
	for i, w := range state.Workflows {
		if w == nil || w.Name == "" {
			return workflow.State{}, fmt.Errorf("workflow %d: name is required", i+1)
		}
		if w.ID == "" {
			w.ID = r.newID()
		}
		if w.Owner == "" {
			w.Owner = workflow.DefaultOwner
		}
		if w.UpdatedAt.IsZero() {
			w.UpdatedAt = now
		}
		for j, s := range w.Steps {
			if s == nil || s.Title == "" {
				return workflow.State{}, fmt.Errorf("workflow %q step %d: title is required", w.Name, j+1)
			}
			if s.ID == "" {
				s.ID = r.newID()
			}
			if s.Status == "" {
				s.Status = workflow.StepPending
			}
			if !s.Status.IsValid() {
				return workflow.State{}, fmt.Errorf("workflow %q step %q: invalid status: %s", w.Name, s.Title, s.Status)
			}
		}
		w.Status = workflow.DeriveStatus(w.Steps)
	}

	if err := state.Validate(); err != nil {
		return workflow.State{}, fmt.Errorf("invalid board: %w", err)
	}
	return state, nil
}
