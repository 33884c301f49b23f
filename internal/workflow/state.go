package workflow

import "fmt"

// State is the ordered collection of all workflows plus an optional selected
// workflow id.
//
// State is threaded explicitly between interpreter calls: the caller holds it
// and passes it back in on every turn. The zero value is an empty board.
type State struct {
	// Workflows are kept in creation order.
	Workflows []*Workflow `yaml:"workflows"`

	// SelectedID, when non-empty, names a member of Workflows. It is the
	// default highlight target.
	SelectedID string `yaml:"selected_id,omitempty"`
}

// Find returns the workflow with the given id and its index, or (nil, -1).
func (s State) Find(id string) (*Workflow, int) {
	for i, w := range s.Workflows {
		if w.ID == id {
			return w, i
		}
	}
	return nil, -1
}

// Selected returns the selected workflow, or nil if none is selected or the
// selection no longer resolves.
func (s State) Selected() *Workflow {
	if s.SelectedID == "" {
		return nil
	}
	w, _ := s.Find(s.SelectedID)
	return w
}

// Append returns a new State with w appended and selected.
func (s State) Append(w *Workflow) State {
	workflows := make([]*Workflow, len(s.Workflows), len(s.Workflows)+1)
	copy(workflows, s.Workflows)
	return State{
		Workflows:  append(workflows, w),
		SelectedID: w.ID,
	}
}

// Replace returns a new State where the workflow with w's id is replaced by w
// and selected. Every other workflow pointer is reused. If no workflow has
// that id, s is returned unchanged.
func (s State) Replace(w *Workflow) State {
	_, idx := s.Find(w.ID)
	if idx < 0 {
		return s
	}
	workflows := make([]*Workflow, len(s.Workflows))
	copy(workflows, s.Workflows)
	workflows[idx] = w
	return State{
		Workflows:  workflows,
		SelectedID: w.ID,
	}
}

// Validate checks the structural invariants of the state: unique workflow ids,
// unique step ids per workflow, derived statuses, and a resolvable selection.
func (s State) Validate() error {
	seen := make(map[string]bool, len(s.Workflows))
	for _, w := range s.Workflows {
		if w.ID == "" {
			return fmt.Errorf("workflow %q has no id", w.Name)
		}
		if seen[w.ID] {
			return fmt.Errorf("duplicate workflow id: %s", w.ID)
		}
		seen[w.ID] = true

		steps := make(map[string]bool, len(w.Steps))
		for _, st := range w.Steps {
			if steps[st.ID] {
				return fmt.Errorf("workflow %q: duplicate step id: %s", w.Name, st.ID)
			}
			steps[st.ID] = true
			if !st.Status.IsValid() {
				return fmt.Errorf("workflow %q: step %q has invalid status %q", w.Name, st.Title, st.Status)
			}
		}

		if want := DeriveStatus(w.Steps); w.Status != want {
			return fmt.Errorf("workflow %q: status %q does not match steps (want %q)", w.Name, w.Status, want)
		}
	}
	if s.SelectedID != "" && !seen[s.SelectedID] {
		return fmt.Errorf("selected workflow %s is not on the board", s.SelectedID)
	}
	return nil
}
