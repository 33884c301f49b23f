// Package workflow holds the workflow tracker's data model.
//
// A [State] is an immutable value: every edit returns a new State that shares
// unchanged [Workflow] and [Step] pointers with its predecessor, so earlier
// snapshots stay valid for callers that keep them around.
//
// Key types:
//   - [State] - Ordered workflow collection plus the selected workflow id
//   - [Workflow] - Named unit of work with ordered steps and a derived status
//   - [Step] - Single unit of progress inside a workflow
//   - [Ref] - Weak reference to a workflow, used for highlighting
//
// Name lookups go through [Resolve], which implements the exact-then-substring
// matching policy shared by every command.
package workflow

import (
	"errors"
	"strings"
	"time"
)

// Sentinel errors for workflow edits and lookups.
var (
	// ErrNotFound indicates a workflow or step reference matched nothing.
	ErrNotFound = errors.New("no match found")

	// ErrAmbiguous indicates a reference matched more than one candidate.
	ErrAmbiguous = errors.New("reference is ambiguous")

	// ErrNothingToRun indicates a workflow has no steps or every step is done.
	ErrNothingToRun = errors.New("nothing to run")
)

// Status is the aggregate status of a workflow.
type Status string

// Workflow status values. A workflow's status is always derived from its steps
// via [DeriveStatus]; it is never set directly.
const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// DefaultOwner is assigned to workflows created without an explicit owner.
const DefaultOwner = "Unassigned"

// Workflow is a named, owned unit of work composed of ordered steps.
//
// Treat a Workflow as read-only once it is part of a [State]. Use the With*
// methods to derive modified copies.
type Workflow struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Owner       string    `yaml:"owner"`
	Status      Status    `yaml:"status"`
	Steps       []*Step   `yaml:"steps,omitempty"`
	Tags        []string  `yaml:"tags,omitempty"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

// Ref returns a weak reference to the workflow.
func (w *Workflow) Ref() *Ref {
	return &Ref{ID: w.ID, Name: w.Name}
}

// DoneCount returns the number of steps with status done.
func (w *Workflow) DoneCount() int {
	n := 0
	for _, s := range w.Steps {
		if s.Status == StepDone {
			n++
		}
	}
	return n
}

// Progress returns the completed fraction of steps as a percentage in [0, 100].
func (w *Workflow) Progress() int {
	if len(w.Steps) == 0 {
		return 0
	}
	return w.DoneCount() * 100 / len(w.Steps)
}

// NextRunnable returns the index of the first step that is not done.
// It returns [ErrNothingToRun] when the workflow has no steps or all of them
// are done.
func (w *Workflow) NextRunnable() (int, error) {
	for i, s := range w.Steps {
		if s.Status != StepDone {
			return i, nil
		}
	}
	return -1, ErrNothingToRun
}

// HasTag reports whether the workflow carries tag, ignoring case.
func (w *Workflow) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// DeriveStatus computes the aggregate status for a list of steps.
//
// The rules are:
//   - completed: at least one step and every step is done
//   - active: at least one step has left the pending state
//   - draft: otherwise (no steps, or all pending)
func DeriveStatus(steps []*Step) Status {
	if len(steps) == 0 {
		return StatusDraft
	}
	allDone := true
	touched := false
	for _, s := range steps {
		if s.Status != StepDone {
			allDone = false
		}
		if s.Status != StepPending {
			touched = true
		}
	}
	switch {
	case allDone:
		return StatusCompleted
	case touched:
		return StatusActive
	default:
		return StatusDraft
	}
}

// NewWorkflow returns a draft workflow with no steps or tags.
// An empty owner falls back to [DefaultOwner].
func NewWorkflow(id, name, owner string, now time.Time) *Workflow {
	if owner == "" {
		owner = DefaultOwner
	}
	return &Workflow{
		ID:        id,
		Name:      name,
		Owner:     owner,
		Status:    StatusDraft,
		UpdatedAt: now,
	}
}

// clone returns a shallow copy. Steps and Tags slices are shared until replaced.
func (w *Workflow) clone(now time.Time) *Workflow {
	c := *w
	c.UpdatedAt = now
	return &c
}

// WithStep returns a copy of w with step appended and the status recomputed.
func (w *Workflow) WithStep(step *Step, now time.Time) *Workflow {
	c := w.clone(now)
	c.Steps = make([]*Step, len(w.Steps), len(w.Steps)+1)
	copy(c.Steps, w.Steps)
	c.Steps = append(c.Steps, step)
	c.Status = DeriveStatus(c.Steps)
	return c
}

// WithStepStatus returns a copy of w where the step at index i has the given
// status. Only that step is rebuilt; all other step pointers are shared.
func (w *Workflow) WithStepStatus(i int, status StepStatus, now time.Time) *Workflow {
	c := w.clone(now)
	c.Steps = make([]*Step, len(w.Steps))
	copy(c.Steps, w.Steps)
	s := *w.Steps[i]
	s.Status = status
	c.Steps[i] = &s
	c.Status = DeriveStatus(c.Steps)
	return c
}

// WithTags returns a copy of w with the given tags added, skipping any the
// workflow already carries. The second result lists the tags actually added.
func (w *Workflow) WithTags(tags []string, now time.Time) (*Workflow, []string) {
	var added []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || w.HasTag(t) || containsFold(added, t) {
			continue
		}
		added = append(added, t)
	}
	if len(added) == 0 {
		return w, nil
	}
	c := w.clone(now)
	c.Tags = make([]string, 0, len(w.Tags)+len(added))
	c.Tags = append(c.Tags, w.Tags...)
	c.Tags = append(c.Tags, added...)
	return c, added
}

// WithoutTag returns a copy of w without tag. It returns [ErrNotFound] if the
// workflow does not carry the tag.
func (w *Workflow) WithoutTag(tag string, now time.Time) (*Workflow, error) {
	if !w.HasTag(tag) {
		return nil, ErrNotFound
	}
	c := w.clone(now)
	c.Tags = make([]string, 0, len(w.Tags)-1)
	for _, t := range w.Tags {
		if !strings.EqualFold(t, tag) {
			c.Tags = append(c.Tags, t)
		}
	}
	return c, nil
}

// WithOwner returns a copy of w owned by owner.
func (w *Workflow) WithOwner(owner string, now time.Time) *Workflow {
	c := w.clone(now)
	c.Owner = owner
	return c
}

// WithDescription returns a copy of w with the given description.
func (w *Workflow) WithDescription(desc string, now time.Time) *Workflow {
	c := w.clone(now)
	c.Description = desc
	return c
}

// Ref is a weak reference to a workflow. It is only meaningful while the
// referenced id is a member of the [State] it was taken from.
type Ref struct {
	ID   string
	Name string
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
