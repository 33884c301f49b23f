package workflow

import "strings"

// StepStatus is the status of a single step.
type StepStatus string

// Step status values. StepPending is the initial state of every new step.
const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in-progress"
	StepBlocked    StepStatus = "blocked"
	StepDone       StepStatus = "done"
)

// IsValid reports whether s is one of the known step statuses.
func (s StepStatus) IsValid() bool {
	switch s {
	case StepPending, StepInProgress, StepBlocked, StepDone:
		return true
	}
	return false
}

// Label returns the status in human-readable form ("in progress").
func (s StepStatus) Label() string {
	return strings.ReplaceAll(string(s), "-", " ")
}

// ParseStepStatus maps user-facing words to a [StepStatus].
//
// Accepted spellings include the canonical values plus common variants such as
// "in progress", "running", "complete" and "todo". Matching ignores case.
func ParseStepStatus(word string) (StepStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case "pending", "todo", "to do", "open", "not started":
		return StepPending, true
	case "in-progress", "in progress", "inprogress", "running", "started", "active":
		return StepInProgress, true
	case "blocked", "stuck", "on hold":
		return StepBlocked, true
	case "done", "complete", "completed", "finished":
		return StepDone, true
	}
	return "", false
}

// Step is an individual unit of progress within a [Workflow].
//
// Steps have no lifecycle of their own; they are created and replaced only
// through their parent workflow.
type Step struct {
	ID     string     `yaml:"id"`
	Title  string     `yaml:"title"`
	Owner  string     `yaml:"owner,omitempty"`
	Status StepStatus `yaml:"status"`
}

// NewStep returns a pending step.
func NewStep(id, title, owner string) *Step {
	return &Step{
		ID:     id,
		Title:  title,
		Owner:  owner,
		Status: StepPending,
	}
}
