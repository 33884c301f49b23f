package router

import (
	"flowbot/internal/workflow"
)

// Kind is the classified meaning of a chat command.
type Kind string

// Intent kinds recognized by the default grammar.
const (
	KindList         Kind = "list"
	KindCreate       Kind = "create"
	KindAddStep      Kind = "add-step"
	KindRun          Kind = "run"
	KindStatusChange Kind = "status-change"
	KindTag          Kind = "tag"
	KindUntag        Kind = "untag"
	KindAssign       Kind = "assign"
	KindDescribe     Kind = "describe"
	KindShow         Kind = "show"
	KindHelp         Kind = "help"
	KindUnknown      Kind = "unknown"
)

// Mutates reports whether intents of this kind can change the board.
func (k Kind) Mutates() bool {
	switch k {
	case KindCreate, KindAddStep, KindRun, KindStatusChange, KindTag, KindUntag, KindAssign, KindDescribe:
		return true
	}
	return false
}

// Intent is a parsed chat command.
//
// Only the fields relevant to Kind are populated. Reference fields hold the
// user's text as typed; resolving them against the board is the engine's job.
type Intent struct {
	// Kind is the command classification.
	Kind Kind

	// Raw is the normalized input text.
	Raw string

	// Name is the new workflow name for [KindCreate].
	Name string

	// Workflow is the workflow reference for every workflow-scoped command.
	Workflow string

	// Step is the new step title for [KindAddStep], or the step reference
	// (1-based position or title fragment) for [KindStatusChange].
	Step string

	// Targets lists every way a [KindStatusChange] reference splits into a
	// step and a workflow, in input order. Step and Workflow hold the first.
	Targets []Target

	// Owner is the step owner for [KindAddStep] (from a trailing "(@owner)")
	// or the new workflow owner for [KindAssign].
	Owner string

	// Status is the target step status for [KindStatusChange]. It is empty
	// when the user named a status the grammar does not know; Text then
	// holds the unrecognized word.
	Status workflow.StepStatus

	// Tags are the tags to add ([KindTag]) or remove ([KindUntag]).
	Tags []string

	// Text is the free-text payload: the description for [KindDescribe] or
	// the status word for [KindStatusChange].
	Text string
}

// Target is one candidate reading of "<step> of <workflow>".
type Target struct {
	Step     string
	Workflow string
}
