// Package engine interprets chat commands against a workflow board.
//
// The engine provides [Engine] whose [Engine.Interpret] takes the current
// [workflow.State] and a line of user text and returns the next state, a
// reply, and an optional highlighted workflow. It never mutates its input and
// never fails: not-found, ambiguous, nothing-to-run and unrecognized commands
// are ordinary replies that leave the state unchanged.
//
// Key concepts:
//   - Text is classified by [router.Router] into an intent
//   - Workflow and step references go through [workflow.Resolve]
//   - Edits are copy-on-write, so earlier states remain valid snapshots
//   - Clock and id generation are injectable for deterministic tests
package engine

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"flowbot/internal/router"
	"flowbot/internal/workflow"
)

// Outcome classifies what a single Interpret call did.
type Outcome string

// Interpret outcomes. Only [OutcomeApplied] changes the state.
const (
	// OutcomeApplied means the command changed the board.
	OutcomeApplied Outcome = "applied"

	// OutcomeAnswered means a read-only command (list, show, help) replied.
	OutcomeAnswered Outcome = "answered"

	// OutcomeUnchanged means the command was valid but the board already
	// reflected it (step already running, tags already present).
	OutcomeUnchanged Outcome = "unchanged"

	// OutcomeNotFound means a workflow, step or tag reference matched nothing.
	OutcomeNotFound Outcome = "not-found"

	// OutcomeAmbiguous means a reference matched several candidates.
	OutcomeAmbiguous Outcome = "ambiguous"

	// OutcomeNothingToRun means run was asked of an empty or finished workflow.
	OutcomeNothingToRun Outcome = "nothing-to-run"

	// OutcomeInvalid means the command was recognized but named a status
	// word the grammar does not know.
	OutcomeInvalid Outcome = "invalid"

	// OutcomeUnrecognized means the text matched no command.
	OutcomeUnrecognized Outcome = "unrecognized"
)

// Result is the output of one Interpret call.
type Result struct {
	// State is the next board state. It equals the input state unless
	// Outcome is [OutcomeApplied].
	State workflow.State

	// Reply is the human-readable response.
	Reply string

	// Highlighted is the workflow the caller should emphasize, if any.
	Highlighted *workflow.Ref

	// Intent is the classified command kind.
	Intent router.Kind

	// Outcome classifies what happened.
	Outcome Outcome
}

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a new process-unique identifier.
type IDGenerator func() string

// NewID returns a 21-character nanoid.
func NewID() string {
	return gonanoid.Must()
}

// Engine interprets chat commands.
//
// Engine holds configuration only; it keeps no board state between calls and
// is safe for concurrent use once configured. Use [NewEngine] to create an
// instance, then optionally [Engine.SetClock], [Engine.SetIDGenerator] or
// [Engine.SetDefaultOwner].
type Engine struct {
	router       *router.Router
	now          Clock
	newID        IDGenerator
	defaultOwner string
}

// NewEngine creates an Engine with the default grammar, the wall clock,
// nanoid identifiers and [workflow.DefaultOwner].
func NewEngine() *Engine {
	return &Engine{
		router:       router.NewRouter(),
		now:          time.Now,
		newID:        NewID,
		defaultOwner: workflow.DefaultOwner,
	}
}

// SetClock replaces the time source used for UpdatedAt timestamps.
func (e *Engine) SetClock(c Clock) {
	e.now = c
}

// SetIDGenerator replaces the generator used for new workflow and step ids.
func (e *Engine) SetIDGenerator(g IDGenerator) {
	e.newID = g
}

// SetDefaultOwner sets the owner given to newly created workflows.
// An empty owner restores [workflow.DefaultOwner].
func (e *Engine) SetDefaultOwner(owner string) {
	if owner == "" {
		owner = workflow.DefaultOwner
	}
	e.defaultOwner = owner
}

// Interpret applies one line of user text to state.
//
// The input state is never modified. When the command changes the board, the
// returned state shares every untouched workflow and step pointer with the
// input. Otherwise the input state itself is returned.
func (e *Engine) Interpret(state workflow.State, text string) Result {
	in := e.router.Parse(text)

	var res Result
	switch in.Kind {
	case router.KindList:
		res = e.list(state)
	case router.KindCreate:
		res = e.create(state, in)
	case router.KindAddStep:
		res = e.addStep(state, in)
	case router.KindRun:
		res = e.run(state, in)
	case router.KindStatusChange:
		res = e.changeStatus(state, in)
	case router.KindTag:
		res = e.tag(state, in)
	case router.KindUntag:
		res = e.untag(state, in)
	case router.KindAssign:
		res = e.assign(state, in)
	case router.KindDescribe:
		res = e.describe(state, in)
	case router.KindShow:
		res = e.show(state, in)
	case router.KindHelp:
		res = Result{State: state, Reply: helpMessage(), Outcome: OutcomeAnswered}
	default:
		res = e.unknown(state, in)
	}

	res.Intent = in.Kind
	return res
}

// defaultEngine backs the package-level [Interpret].
var defaultEngine = NewEngine()

// Interpret applies text to state using the default engine.
// See [Engine.Interpret].
func Interpret(state workflow.State, text string) Result {
	return defaultEngine.Interpret(state, text)
}
