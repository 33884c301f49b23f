package engine

import (
	"errors"
	"fmt"
	"strings"

	"flowbot/internal/router"
	"flowbot/internal/workflow"
)

// unchanged builds a result that leaves state as it was.
func unchanged(state workflow.State, outcome Outcome, reply string, hl *workflow.Ref) Result {
	return Result{State: state, Reply: reply, Highlighted: hl, Outcome: outcome}
}

// applied builds a result for a successful edit of w.
func applied(next workflow.State, w *workflow.Workflow, reply string) Result {
	return Result{State: next, Reply: reply, Highlighted: w.Ref(), Outcome: OutcomeApplied}
}

// lookup resolves a workflow reference. When the reference does not resolve
// to a single workflow, ok is false and res holds the reply for the caller
// to return as is.
func lookup(state workflow.State, ref string) (w *workflow.Workflow, res Result, ok bool) {
	m := workflow.ResolveWorkflow(state, ref)
	err := m.Err()
	if err == nil {
		return m.Item, Result{}, true
	}
	if errors.Is(err, workflow.ErrAmbiguous) {
		reply := fmt.Sprintf("%q matches several workflows: %s. Which one did you mean?",
			ref, workflow.Names(m.Candidates))
		return nil, unchanged(state, OutcomeAmbiguous, reply, nil), false
	}

	reply := fmt.Sprintf("I couldn't find a workflow matching %q.", ref)
	if len(state.Workflows) > 0 {
		reply += ` Try "list workflows" to see what's on the board.`
	} else {
		reply += ` The board is empty; start with "create workflow <name>".`
	}
	return nil, unchanged(state, OutcomeNotFound, reply, nil), false
}

// pickTarget chooses how a status change reference splits into step and
// workflow. A split where both resolve wins, then one where the workflow
// resolves, then the first split.
func pickTarget(state workflow.State, in router.Intent) router.Target {
	if len(in.Targets) == 0 {
		return router.Target{Step: in.Step, Workflow: in.Workflow}
	}

	fallback := in.Targets[0]
	found := false
	for _, t := range in.Targets {
		wm := workflow.ResolveWorkflow(state, t.Workflow)
		if wm.Err() != nil {
			continue
		}
		if workflow.ResolveStep(wm.Item, t.Step).Err() == nil {
			return t
		}
		if !found {
			fallback, found = t, true
		}
	}
	return fallback
}

func (e *Engine) list(state workflow.State) Result {
	return unchanged(state, OutcomeAnswered, listMessage(state), nil)
}

func (e *Engine) create(state workflow.State, in router.Intent) Result {
	w := workflow.NewWorkflow(e.newID(), in.Name, e.defaultOwner, e.now())
	reply := fmt.Sprintf("Created workflow %q. Add steps with \"add step to %s: <step title>\".", w.Name, w.Name)
	return applied(state.Append(w), w, reply)
}

func (e *Engine) addStep(state workflow.State, in router.Intent) Result {
	w, res, ok := lookup(state, in.Workflow)
	if !ok {
		return res
	}

	updated := w.WithStep(workflow.NewStep(e.newID(), in.Step, in.Owner), e.now())
	reply := fmt.Sprintf("Added step %q to %q as step %d.", in.Step, w.Name, len(updated.Steps))
	if in.Owner != "" {
		reply += fmt.Sprintf(" Owner: %s.", in.Owner)
	}
	return applied(state.Replace(updated), updated, reply)
}

func (e *Engine) run(state workflow.State, in router.Intent) Result {
	w, res, ok := lookup(state, in.Workflow)
	if !ok {
		return res
	}

	idx, err := w.NextRunnable()
	if errors.Is(err, workflow.ErrNothingToRun) {
		reply := fmt.Sprintf("%q is already complete. Nothing left to run.", w.Name)
		if len(w.Steps) == 0 {
			reply = fmt.Sprintf("%q has no steps to run yet. Add one with \"add step to %s: <step title>\".", w.Name, w.Name)
		}
		return unchanged(state, OutcomeNothingToRun, reply, w.Ref())
	}

	step := w.Steps[idx]
	if step.Status == workflow.StepInProgress {
		reply := fmt.Sprintf("Step %d %q of %q is already in progress.", idx+1, step.Title, w.Name)
		return unchanged(state, OutcomeUnchanged, reply, w.Ref())
	}

	updated := w.WithStepStatus(idx, workflow.StepInProgress, e.now())
	reply := fmt.Sprintf("Running %q: step %d %q is now in progress.", w.Name, idx+1, step.Title)
	if step.Status == workflow.StepBlocked {
		reply += " It was blocked before."
	}
	return applied(state.Replace(updated), updated, reply)
}

func (e *Engine) changeStatus(state workflow.State, in router.Intent) Result {
	if in.Status == "" {
		reply := fmt.Sprintf("I don't know the status %q. Use pending, in progress, blocked or done.", in.Text)
		return unchanged(state, OutcomeInvalid, reply, nil)
	}

	target := pickTarget(state, in)
	w, res, ok := lookup(state, target.Workflow)
	if !ok {
		return res
	}

	m := workflow.ResolveStep(w, target.Step)
	if err := m.Err(); errors.Is(err, workflow.ErrAmbiguous) {
		titles := make([]string, len(m.Candidates))
		for i, s := range m.Candidates {
			titles[i] = fmt.Sprintf("%q", s.Title)
		}
		reply := fmt.Sprintf("%q matches several steps in %q: %s. Use the step number instead.",
			target.Step, w.Name, strings.Join(titles, ", "))
		return unchanged(state, OutcomeAmbiguous, reply, w.Ref())
	} else if err != nil {
		reply := fmt.Sprintf("%q has no step matching %q.", w.Name, target.Step)
		if n := len(w.Steps); n > 0 {
			reply += fmt.Sprintf(" It has %d step(s).", n)
		}
		return unchanged(state, OutcomeNotFound, reply, w.Ref())
	}

	step := m.Item
	if step.Status == in.Status {
		reply := fmt.Sprintf("Step %d %q of %q is already %s.", m.Index+1, step.Title, w.Name, in.Status.Label())
		return unchanged(state, OutcomeUnchanged, reply, w.Ref())
	}

	updated := w.WithStepStatus(m.Index, in.Status, e.now())
	reply := fmt.Sprintf("Marked step %d %q of %q as %s.", m.Index+1, step.Title, w.Name, in.Status.Label())
	if updated.Status == workflow.StatusCompleted {
		reply += fmt.Sprintf(" %q is now complete!", w.Name)
	}
	return applied(state.Replace(updated), updated, reply)
}

func (e *Engine) tag(state workflow.State, in router.Intent) Result {
	w, res, ok := lookup(state, in.Workflow)
	if !ok {
		return res
	}

	updated, added := w.WithTags(in.Tags, e.now())
	if len(added) == 0 {
		return unchanged(state, OutcomeUnchanged, fmt.Sprintf("%q already has those tags.", w.Name), w.Ref())
	}
	reply := fmt.Sprintf("Tagged %q with %s.", w.Name, hashTags(added))
	return applied(state.Replace(updated), updated, reply)
}

func (e *Engine) untag(state workflow.State, in router.Intent) Result {
	w, res, ok := lookup(state, in.Workflow)
	if !ok {
		return res
	}

	tag := in.Tags[0]
	updated, err := w.WithoutTag(tag, e.now())
	if err != nil {
		return unchanged(state, OutcomeNotFound, fmt.Sprintf("%q is not tagged #%s.", w.Name, tag), w.Ref())
	}
	return applied(state.Replace(updated), updated, fmt.Sprintf("Removed #%s from %q.", tag, w.Name))
}

func (e *Engine) assign(state workflow.State, in router.Intent) Result {
	w, res, ok := lookup(state, in.Workflow)
	if !ok {
		return res
	}
	if w.Owner == in.Owner {
		return unchanged(state, OutcomeUnchanged, fmt.Sprintf("%q is already owned by %s.", w.Name, w.Owner), w.Ref())
	}

	updated := w.WithOwner(in.Owner, e.now())
	return applied(state.Replace(updated), updated, fmt.Sprintf("%q is now owned by %s.", w.Name, in.Owner))
}

func (e *Engine) describe(state workflow.State, in router.Intent) Result {
	w, res, ok := lookup(state, in.Workflow)
	if !ok {
		return res
	}

	updated := w.WithDescription(in.Text, e.now())
	return applied(state.Replace(updated), updated, fmt.Sprintf("Updated the description of %q.", w.Name))
}

func (e *Engine) show(state workflow.State, in router.Intent) Result {
	w, res, ok := lookup(state, in.Workflow)
	if !ok {
		return res
	}
	return unchanged(state, OutcomeAnswered, detailMessage(w), w.Ref())
}

func (e *Engine) unknown(state workflow.State, in router.Intent) Result {
	var b strings.Builder
	if in.Raw == "" {
		b.WriteString("Say something and I'll get to work.")
	} else {
		fmt.Fprintf(&b, "I didn't understand %q.", in.Raw)
		if usage, ok := router.Hint(in.Raw); ok {
			fmt.Fprintf(&b, " Did you mean \"%s\"?", usage)
		}
	}
	b.WriteString("\n\n")
	b.WriteString(helpMessage())
	return unchanged(state, OutcomeUnrecognized, b.String(), nil)
}
