package workflow

import (
	"fmt"
	"strconv"
	"strings"
)

// MatchKind classifies the outcome of a [Resolve] call.
type MatchKind int

// Resolution outcomes.
const (
	MatchNotFound MatchKind = iota
	MatchFound
	MatchAmbiguous
)

// Match is the tagged result of a name lookup.
//
// Exactly one of the following holds:
//   - Kind == MatchFound: Item and Index identify the single match
//   - Kind == MatchAmbiguous: Candidates lists every competing match
//   - Kind == MatchNotFound: nothing matched
type Match[T any] struct {
	Kind       MatchKind
	Item       T
	Index      int
	Candidates []T
}

// Err converts the match into [ErrNotFound], [ErrAmbiguous], or nil.
func (m Match[T]) Err() error {
	switch m.Kind {
	case MatchFound:
		return nil
	case MatchAmbiguous:
		return ErrAmbiguous
	default:
		return ErrNotFound
	}
}

// Resolve looks up query among items by name.
//
// Matching ignores case and surrounding whitespace. An exact name match wins;
// if there is none, the query is tried as a substring of every name. A single
// hit is [MatchFound]; several hits at the same tier are [MatchAmbiguous].
func Resolve[T any](items []T, query string, name func(T) string) Match[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Match[T]{Kind: MatchNotFound, Index: -1}
	}

	if m := collect(items, name, func(n string) bool { return n == q }); m.Kind != MatchNotFound {
		return m
	}
	return collect(items, name, func(n string) bool { return strings.Contains(n, q) })
}

func collect[T any](items []T, name func(T) string, keep func(string) bool) Match[T] {
	m := Match[T]{Kind: MatchNotFound, Index: -1}
	for i, it := range items {
		if !keep(strings.ToLower(strings.TrimSpace(name(it)))) {
			continue
		}
		if len(m.Candidates) == 0 {
			m.Item = it
			m.Index = i
		}
		m.Candidates = append(m.Candidates, it)
	}
	switch len(m.Candidates) {
	case 0:
	case 1:
		m.Kind = MatchFound
	default:
		var zero T
		m.Kind = MatchAmbiguous
		m.Item = zero
		m.Index = -1
	}
	return m
}

// ResolveWorkflow resolves a workflow name against the state.
func ResolveWorkflow(s State, query string) Match[*Workflow] {
	return Resolve(s.Workflows, query, func(w *Workflow) string { return w.Name })
}

// ResolveStep resolves a step reference within w.
//
// A reference that parses as a positive integer (optionally prefixed with '#')
// selects the step at that 1-based position; anything else is matched against
// step titles with [Resolve]. A position outside the step list is
// [MatchNotFound].
func ResolveStep(w *Workflow, ref string) Match[*Step] {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil {
		if n < 1 || n > len(w.Steps) {
			return Match[*Step]{Kind: MatchNotFound, Index: -1}
		}
		return Match[*Step]{
			Kind:       MatchFound,
			Item:       w.Steps[n-1],
			Index:      n - 1,
			Candidates: []*Step{w.Steps[n-1]},
		}
	}
	return Resolve(w.Steps, ref, func(s *Step) string { return s.Title })
}

// Names returns the names of the given workflows, quoted and comma separated.
func Names(ws []*Workflow) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = fmt.Sprintf("%q", w.Name)
	}
	return strings.Join(parts, ", ")
}
