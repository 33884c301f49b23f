// Package router classifies free-text chat input into command intents.
//
// The router holds an ordered list of declarative matchers. Each matcher pairs
// a case-insensitive regular expression with a builder that extracts the
// intent's arguments. Matchers are tried in priority order and the first hit
// wins; text that matches nothing becomes [KindUnknown].
//
// Key types:
//   - [Router] - Ordered matcher list ([NewRouter] installs the default grammar)
//   - [Intent] - Classified command with extracted arguments
//
// The package-level [Parse] uses the default router. [Hint] suggests a command
// shape for text the router could not classify.
package router

import (
	"regexp"
	"strings"

	"flowbot/internal/workflow"
)

// matcher is a single grammar rule.
type matcher struct {
	kind    Kind
	pattern *regexp.Regexp

	// verbatim matchers see the input before trailing punctuation is
	// dropped, so names and titles keep it.
	verbatim bool

	// build turns the regexp submatches into an intent. Returning false lets
	// the next matcher try.
	build func(m []string) (Intent, bool)
}

// Router routes chat text to intents.
//
// Create with [NewRouter]. A Router is immutable after construction and safe
// for concurrent use.
type Router struct {
	matchers []matcher
}

var (
	spaceRun      = regexp.MustCompile(`\s+`)
	trailingPunct = regexp.MustCompile(`[.!?]+$`)
	ownerSuffix   = regexp.MustCompile(`\s+\(@([^\s()]+)\)$`)
	tagSplit      = regexp.MustCompile(`\s*(?:,|\band\b)\s*`)
	stepSplit     = regexp.MustCompile(`(?i) (?:of|in|on) (?:workflow )?`)
)

// collapse trims the text and collapses runs of whitespace to a single space.
func collapse(text string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
}

// Normalize trims the text, collapses runs of whitespace to a single space,
// and drops trailing sentence punctuation. Case is preserved so that names
// keep the casing the user typed.
func Normalize(text string) string {
	t := collapse(text)
	if t == "?" {
		return t
	}
	return strings.TrimSpace(trailingPunct.ReplaceAllString(t, ""))
}

// statusVerbs maps status-changing verbs to the step status they set.
var statusVerbs = map[string]workflow.StepStatus{
	"complete": workflow.StepDone,
	"finish":   workflow.StepDone,
	"done":     workflow.StepDone,
	"start":    workflow.StepInProgress,
	"begin":    workflow.StepInProgress,
	"unblock":  workflow.StepInProgress,
	"block":    workflow.StepBlocked,
	"reset":    workflow.StepPending,
	"reopen":   workflow.StepPending,
}

// NewRouter creates a [Router] with the default command grammar.
//
// Priority order:
//   - help, list
//   - create workflow
//   - add step
//   - mark step / status verbs (before run, so "start step" is not a run)
//   - run ("start step 1" and a bare "run workflow" fall through to unknown)
//   - tag, untag, assign, describe
//   - show workflow
func NewRouter() *Router {
	return &Router{
		matchers: []matcher{
			{
				kind:    KindHelp,
				pattern: regexp.MustCompile(`(?i)^(?:help|\?|commands)$`),
				build:   func([]string) (Intent, bool) { return Intent{Kind: KindHelp}, true },
			},
			{
				kind:    KindList,
				pattern: regexp.MustCompile(`(?i)^(?:list|ls|show)(?: (?:all )?workflows?)?$`),
				build:   func([]string) (Intent, bool) { return Intent{Kind: KindList}, true },
			},
			{
				kind:     KindCreate,
				pattern:  regexp.MustCompile(`(?i)^(?:create|new|add) (?:a )?(?:new )?workflow (?:(?:called|named) )?(.+)$`),
				verbatim: true,
				build: func(m []string) (Intent, bool) {
					return Intent{Kind: KindCreate, Name: m[1]}, true
				},
			},
			{
				kind:     KindAddStep,
				pattern:  regexp.MustCompile(`(?i)^add (?:a )?step to (?:workflow )?(.+?) ?(?::| - ) ?(.+)$`),
				verbatim: true,
				build:    buildAddStep,
			},
			{
				kind:    KindStatusChange,
				pattern: regexp.MustCompile(`(?i)^mark step (.+) as (.+)$`),
				build: func(m []string) (Intent, bool) {
					in, ok := statusChange(m[1])
					if !ok {
						return Intent{}, false
					}
					in.Text = m[2]
					if s, ok := workflow.ParseStepStatus(m[2]); ok {
						in.Status = s
					}
					return in, true
				},
			},
			{
				kind:    KindStatusChange,
				pattern: regexp.MustCompile(`(?i)^(complete|finish|done|start|begin|unblock|block|reset|reopen) step (.+)$`),
				build: func(m []string) (Intent, bool) {
					s, ok := statusVerbs[strings.ToLower(m[1])]
					if !ok {
						return Intent{}, false
					}
					in, ok := statusChange(m[2])
					if !ok {
						return Intent{}, false
					}
					in.Status, in.Text = s, string(s)
					return in, true
				},
			},
			{
				kind:    KindRun,
				pattern: regexp.MustCompile(`(?i)^(?:run|start|execute) (workflow )?(.+)$`),
				build: func(m []string) (Intent, bool) {
					if m[1] == "" {
						ref := strings.ToLower(m[2])
						if ref == "workflow" || strings.HasPrefix(ref, "step ") {
							return Intent{}, false
						}
					}
					return Intent{Kind: KindRun, Workflow: m[2]}, true
				},
			},
			{
				kind:    KindTag,
				pattern: regexp.MustCompile(`(?i)^tag (?:workflow )?(.+?) with (.+)$`),
				build: func(m []string) (Intent, bool) {
					tags := splitTags(m[2])
					if len(tags) == 0 {
						return Intent{}, false
					}
					return Intent{Kind: KindTag, Workflow: m[1], Tags: tags}, true
				},
			},
			{
				kind:    KindUntag,
				pattern: regexp.MustCompile(`(?i)^untag (?:workflow )?(.+?) ?: ?#?(.+)$`),
				build: func(m []string) (Intent, bool) {
					return Intent{Kind: KindUntag, Workflow: m[1], Tags: []string{m[2]}}, true
				},
			},
			{
				kind:    KindUntag,
				pattern: regexp.MustCompile(`(?i)^remove tag #?(.+?) from (?:workflow )?(.+)$`),
				build: func(m []string) (Intent, bool) {
					return Intent{Kind: KindUntag, Workflow: m[2], Tags: []string{m[1]}}, true
				},
			},
			{
				kind:    KindAssign,
				pattern: regexp.MustCompile(`(?i)^(?:assign (?:workflow )?|set owner of (?:workflow )?)(.+?) to (.+)$`),
				build: func(m []string) (Intent, bool) {
					return Intent{Kind: KindAssign, Workflow: m[1], Owner: m[2]}, true
				},
			},
			{
				kind:     KindDescribe,
				pattern:  regexp.MustCompile(`(?i)^describe (?:workflow )?(.+?) ?: ?(.+)$`),
				verbatim: true,
				build: func(m []string) (Intent, bool) {
					return Intent{Kind: KindDescribe, Workflow: m[1], Text: m[2]}, true
				},
			},
			{
				kind:    KindShow,
				pattern: regexp.MustCompile(`(?i)^(?:show|describe|inspect) (?:workflow )?(.+)$`),
				build: func(m []string) (Intent, bool) {
					return Intent{Kind: KindShow, Workflow: m[1]}, true
				},
			},
		},
	}
}

func buildAddStep(m []string) (Intent, bool) {
	in := Intent{Kind: KindAddStep, Workflow: m[1], Step: m[2]}
	if om := ownerSuffix.FindStringSubmatch(in.Step); om != nil {
		in.Owner = om[1]
		in.Step = strings.TrimSpace(strings.TrimSuffix(in.Step, om[0]))
	}
	if in.Step == "" {
		return Intent{}, false
	}
	return in, true
}

// statusChange splits "<step> of <workflow>" at every separator, in input
// order. The first split fills Step and Workflow; the engine chooses among
// all of them against the board.
func statusChange(rest string) (Intent, bool) {
	var targets []Target
	for _, loc := range stepSplit.FindAllStringIndex(rest, -1) {
		step := strings.TrimSpace(rest[:loc[0]])
		wf := strings.TrimSpace(rest[loc[1]:])
		if step == "" || wf == "" {
			continue
		}
		targets = append(targets, Target{Step: step, Workflow: wf})
	}
	if len(targets) == 0 {
		return Intent{}, false
	}
	return Intent{
		Kind:     KindStatusChange,
		Step:     targets[0].Step,
		Workflow: targets[0].Workflow,
		Targets:  targets,
	}, true
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range tagSplit.Split(s, -1) {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Parse classifies text into an [Intent].
//
// The text is normalized with [Normalize] first. Commands that capture a new
// name, step title or description match the text with only whitespace
// collapsed, so trailing punctuation stays in the argument. Arguments are
// trimmed but keep their original casing. Unmatched text yields an intent of
// [KindUnknown]; Parse never fails.
func (r *Router) Parse(text string) Intent {
	verbatim, normalized := collapse(text), Normalize(text)
	for _, mt := range r.matchers {
		raw := normalized
		if mt.verbatim {
			raw = verbatim
		}
		m := mt.pattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		for i := range m {
			m[i] = strings.TrimSpace(m[i])
		}
		in, ok := mt.build(m)
		if !ok {
			continue
		}
		in.Kind = mt.kind
		in.Raw = raw
		return in
	}
	return Intent{Kind: KindUnknown, Raw: normalized}
}

// defaultRouter is the package-level router used by [Parse].
var defaultRouter = NewRouter()

// Parse classifies text using the default grammar. See [Router.Parse].
func Parse(text string) Intent {
	return defaultRouter.Parse(text)
}
