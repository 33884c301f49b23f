package router

import (
	"strings"
)

// Examples are the canonical example commands, in the order they are offered
// as suggestions.
var Examples = []string{
	"list workflows",
	"create workflow Launch Campaign",
	"add step to Launch Campaign: Prepare email sequence",
	"run workflow Product Release QA",
	"complete step 1 of Product Release QA",
	"tag Launch Campaign with marketing",
	"show workflow Customer Onboarding",
}

// hintRule maps keywords to the command shape they most likely belong to.
type hintRule struct {
	keywords []string
	usage    string
}

// hintRules are checked in order; earlier rules win when several keywords
// appear in the same text.
var hintRules = []hintRule{
	{keywords: []string{"step", "steps"}, usage: "add step to <workflow>: <step title>"},
	{keywords: []string{"complete", "finish", "done", "block", "mark"}, usage: "complete step <n> of <workflow>"},
	{keywords: []string{"create", "new", "make"}, usage: "create workflow <name>"},
	{keywords: []string{"run", "start", "execute", "go"}, usage: "run workflow <name>"},
	{keywords: []string{"tag", "tags", "label"}, usage: "tag <workflow> with <tag>"},
	{keywords: []string{"owner", "assign"}, usage: "assign <workflow> to <owner>"},
	{keywords: []string{"list", "workflows", "board", "all"}, usage: "list workflows"},
	{keywords: []string{"show", "details", "describe"}, usage: "show workflow <name>"},
}

// Hint suggests the command shape the user most likely meant.
//
// It scans the words of text for known keywords, ignoring case, and returns
// the usage line of the first matching rule. The second result is false when
// no keyword is present.
//
// Text that opens with a status verb or "run" followed by "step" gets the
// status-change shape for that verb.
func Hint(text string) (string, bool) {
	words := strings.Fields(strings.ToLower(text))
	if len(words) >= 2 && words[1] == "step" {
		verb := words[0]
		if verb == "run" || verb == "execute" {
			verb = "start"
		}
		if _, ok := statusVerbs[verb]; ok {
			return verb + " step <n> of <workflow>", true
		}
	}
	for _, rule := range hintRules {
		for _, kw := range rule.keywords {
			for _, w := range words {
				if strings.Trim(w, ".,:;!?\"'") == kw {
					return rule.usage, true
				}
			}
		}
	}
	return "", false
}
