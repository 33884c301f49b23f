package engine

import (
	"fmt"
	"strings"

	"flowbot/internal/router"
	"flowbot/internal/workflow"
)

func helpMessage() string {
	var b strings.Builder
	b.WriteString("Here's what I can do:\n")
	for _, ex := range router.Examples {
		fmt.Fprintf(&b, "  - %s\n", ex)
	}
	b.WriteString("You can also block, start or reset steps, assign owners, and describe workflows.")
	return b.String()
}

func listMessage(state workflow.State) string {
	if len(state.Workflows) == 0 {
		return `There are no workflows yet. Try "create workflow <name>".`
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d workflow(s):", len(state.Workflows))
	for i, w := range state.Workflows {
		fmt.Fprintf(&b, "\n%d. %s [%s] %d/%d steps done", i+1, w.Name, w.Status, w.DoneCount(), len(w.Steps))
	}
	return b.String()
}

func detailMessage(w *workflow.Workflow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\nOwner: %s", w.Name, w.Status, w.Owner)
	if w.Description != "" {
		fmt.Fprintf(&b, "\n%s", w.Description)
	}
	if len(w.Tags) > 0 {
		fmt.Fprintf(&b, "\nTags: %s", hashTags(w.Tags))
	}
	if len(w.Steps) == 0 {
		b.WriteString("\nNo steps yet.")
		return b.String()
	}
	fmt.Fprintf(&b, "\nSteps (%d%% done):", w.Progress())
	for i, s := range w.Steps {
		fmt.Fprintf(&b, "\n%d. %s (%s)", i+1, s.Title, s.Status.Label())
		if s.Owner != "" {
			fmt.Fprintf(&b, " @%s", s.Owner)
		}
	}
	return b.String()
}

func hashTags(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return strings.Join(parts, ", ")
}
