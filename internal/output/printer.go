// Package output renders chat turns and the workflow board for the terminal.
//
// Rendering uses lipgloss. A [Printer] owns its own renderer bound to its
// writer, so output to a buffer or pipe degrades to plain text while a TTY
// gets colors.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"flowbot/internal/session"
	"flowbot/internal/workflow"
)

// Printer writes styled output to a writer.
type Printer struct {
	out    io.Writer
	r      *lipgloss.Renderer
	styles styles
	width  int
}

// NewPrinter creates a [Printer] writing to stdout.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a [Printer] writing to w.
func NewPrinterWithWriter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		out:    w,
		r:      r,
		styles: newStyles(r),
		width:  80,
	}
}

// SetWidth sets the column width cards and messages wrap to.
func (p *Printer) SetWidth(width int) {
	if width > 0 {
		p.width = width
	}
}

// SetColor turns ANSI styling on or off. Turning it on only has an effect
// when the writer supports colors.
func (p *Printer) SetColor(enabled bool) {
	if !enabled {
		p.r.SetColorProfile(termenv.Ascii)
	}
}

// Message prints one chat turn.
func (p *Printer) Message(role session.Role, content string) {
	fmt.Fprintln(p.out, p.RenderMessage(role, content))
}

// Transcript prints every message in order.
func (p *Printer) Transcript(messages []session.Message) {
	for _, m := range messages {
		p.Message(m.Role, m.Content)
	}
}

// RenderMessage renders one chat turn as a labeled bubble.
func (p *Printer) RenderMessage(role session.Role, content string) string {
	var label string
	var bubble lipgloss.Style
	switch role {
	case session.RoleUser:
		label, bubble = "You", p.styles.user
	case session.RoleSystem:
		label, bubble = "Flowbot", p.styles.system
	default:
		label, bubble = "Flowbot", p.styles.assistant
	}
	body := bubble.Width(p.width - 4).Render(content)
	return p.styles.label.Render(label) + "\n" + body
}

// Suggestions prints example commands as a bulleted list.
func (p *Printer) Suggestions(examples []string) {
	fmt.Fprintln(p.out, p.styles.heading.Render("Try one of these:"))
	for _, ex := range examples {
		fmt.Fprintln(p.out, "  "+p.styles.chip.Render(ex))
	}
}

// Prompt prints the input prompt without a trailing newline.
func (p *Printer) Prompt() {
	fmt.Fprint(p.out, p.styles.chip.Render("> "))
}

// Thinking prints the in-flight indicator shown while a turn is processed.
func (p *Printer) Thinking() {
	fmt.Fprintln(p.out, p.styles.muted.Render("Thinking..."))
}

// Error prints an error line.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.out, p.styles.errorText.Render("Error: "+err.Error()))
}

// Board prints the full board.
func (p *Printer) Board(state workflow.State, highlightID string, now time.Time) {
	fmt.Fprintln(p.out, p.RenderBoard(state, highlightID, now))
}

// RenderBoard renders every workflow as a card. The card whose id equals
// highlightID is drawn with the highlight border. now anchors the relative
// "updated" times.
func (p *Printer) RenderBoard(state workflow.State, highlightID string, now time.Time) string {
	header := fmt.Sprintf("%s  %s",
		p.styles.heading.Render("Workflows"),
		p.styles.muted.Render(fmt.Sprintf("%d total", len(state.Workflows))))

	if len(state.Workflows) == 0 {
		return header + "\n" + p.styles.muted.Render("No workflows yet. Ask Flowbot to create one.")
	}

	cards := make([]string, 0, len(state.Workflows)+1)
	cards = append(cards, header)
	for _, w := range state.Workflows {
		cards = append(cards, p.renderCard(w, w.ID == highlightID, now))
	}
	return strings.Join(cards, "\n")
}

func (p *Printer) renderCard(w *workflow.Workflow, highlighted bool, now time.Time) string {
	inner := p.width - 4
	var lines []string

	title := p.styles.title.Render(w.Name)
	badge := p.styles.badge(w.Status).Render(strings.ToUpper(string(w.Status)))
	lines = append(lines, title+"  "+badge)

	if w.Description != "" {
		lines = append(lines, p.styles.body.Width(inner).Render(w.Description))
	}

	meta := fmt.Sprintf("Owner: %s  ·  Updated %s", w.Owner, humanize.RelTime(w.UpdatedAt, now, "ago", "from now"))
	lines = append(lines, p.styles.muted.Render(meta))
	lines = append(lines, progressBar(w.Progress(), inner-6)+" "+p.styles.muted.Render(fmt.Sprintf("%d%%", w.Progress())))

	if len(w.Steps) == 0 {
		lines = append(lines, p.styles.muted.Render("No steps yet. Use the chat to add your first one."))
	}
	for i, s := range w.Steps {
		line := fmt.Sprintf("%d. %s", i+1, s.Title)
		if s.Owner != "" {
			line += p.styles.muted.Render(" (" + s.Owner + ")")
		}
		lines = append(lines, line+"  "+p.styles.stepBadge(s.Status).Render(s.Status.Label()))
	}

	if len(w.Tags) > 0 {
		tags := make([]string, len(w.Tags))
		for i, t := range w.Tags {
			tags[i] = "#" + t
		}
		lines = append(lines, p.styles.muted.Render(strings.Join(tags, " ")))
	}

	card := p.styles.card
	if highlighted {
		card = p.styles.highlight
	}
	return card.Width(p.width - 2).Render(strings.Join(lines, "\n"))
}

func progressBar(percent, width int) string {
	if width < 10 {
		width = 10
	}
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
