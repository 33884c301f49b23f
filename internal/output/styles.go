package output

import (
	"github.com/charmbracelet/lipgloss"

	"flowbot/internal/workflow"
)

// Palette
var (
	colorPrimary = lipgloss.Color("#7C9CFF")
	colorMuted   = lipgloss.Color("#94A3B8")
	colorDone    = lipgloss.Color("#34D399")
	colorRunning = lipgloss.Color("#FBBF24")
	colorBlocked = lipgloss.Color("#FB7185")
	colorBorder  = lipgloss.Color("#334155")
	colorText    = lipgloss.Color("#E2E8F0")
)

type styles struct {
	label     lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	system    lipgloss.Style
	heading   lipgloss.Style
	title     lipgloss.Style
	body      lipgloss.Style
	muted     lipgloss.Style
	chip      lipgloss.Style
	errorText lipgloss.Style
	card      lipgloss.Style
	highlight lipgloss.Style

	statusBadges map[workflow.Status]lipgloss.Style
	stepBadges   map[workflow.StepStatus]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	s := styles{
		label:     r.NewStyle().Bold(true).Foreground(colorMuted),
		user:      r.NewStyle().Foreground(colorText).PaddingLeft(2),
		assistant: r.NewStyle().Foreground(colorPrimary).PaddingLeft(2),
		system:    r.NewStyle().Italic(true).Foreground(colorMuted).PaddingLeft(2),
		heading:   r.NewStyle().Bold(true).Foreground(colorText),
		title:     r.NewStyle().Bold(true).Foreground(colorText),
		body:      r.NewStyle().Foreground(colorText),
		muted:     r.NewStyle().Foreground(colorMuted),
		chip:      r.NewStyle().Foreground(colorPrimary),
		errorText: r.NewStyle().Bold(true).Foreground(colorBlocked),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		highlight: r.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1),
	}

	s.statusBadges = map[workflow.Status]lipgloss.Style{
		workflow.StatusDraft:     r.NewStyle().Foreground(colorMuted),
		workflow.StatusActive:    r.NewStyle().Bold(true).Foreground(colorPrimary),
		workflow.StatusCompleted: r.NewStyle().Bold(true).Foreground(colorDone),
	}
	s.stepBadges = map[workflow.StepStatus]lipgloss.Style{
		workflow.StepPending:    r.NewStyle().Foreground(colorMuted),
		workflow.StepInProgress: r.NewStyle().Foreground(colorRunning),
		workflow.StepBlocked:    r.NewStyle().Foreground(colorBlocked),
		workflow.StepDone:       r.NewStyle().Foreground(colorDone),
	}
	return s
}

func (s styles) badge(status workflow.Status) lipgloss.Style {
	if st, ok := s.statusBadges[status]; ok {
		return st
	}
	return s.muted
}

func (s styles) stepBadge(status workflow.StepStatus) lipgloss.Style {
	if st, ok := s.stepBadges[status]; ok {
		return st
	}
	return s.muted
}
