package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/attio-tui/attio-tui/internal/state"
)

// Readable on both light and dark terminal backgrounds.
var (
	textColor  = lipgloss.AdaptiveColor{Light: "#1d1f2b", Dark: "#f3f4f8"}
	mutedColor = lipgloss.AdaptiveColor{Light: "#6b6f80", Dark: "#a9adbd"}

	// Borders must remain visible on light terminals; keep light-theme borders darker.
	borderColor = lipgloss.AdaptiveColor{Light: "#6b6f80", Dark: "#4a4e5e"}
	accentColor = lipgloss.AdaptiveColor{Light: "#2f54d1", Dark: "#7d9bff"}
	dangerColor = lipgloss.AdaptiveColor{Light: "#a32138", Dark: "#e0566c"}
	okColor     = lipgloss.AdaptiveColor{Light: "#1f7a3d", Dark: "#5fcf80"}
)

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(mutedColor)
}

func titleStyle(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true).Foreground(textColor)
	if focused {
		s = s.Foreground(accentColor)
	}
	return s
}

func paneStyle(focused bool) lipgloss.Style {
	c := borderColor
	if focused {
		c = accentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 1).
		AlignVertical(lipgloss.Top).
		Align(lipgloss.Left)
}

func toneStyle(t state.Tone) lipgloss.Style {
	if t == state.ToneError {
		return lipgloss.NewStyle().Foreground(dangerColor).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(okColor)
}

func footerStyle() lipgloss.Style {
	return mutedStyle().Faint(true)
}

func overlayStyle(w int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(w).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(1, 2)
}

func resultsTableStyles() table.Styles {
	s := table.DefaultStyles()
	// Plain header/cells, but keep a tiny bit of horizontal breathing room.
	s.Header = lipgloss.NewStyle().
		Foreground(mutedColor).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	// Selected row: typographic emphasis rather than color blocks.
	s.Selected = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	return s
}

func rule(width int) string {
	if width <= 0 {
		width = 10
	}
	return lipgloss.NewStyle().Foreground(borderColor).Render(strings.Repeat("─", width))
}
