package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle lipgloss.Style
	panelStyle  lipgloss.Style
	headerStyle lipgloss.Style
	labelStyle  lipgloss.Style
	valueStyle  lipgloss.Style
	activeStyle lipgloss.Style
	idleStyle   lipgloss.Style
	graphStyle  lipgloss.Style
	helpStyle   lipgloss.Style
)

func init() { applyTheme() }

func applyTheme() {
	t := CurrentTheme
	canvasStyle = lipgloss.NewStyle().Padding(1, 2).Foreground(t.Accent)
	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Muted).
		Padding(1, 2).
		Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(t.Muted).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(t.Text)
	activeStyle = lipgloss.NewStyle().Foreground(t.Active).Bold(true)
	idleStyle = lipgloss.NewStyle().Foreground(t.Idle).Bold(true)
	graphStyle = lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0)
	helpStyle = lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// rangeBar draws v's position inside [lo, hi].
func rangeBar(v, lo, hi float64, width int) string {
	ratio := (v - lo) / (hi - lo)
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
