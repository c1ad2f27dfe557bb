package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Prompt        lipgloss.Style
	Cursor        lipgloss.Style
	CursorLine    lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Notice        lipgloss.Style
	Scan          lipgloss.Style
	PreviewBorder lipgloss.Style
	PreviewTitle  lipgloss.Style
	Placeholder   lipgloss.Style
	GitModified   lipgloss.Style
	GitUntracked  lipgloss.Style
	GitDeleted    lipgloss.Style
	GitStaged     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Cursor:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		CursorLine: lipgloss.NewStyle().Bold(true),
		Dim:        lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Scan:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		PreviewBorder: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("241")).
			PaddingLeft(1),
		PreviewTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Placeholder:  lipgloss.NewStyle().Faint(true).Italic(true),
		GitModified:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		GitUntracked: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		GitDeleted:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		GitStaged:    lipgloss.NewStyle().Foreground(lipgloss.Color("76")),
	}
}
