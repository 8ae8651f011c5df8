// Package tui provides the interactive skill browser built on BubbleTea.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains reusable lipgloss styles for the TUI.
var Styles = struct {
	Title  lipgloss.Style
	Help   lipgloss.Style
	Filter lipgloss.Style
	Valid  lipgloss.Style
	Bad    lipgloss.Style
	Detail lipgloss.Style
}{
	Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	Valid:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	Detail: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
}

// Run starts a BubbleTea program with the given model.
func Run(model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model)
	return p.Run()
}
