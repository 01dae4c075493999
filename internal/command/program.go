package command

import (
	tea "github.com/charmbracelet/bubbletea"
)

// runProgram runs a full-screen program and returns its final model.
// Tests replace it to drive models without a terminal.
var runProgram = func(model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithAltScreen())
	return program.Run()
}
