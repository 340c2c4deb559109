package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"detectivequest/internal/game/exploration"
	"detectivequest/internal/game/narration"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.result != nil {
		return m, tea.Quit
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		line := m.input
		m.input = ""
		m.transcript.Add(narration.Line{Kind: narration.Prompt, Text: "> " + line})

		cmd := exploration.ParseCommand(line)
		turn := m.engine.Step(m.ctx, cmd)
		m.debug.Printf("command %q -> %s, outcome %d", line, cmd, turn.Outcome)

		if m.engine.State() == exploration.Terminated {
			result := m.conclude(m.ctx)
			m.result = &result
			m.transcript.Add(m.text.Verdict(result)...)
		}
		return m, nil

	case "backspace":
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.input += string(msg.Runes)
		}
		return m, nil
	}
}
