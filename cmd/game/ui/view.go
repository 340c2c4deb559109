package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"detectivequest/internal/game/narration"
)

func (m Model) View() string {
	inputHeight := 4
	chatHeight := m.height - inputHeight
	rightWidth := m.width

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Width(m.width - 4)

	chatPanel := lipgloss.NewStyle().
		Width(rightWidth).
		Height(chatHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1)

	var chatContent strings.Builder

	visible := m.transcript.Lines()
	maxLines := chatHeight - 2
	if maxLines < 1 {
		maxLines = 1
	}

	if len(visible) > maxLines {
		visible = visible[len(visible)-maxLines:]
	}

	for i := len(visible); i < maxLines; i++ {
		chatContent.WriteString("\n")
	}

	contentWidth := rightWidth - 4

	for _, line := range visible {
		if line.Kind == narration.Blank || line.Text == "" {
			chatContent.WriteString("\n")
			continue
		}
		wrapped := wrapAndIndent(line.Text, contentWidth, " ")
		chatContent.WriteString(m.styles.Render(narration.Line{Kind: line.Kind, Text: wrapped}) + "\n")
	}

	var footer narration.Line
	if m.result != nil {
		footer = narration.Line{Kind: narration.Heading, Text: m.text.Leave()}
	} else {
		footer = m.text.Prompt()
	}

	chat := chatPanel.Render(chatContent.String())
	input := inputStyle.Render(m.styles.Render(footer) + "\n" + m.input + "│")

	return chat + "\n" + input
}

func wrapAndIndent(text string, width int, indent string) string {
	if lipgloss.Width(text) <= width {
		return indent + text
	}

	var result strings.Builder
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent + text
	}

	currentLine := indent + words[0]

	for _, word := range words[1:] {
		if lipgloss.Width(currentLine)+1+lipgloss.Width(word) <= width {
			currentLine += " " + word
		} else {
			result.WriteString(currentLine + "\n")
			currentLine = indent + word
		}
	}

	result.WriteString(currentLine)
	return result.String()
}
