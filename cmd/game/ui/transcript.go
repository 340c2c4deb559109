package ui

import (
	"detectivequest/internal/game/exploration"
	"detectivequest/internal/game/narration"
)

// Transcript collects narrated lines for the chat panel. It is the TUI's
// exploration.Reporter.
type Transcript struct {
	text  narration.Text
	lines []narration.Line
}

func NewTranscript(text narration.Text) *Transcript {
	return &Transcript{text: text}
}

func (t *Transcript) Add(lines ...narration.Line) {
	t.lines = append(t.lines, lines...)
}

func (t *Transcript) Lines() []narration.Line {
	return t.lines
}

func (t *Transcript) Arrived(v exploration.Visit) {
	t.Add(t.text.Arrival(v)...)
}

// Prompt is a no-op: the view keeps the action menu above the input box.
func (t *Transcript) Prompt() {}

func (t *Transcript) Blocked(o exploration.Outcome) {
	t.Add(t.text.Blocked(o))
}

func (t *Transcript) Finished(r exploration.Reason) {
	t.Add(t.text.Finished(r)...)
}
