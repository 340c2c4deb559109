package narration

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"detectivequest/internal/game/exploration"
	"detectivequest/internal/game/verdict"
)

// Styles colours each kind of line. Unknown kinds render plain.
type Styles map[Kind]lipgloss.Style

func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading:    r.NewStyle().Foreground(lipgloss.Color("8")).Bold(true),
		Room:       r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Clue:       r.NewStyle().Foreground(lipgloss.Color("11")),
		Notice:     r.NewStyle().Foreground(lipgloss.Color("9")),
		Prompt:     r.NewStyle().Foreground(lipgloss.Color("7")),
		Accusation: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

func (s Styles) Render(l Line) string {
	if l.Kind == Blank {
		return ""
	}
	if style, ok := s[l.Kind]; ok {
		return style.Render(l.Text)
	}
	return l.Text
}

// Console narrates a game on a line-oriented terminal.
type Console struct {
	out    io.Writer
	text   Text
	styles Styles
}

func NewConsole(out io.Writer, text Text) *Console {
	return &Console{
		out:    out,
		text:   text,
		styles: NewStyles(lipgloss.NewRenderer(out)),
	}
}

func (c *Console) Intro(title, intro string) {
	c.write(c.text.Intro(title, intro))
}

func (c *Console) Arrived(v exploration.Visit) {
	c.write(c.text.Arrival(v))
}

func (c *Console) Prompt() {
	fmt.Fprintf(c.out, "\n%s\n> ", c.styles.Render(c.text.Prompt()))
}

func (c *Console) Blocked(o exploration.Outcome) {
	c.write([]Line{c.text.Blocked(o)})
}

func (c *Console) Finished(r exploration.Reason) {
	c.write(c.text.Finished(r))
}

func (c *Console) Verdict(r verdict.Result) {
	c.write(c.text.Verdict(r))
}

func (c *Console) write(lines []Line) {
	for _, l := range lines {
		fmt.Fprintln(c.out, c.styles.Render(l))
	}
}
