package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"detectivequest/internal/debug"
	"detectivequest/internal/game/exploration"
	"detectivequest/internal/game/narration"
	"detectivequest/internal/game/verdict"
)

// Session is everything the TUI needs to play one case. Engine must report
// to Transcript.
type Session struct {
	Title      string
	Intro      string
	Engine     *exploration.Engine
	Transcript *Transcript
	Text       narration.Text
	Conclude   func(context.Context) verdict.Result
	Debug      *debug.Logger
}

type Model struct {
	ctx        context.Context
	engine     *exploration.Engine
	transcript *Transcript
	text       narration.Text
	conclude   func(context.Context) verdict.Result
	debug      *debug.Logger
	styles     narration.Styles
	input      string
	width      int
	height     int
	result     *verdict.Result
}

// NewModel narrates the intro and enters the first room.
func NewModel(ctx context.Context, s Session) Model {
	logger := s.Debug
	if logger == nil {
		logger = debug.Nop()
	}

	s.Transcript.Add(s.Text.Intro(s.Title, s.Intro)...)
	s.Engine.Start(ctx)

	return Model{
		ctx:        ctx,
		engine:     s.Engine,
		transcript: s.Transcript,
		text:       s.Text,
		conclude:   s.Conclude,
		debug:      logger,
		styles:     narration.NewStyles(lipgloss.DefaultRenderer()),
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Result is the verdict once the exploration has ended.
func (m Model) Result() (verdict.Result, bool) {
	if m.result == nil {
		return verdict.Result{}, false
	}
	return *m.result, true
}
