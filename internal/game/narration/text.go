// Package narration turns engine events into the lines the player reads.
package narration

import (
	"strings"

	"detectivequest/internal/game/exploration"
	"detectivequest/internal/game/verdict"
	"detectivequest/internal/i18n"
)

type Kind int

const (
	Plain Kind = iota
	Blank
	Heading
	Room
	Clue
	Notice
	Prompt
	Accusation
)

type Line struct {
	Kind Kind
	Text string
}

// Text builds localized lines. The zero value is not usable; use NewText.
type Text struct {
	cat *i18n.Catalog
}

func NewText(cat *i18n.Catalog) Text {
	return Text{cat: cat}
}

func (t Text) Intro(title, intro string) []Line {
	lines := []Line{{Heading, t.cat.T("Investigating: %s", title)}}
	if intro != "" {
		lines = append(lines, Line{Plain, intro})
	}
	return append(lines, Line{Kind: Blank}, Line{Heading, t.cat.T("--- Exploring the mansion ---")})
}

func (t Text) Arrival(v exploration.Visit) []Line {
	lines := []Line{
		{Kind: Blank},
		{Room, t.cat.T("You are in: %s", v.Room)},
	}
	switch v.Status {
	case exploration.Collected:
		lines = append(lines,
			Line{Clue, t.cat.T("You found a clue: \"%s\"", v.Clue)},
			Line{Plain, t.cat.T("Clue collected and stored.")},
		)
	case exploration.AlreadyCollected:
		lines = append(lines,
			Line{Clue, t.cat.T("You found a clue: \"%s\"", v.Clue)},
			Line{Notice, t.cat.T("You had already collected this clue; it was not duplicated.")},
		)
	default:
		lines = append(lines, Line{Plain, t.cat.T("No clue here.")})
	}
	return lines
}

func (t Text) Prompt() Line {
	return Line{Prompt, t.cat.T("Choose an action: (e) left | (d) right | (s) stop and judge")}
}

// Leave is shown once the verdict is on screen in the TUI.
func (t Text) Leave() string {
	return t.cat.T("Press any key to leave.")
}

func (t Text) Blocked(o exploration.Outcome) Line {
	switch o {
	case exploration.NoRoomLeft:
		return Line{Notice, t.cat.T("There is no room to the left.")}
	case exploration.NoRoomRight:
		return Line{Notice, t.cat.T("There is no room to the right.")}
	default:
		return Line{Notice, t.cat.T("Invalid command. Use 'e', 'd' or 's'.")}
	}
}

func (t Text) Finished(r exploration.Reason) []Line {
	var reason string
	switch r {
	case exploration.ReasonStopped:
		reason = t.cat.T("You decided to end the exploration.")
	case exploration.ReasonInputClosed:
		reason = t.cat.T("Input closed, heading to the verdict.")
	default:
		reason = t.cat.T("Exploration interrupted.")
	}
	return []Line{
		{Kind: Blank},
		{Plain, reason},
		{Kind: Blank},
		{Heading, t.cat.T("--- Exploration finished ---")},
	}
}

func (t Text) Verdict(r verdict.Result) []Line {
	lines := []Line{{Kind: Blank}, {Heading, t.cat.T("--- Verdict ---")}}

	if len(r.Evidence) == 0 {
		lines = append(lines, Line{Plain, t.cat.T("No clues were collected.")})
	} else {
		lines = append(lines, Line{Plain, t.cat.T("Collected clues:")})
		for _, ev := range r.Evidence {
			if ev.Suspect == "" {
				lines = append(lines, Line{Clue, t.cat.T("  - %s (points to nobody)", ev.Clue)})
				continue
			}
			lines = append(lines, Line{Clue, t.cat.T("  - %s (points to %s)", ev.Clue, ev.Suspect)})
		}
	}

	lines = append(lines, Line{Kind: Blank}, Line{Plain, t.cat.T("Tally:")})
	for _, tally := range r.Tallies {
		lines = append(lines, Line{Plain, t.cat.T("  %s: %d clue(s)", tally.Suspect, tally.Count)})
	}
	lines = append(lines, Line{Kind: Blank})

	if c, ok := r.Culprit(); ok {
		return append(lines, Line{Accusation, t.cat.T("The evidence points to %s with %d clue(s).", c.Suspect, c.Count)})
	}
	if r.Tied() {
		names := make([]string, 0, len(r.Leaders))
		for _, l := range r.Leaders {
			names = append(names, l.Suspect)
		}
		return append(lines, Line{Accusation, t.cat.T("The evidence is split between %s, %d clue(s) each.", strings.Join(names, ", "), r.Max)})
	}
	return append(lines, Line{Accusation, t.cat.T("Not enough evidence to accuse anyone.")})
}
