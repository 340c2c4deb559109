// Package scenario seeds a game: it reads the mansion layout, the clue found
// in each room and which suspect each clue points to, then builds the data
// structures the engines play on.
package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"detectivequest/internal/game/directory"
	"detectivequest/internal/game/mansion"
)

//go:embed default.yaml
var defaultScenario []byte

type Room struct {
	Name  string `yaml:"name"`
	Clue  string `yaml:"clue,omitempty"`
	Left  *Room  `yaml:"left,omitempty"`
	Right *Room  `yaml:"right,omitempty"`
}

type Evidence struct {
	Clue    string `yaml:"clue"`
	Suspect string `yaml:"suspect"`
}

type Scenario struct {
	Title    string     `yaml:"title"`
	Intro    string     `yaml:"intro"`
	Mansion  *Room      `yaml:"mansion"`
	Suspects []string   `yaml:"suspects"`
	Evidence []Evidence `yaml:"evidence"`
}

// Game is a seeded scenario ready to play.
type Game struct {
	Title      string
	Intro      string
	Root       *mansion.Room
	Clues      mansion.ClueTable
	Directory  *directory.Directory
	Candidates []string
}

func Default() (*Scenario, error) {
	return Parse(defaultScenario)
}

// Load reads a scenario file; an empty path selects the built-in one.
func Load(path string) (*Scenario, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return &s, nil
}

// Build validates the scenario and seeds the mansion, clue table and
// suspect directory.
func (s *Scenario) Build() (*Game, error) {
	if s.Mansion == nil {
		return nil, mansion.ErrEmptyMansion
	}
	if len(s.Suspects) == 0 {
		return nil, errors.New("scenario has no suspects")
	}

	clues := mansion.ClueTable{}
	root, err := buildRoom(s.Mansion, clues)
	if err != nil {
		return nil, err
	}
	if err := mansion.Validate(root); err != nil {
		return nil, fmt.Errorf("invalid mansion: %w", err)
	}

	dir := directory.New()
	for _, ev := range s.Evidence {
		if ev.Clue == "" {
			return nil, errors.New("evidence without a clue")
		}
		if !slices.Contains(s.Suspects, ev.Suspect) {
			return nil, fmt.Errorf("clue %q points to unknown suspect %q", ev.Clue, ev.Suspect)
		}
		dir.Insert(ev.Clue, ev.Suspect)
	}

	return &Game{
		Title:      s.Title,
		Intro:      s.Intro,
		Root:       root,
		Clues:      clues,
		Directory:  dir,
		Candidates: slices.Clone(s.Suspects),
	}, nil
}

func buildRoom(r *Room, clues mansion.ClueTable) (*mansion.Room, error) {
	if r == nil {
		return nil, nil
	}
	if r.Name == "" {
		return nil, errors.New("room without a name")
	}
	left, err := buildRoom(r.Left, clues)
	if err != nil {
		return nil, err
	}
	right, err := buildRoom(r.Right, clues)
	if err != nil {
		return nil, err
	}
	if r.Clue != "" {
		clues[r.Name] = r.Clue
	}
	return mansion.MustRoom(r.Name, left, right), nil
}
