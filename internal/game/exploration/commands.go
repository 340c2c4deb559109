package exploration

import (
	"bufio"
	"strings"
	"unicode"
)

type Command int

const (
	Invalid Command = iota
	GoLeft
	GoRight
	Stop
)

func (c Command) String() string {
	switch c {
	case GoLeft:
		return "left"
	case GoRight:
		return "right"
	case Stop:
		return "stop"
	default:
		return "invalid"
	}
}

// ParseCommand reads the first non-blank character of line, ignoring case
// and anything after it.
func ParseCommand(line string) Command {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	if line == "" {
		return Invalid
	}
	switch unicode.ToLower([]rune(line)[0]) {
	case 'e':
		return GoLeft
	case 'd':
		return GoRight
	case 's':
		return Stop
	default:
		return Invalid
	}
}

// readCommandLine consumes one whole line of any length. Only the chunk
// holding the first non-blank character is kept; the rest of the line is
// discarded.
func readCommandLine(r *bufio.Reader) (string, error) {
	var kept string
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(kept) == "" {
			kept = string(chunk)
		}
		if !isPrefix {
			return kept, nil
		}
	}
}
