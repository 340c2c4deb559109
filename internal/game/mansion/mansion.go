// Package mansion holds the static room layout the player walks through.
package mansion

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

type Room struct {
	Name  string
	Left  *Room
	Right *Room
}

// CreateRoom allocates a room with no neighbours. Running out of memory
// aborts the process inside the runtime; there is no error to return.
func CreateRoom(name string) *Room {
	return &Room{Name: name}
}

// MustRoom is CreateRoom for seeding code, where an unnamed room is a bug.
func MustRoom(name string, left, right *Room) *Room {
	if name == "" {
		panic("mansion: room without a name")
	}
	r := CreateRoom(name)
	r.Left, r.Right = left, right
	return r
}

// ClueSource tells which clue, if any, can be found in a room.
type ClueSource interface {
	ClueFor(room string) (string, bool)
}

// ClueTable is the static room name to clue text lookup.
type ClueTable map[string]string

func (t ClueTable) ClueFor(room string) (string, bool) {
	clue, ok := t[room]
	if !ok || clue == "" {
		return "", false
	}
	return clue, true
}

var ErrEmptyMansion = errors.New("mansion has no rooms")

// Validate checks that the layout below root is a proper tree: every room
// is reached exactly once and names are unique.
func Validate(root *Room) error {
	if root == nil {
		return ErrEmptyMansion
	}

	seen := mapset.New[*Room]()
	names := mapset.New[string]()
	stack := []*Room{root}

	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen.Has(r) {
			return fmt.Errorf("room %q is reachable more than once", r.Name)
		}
		seen.Put(r)

		if names.Has(r.Name) {
			return fmt.Errorf("duplicate room name %q", r.Name)
		}
		names.Put(r.Name)

		for _, child := range []*Room{r.Right, r.Left} {
			if child != nil {
				stack = append(stack, child)
			}
		}
	}
	return nil
}

// Count returns the number of rooms below and including root.
func Count(root *Room) int {
	if root == nil {
		return 0
	}
	return 1 + Count(root.Left) + Count(root.Right)
}
