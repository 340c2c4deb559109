// Package ledger keeps the clues collected during a game in a binary
// search tree ordered lexicographically. Inserting a clue that is already
// present leaves the tree untouched.
package ledger

import "iter"

type Node struct {
	Text  string
	Left  *Node
	Right *Node
}

// SuspectLookup resolves a clue to the suspect it implicates.
type SuspectLookup interface {
	Lookup(clue string) (string, bool)
}

func Contains(root *Node, text string) bool {
	if root == nil {
		return false
	}
	switch {
	case text < root.Text:
		return Contains(root.Left, text)
	case text > root.Text:
		return Contains(root.Right, text)
	default:
		return true
	}
}

// Insert returns the root of the tree with text added. Callers must rebind
// the root they hold, since an empty tree gains a new one.
func Insert(root *Node, text string) *Node {
	if root == nil {
		return &Node{Text: text}
	}
	switch {
	case text < root.Text:
		root.Left = Insert(root.Left, text)
	case text > root.Text:
		root.Right = Insert(root.Right, text)
	}
	return root
}

// InOrder yields the clues in ascending order. The sequence can be ranged
// over any number of times.
func InOrder(root *Node) iter.Seq[string] {
	return func(yield func(string) bool) {
		walk(root, yield)
	}
}

func walk(n *Node, yield func(string) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.Left, yield) && yield(n.Text) && walk(n.Right, yield)
}

func CountForSuspect(root *Node, suspect string, dir SuspectLookup) int {
	if root == nil {
		return 0
	}
	count := CountForSuspect(root.Left, suspect, dir) + CountForSuspect(root.Right, suspect, dir)
	if s, ok := dir.Lookup(root.Text); ok && s == suspect {
		count++
	}
	return count
}

// Ledger owns a clue tree for the length of one game.
type Ledger struct {
	root *Node
	size int
}

func New() *Ledger {
	return &Ledger{}
}

// Add inserts text unless it is already present and reports whether the
// ledger grew.
func (l *Ledger) Add(text string) bool {
	if Contains(l.root, text) {
		return false
	}
	l.root = Insert(l.root, text)
	l.size++
	return true
}

func (l *Ledger) Contains(text string) bool {
	return Contains(l.root, text)
}

func (l *Ledger) All() iter.Seq[string] {
	return InOrder(l.root)
}

func (l *Ledger) Len() int {
	return l.size
}

func (l *Ledger) Root() *Node {
	return l.root
}

func (l *Ledger) CountForSuspect(suspect string, dir SuspectLookup) int {
	return CountForSuspect(l.root, suspect, dir)
}
