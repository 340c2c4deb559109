package ledger

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLookup map[string]string

func (m mapLookup) Lookup(clue string) (string, bool) {
	s, ok := m[clue]
	return s, ok
}

func TestInsertOrdersAndDeduplicates(t *testing.T) {
	words := []string{"torn letter", "muddy boots", "broken vase", "ashes", "wine glass", "key", "glove"}
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		var root *Node
		inserted := map[string]bool{}
		for i := 0; i < 20; i++ {
			w := words[rng.Intn(len(words))]
			root = Insert(root, w)
			inserted[w] = true
		}

		got := slices.Collect(InOrder(root))
		require.True(t, sort.StringsAreSorted(got))
		for i := 1; i < len(got); i++ {
			require.Less(t, got[i-1], got[i], "strictly ascending")
		}
		require.Len(t, got, len(inserted))
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	var root *Node
	root = Insert(root, "torn letter")
	root = Insert(root, "broken vase")
	before := slices.Collect(InOrder(root))

	again := Insert(root, "torn letter")
	assert.Same(t, root, again)
	assert.Equal(t, before, slices.Collect(InOrder(again)))
}

func TestInsertIntoEmptyTree(t *testing.T) {
	root := Insert(nil, "ashes")
	require.NotNil(t, root)
	assert.Equal(t, "ashes", root.Text)
	assert.Nil(t, root.Left)
	assert.Nil(t, root.Right)
}

func TestContains(t *testing.T) {
	assert.False(t, Contains(nil, "anything"))

	history := []string{"m", "c", "x", "a", "e", "z"}
	var root *Node
	for _, h := range history {
		root = Insert(root, h)
	}
	for _, h := range history {
		assert.True(t, Contains(root, h), h)
	}
	for _, absent := range []string{"b", "n", "", "zz", "M"} {
		assert.False(t, Contains(root, absent), absent)
	}
}

func TestInOrderIsLazyAndRestartable(t *testing.T) {
	var root *Node
	for _, s := range []string{"b", "a", "c"} {
		root = Insert(root, s)
	}
	seq := InOrder(root)

	var first []string
	for s := range seq {
		first = append(first, s)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(seq))
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(seq))
}

func TestCountForSuspect(t *testing.T) {
	dir := mapLookup{
		"torn letter": "Butler",
		"muddy boots": "Butler",
		"broken vase": "Gardener",
	}
	l := New()
	for _, c := range []string{"torn letter", "muddy boots", "broken vase", "unrelated smudge"} {
		l.Add(c)
	}

	assert.Equal(t, 2, l.CountForSuspect("Butler", dir))
	assert.Equal(t, 1, l.CountForSuspect("Gardener", dir))
	assert.Equal(t, 0, l.CountForSuspect("Cook", dir))
	assert.Equal(t, 0, CountForSuspect(nil, "Butler", dir))
}

func TestLedgerAdd(t *testing.T) {
	l := New()
	assert.True(t, l.Add("torn letter"))
	assert.False(t, l.Add("torn letter"))
	assert.True(t, l.Add("ashes"))

	assert.Equal(t, 2, l.Len())
	assert.True(t, l.Contains("ashes"))
	assert.Equal(t, []string{"ashes", "torn letter"}, slices.Collect(l.All()))
	assert.Equal(t, "torn letter", l.Root().Text)
}
