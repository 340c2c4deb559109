package logging

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := NewJournal(filepath.Join(t.TempDir(), "cases.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestLogAndReadCases(t *testing.T) {
	j := openJournal(t)

	require.NoError(t, j.LogCase("s-1", "First Case", "Butler", CaseMetadata{
		Clues:   []string{"muddy boots", "torn letter"},
		Tallies: map[string]int{"Butler": 2},
		Leaders: []string{"Butler"},
	}))
	require.NoError(t, j.LogCase("s-2", "Second Case", "", CaseMetadata{}))

	cases, err := j.GetRecentCases(10)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "s-2", cases[0].SessionID)
	assert.Equal(t, "First Case", cases[1].Title)
	assert.Equal(t, "Butler", cases[1].Verdict)
	assert.Nil(t, cases[1].Rating)

	var meta CaseMetadata
	require.NoError(t, json.Unmarshal([]byte(cases[1].Metadata), &meta))
	assert.Equal(t, 2, meta.Tallies["Butler"])

	limited, err := j.GetRecentCases(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestLogVisits(t *testing.T) {
	j := openJournal(t)

	require.NoError(t, j.LogVisit("s-1", "Hall", "torn letter", "collected"))
	require.NoError(t, j.LogVisit("s-1", "Kitchen", "", "none"))
	require.NoError(t, j.LogVisit("s-2", "Hall", "torn letter", "collected"))

	visits, err := j.GetVisits("s-1")
	require.NoError(t, err)
	require.Len(t, visits, 2)
	assert.Equal(t, "Hall", visits[0].Room)
	assert.Equal(t, "none", visits[1].Status)
}

func TestRateCase(t *testing.T) {
	j := openJournal(t)
	require.NoError(t, j.LogCase("s-1", "Case", "Cook", CaseMetadata{}))

	cases, err := j.GetRecentCases(1)
	require.NoError(t, err)
	require.NoError(t, j.RateCase(cases[0].ID, 4, "close call"))

	cases, err = j.GetRecentCases(1)
	require.NoError(t, err)
	require.NotNil(t, cases[0].Rating)
	assert.Equal(t, 4, *cases[0].Rating)
	require.NotNil(t, cases[0].Notes)
	assert.Equal(t, "close call", *cases[0].Notes)

	assert.ErrorContains(t, j.RateCase(999, 1, ""), "no case with id 999")
}
