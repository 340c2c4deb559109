package main

import (
	"strings"
	"time"

	"detectivequest/internal/debug"
	"detectivequest/internal/game/exploration"
	"detectivequest/internal/game/verdict"
	"detectivequest/internal/logging"
)

// caseRecorder writes visits and the verdict to the case journal. A nil
// journal only counts. Journal failures are logged and never stop play.
type caseRecorder struct {
	journal   *logging.Journal
	sessionID string
	debug     *debug.Logger
	started   time.Time
	visits    int
	ending    exploration.Reason
}

func newCaseRecorder(journal *logging.Journal, sessionID string, logger *debug.Logger) *caseRecorder {
	return &caseRecorder{
		journal:   journal,
		sessionID: sessionID,
		debug:     logger,
		started:   time.Now(),
	}
}

func (r *caseRecorder) Arrived(v exploration.Visit) {
	r.visits++
	if r.journal == nil {
		return
	}
	if err := r.journal.LogVisit(r.sessionID, v.Room, v.Clue, v.Status.String()); err != nil {
		r.debug.Printf("Failed to log visit: %v", err)
	}
}

func (r *caseRecorder) Prompt() {}

func (r *caseRecorder) Blocked(o exploration.Outcome) {}

func (r *caseRecorder) Finished(reason exploration.Reason) {
	r.ending = reason
}

func (r *caseRecorder) Record(title, locale string, result verdict.Result) {
	if r.journal == nil {
		return
	}

	metadata := logging.CaseMetadata{
		Locale:   locale,
		Tallies:  make(map[string]int, len(result.Tallies)),
		Visits:   r.visits,
		Duration: time.Since(r.started),
		Ending:   r.ending.String(),
	}
	for _, ev := range result.Evidence {
		metadata.Clues = append(metadata.Clues, ev.Clue)
	}
	for _, t := range result.Tallies {
		metadata.Tallies[t.Suspect] = t.Count
	}
	for _, l := range result.Leaders {
		metadata.Leaders = append(metadata.Leaders, l.Suspect)
	}

	if err := r.journal.LogCase(r.sessionID, title, verdictSummary(result), metadata); err != nil {
		r.debug.Printf("Failed to log case: %v", err)
	}
}

// verdictSummary is the one-word verdict stored in the journal.
func verdictSummary(result verdict.Result) string {
	if c, ok := result.Culprit(); ok {
		return c.Suspect
	}
	if result.Tied() {
		names := make([]string, 0, len(result.Leaders))
		for _, l := range result.Leaders {
			names = append(names, l.Suspect)
		}
		return "tie: " + strings.Join(names, ", ")
	}
	return "undecided"
}
