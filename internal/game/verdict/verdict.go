// Package verdict tallies the collected clues against each suspect and
// names whoever they point to most.
//
// When several suspects share the highest tally all of them are reported
// as leaders, in the order the candidates were given, and there is no
// single culprit. A highest tally of zero produces no leaders.
package verdict

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"detectivequest/internal/game/ledger"
)

type Tally struct {
	Suspect string
	Count   int
}

// Evidence pairs a collected clue with the suspect it implicates, if any.
type Evidence struct {
	Clue    string
	Suspect string
}

type Result struct {
	Tallies  []Tally
	Leaders  []Tally
	Max      int
	Evidence []Evidence
}

// Culprit returns the only leader, or false when evidence is missing or
// tied.
func (r Result) Culprit() (Tally, bool) {
	if len(r.Leaders) != 1 {
		return Tally{}, false
	}
	return r.Leaders[0], true
}

func (r Result) Tied() bool {
	return len(r.Leaders) > 1
}

type Engine struct {
	tracer trace.Tracer
}

func NewEngine(tracer trace.Tracer) *Engine {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("verdict")
	}
	return &Engine{tracer: tracer}
}

func (e *Engine) Decide(ctx context.Context, l *ledger.Ledger, dir ledger.SuspectLookup, candidates []string) Result {
	_, span := e.tracer.Start(ctx, "verdict.decide")
	defer span.End()

	r := Decide(l, dir, candidates)

	span.SetAttributes(
		attribute.Int("ledger.size", l.Len()),
		attribute.Int("verdict.max", r.Max),
		attribute.Int("verdict.leaders", len(r.Leaders)),
	)
	if c, ok := r.Culprit(); ok {
		span.SetAttributes(attribute.String("verdict.culprit", c.Suspect))
	}
	return r
}

func Decide(l *ledger.Ledger, dir ledger.SuspectLookup, candidates []string) Result {
	var r Result

	for clue := range l.All() {
		suspect, _ := dir.Lookup(clue)
		r.Evidence = append(r.Evidence, Evidence{Clue: clue, Suspect: suspect})
	}

	for _, c := range candidates {
		t := Tally{Suspect: c, Count: l.CountForSuspect(c, dir)}
		r.Tallies = append(r.Tallies, t)
		if t.Count > r.Max {
			r.Max = t.Count
		}
	}

	if r.Max == 0 {
		return r
	}
	for _, t := range r.Tallies {
		if t.Count == r.Max {
			r.Leaders = append(r.Leaders, t)
		}
	}
	return r
}
