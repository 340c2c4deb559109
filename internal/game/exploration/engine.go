// Package exploration drives a game turn by turn: it visits rooms, files
// newly found clues in the ledger and moves the player on e/d/s commands
// until they stop or input runs out.
package exploration

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"detectivequest/internal/game/ledger"
	"detectivequest/internal/game/mansion"
)

type State int

const (
	AtRoom State = iota
	Terminated
)

type ClueStatus int

const (
	NoClue ClueStatus = iota
	Collected
	AlreadyCollected
)

func (s ClueStatus) String() string {
	switch s {
	case Collected:
		return "collected"
	case AlreadyCollected:
		return "already_collected"
	default:
		return "none"
	}
}

// Visit describes what happened on entering a room.
type Visit struct {
	Room     string
	Clue     string
	Status   ClueStatus
	HasLeft  bool
	HasRight bool
}

type Outcome int

const (
	Moved Outcome = iota
	NoRoomLeft
	NoRoomRight
	Unrecognized
	Stopped
)

// Turn is the result of one command. Arrival is set when the player moved.
type Turn struct {
	Command Command
	Outcome Outcome
	Arrival *Visit
}

type Reason int

const (
	ReasonStopped Reason = iota
	ReasonInputClosed
	ReasonCancelled
)

func (r Reason) String() string {
	switch r {
	case ReasonStopped:
		return "stopped"
	case ReasonInputClosed:
		return "input_closed"
	default:
		return "cancelled"
	}
}

// Reporter is told about everything the player should see.
type Reporter interface {
	Arrived(v Visit)
	Prompt()
	Blocked(o Outcome)
	Finished(r Reason)
}

type Engine struct {
	root     *mansion.Room
	current  *mansion.Room
	clues    mansion.ClueSource
	ledger   *ledger.Ledger
	reporter Reporter
	tracer   trace.Tracer
	state    State
}

type Option func(*Engine)

func WithReporter(r Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithLedger lets the caller supply the ledger clues are filed into.
func WithLedger(l *ledger.Ledger) Option {
	return func(e *Engine) { e.ledger = l }
}

func New(root *mansion.Room, clues mansion.ClueSource, opts ...Option) *Engine {
	e := &Engine{
		root:     root,
		current:  root,
		clues:    clues,
		ledger:   ledger.New(),
		reporter: Reporters(),
		tracer:   noop.NewTracerProvider().Tracer("exploration"),
		state:    AtRoom,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Ledger() *ledger.Ledger { return e.ledger }

func (e *Engine) State() State { return e.state }

func (e *Engine) Current() *mansion.Room { return e.current }

// Start enters the root room.
func (e *Engine) Start(ctx context.Context) Visit {
	e.current = e.root
	e.state = AtRoom
	return e.visit(ctx)
}

// Step applies one command to the current room.
func (e *Engine) Step(ctx context.Context, cmd Command) Turn {
	turn := Turn{Command: cmd}
	if e.state == Terminated {
		turn.Outcome = Stopped
		return turn
	}

	switch cmd {
	case GoLeft:
		turn.Outcome = e.move(e.current.Left, NoRoomLeft)
	case GoRight:
		turn.Outcome = e.move(e.current.Right, NoRoomRight)
	case Stop:
		e.finish(ReasonStopped)
		turn.Outcome = Stopped
		return turn
	default:
		turn.Outcome = Unrecognized
	}

	if turn.Outcome == Moved {
		v := e.visit(ctx)
		turn.Arrival = &v
	} else {
		e.reporter.Blocked(turn.Outcome)
	}
	return turn
}

// Run plays from the root room reading one command per line until the
// player stops, input ends or ctx is cancelled. A read error ends the game
// like end of input and is returned for the caller to log, unless ctx was
// cancelled while reading.
func (e *Engine) Run(ctx context.Context, in io.Reader) error {
	reader := bufio.NewReader(in)
	e.Start(ctx)

	for e.state == AtRoom {
		if ctx.Err() != nil {
			e.finish(ReasonCancelled)
			return nil
		}

		e.reporter.Prompt()
		line, err := readCommandLine(reader)
		if err != nil {
			if ctx.Err() != nil {
				e.finish(ReasonCancelled)
				return nil
			}
			e.finish(ReasonInputClosed)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}
		e.Step(ctx, ParseCommand(line))
	}
	return nil
}

func (e *Engine) move(next *mansion.Room, blocked Outcome) Outcome {
	if next == nil {
		return blocked
	}
	e.current = next
	return Moved
}

func (e *Engine) visit(ctx context.Context) Visit {
	_, span := e.tracer.Start(ctx, "exploration.visit")
	defer span.End()

	r := e.current
	v := Visit{
		Room:     r.Name,
		HasLeft:  r.Left != nil,
		HasRight: r.Right != nil,
	}

	if clue, ok := e.clues.ClueFor(r.Name); ok {
		v.Clue = clue
		if e.ledger.Add(clue) {
			v.Status = Collected
		} else {
			v.Status = AlreadyCollected
		}
	}

	span.SetAttributes(
		attribute.String("room.name", v.Room),
		attribute.String("clue.status", v.Status.String()),
		attribute.Int("ledger.size", e.ledger.Len()),
	)

	e.reporter.Arrived(v)
	return v
}

func (e *Engine) finish(r Reason) {
	e.state = Terminated
	e.reporter.Finished(r)
}

type multiReporter []Reporter

// Reporters fans events out to every reporter in order.
func Reporters(rs ...Reporter) Reporter {
	return multiReporter(rs)
}

func (m multiReporter) Arrived(v Visit) {
	for _, r := range m {
		r.Arrived(v)
	}
}

func (m multiReporter) Prompt() {
	for _, r := range m {
		r.Prompt()
	}
}

func (m multiReporter) Blocked(o Outcome) {
	for _, r := range m {
		r.Blocked(o)
	}
}

func (m multiReporter) Finished(reason Reason) {
	for _, r := range m {
		r.Finished(reason)
	}
}
