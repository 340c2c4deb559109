package exploration

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"detectivequest/internal/game/mansion"
)

type recorder struct {
	visits   []Visit
	blocked  []Outcome
	prompts  int
	finished []Reason
}

func (r *recorder) Arrived(v Visit)    { r.visits = append(r.visits, v) }
func (r *recorder) Prompt()            { r.prompts++ }
func (r *recorder) Blocked(o Outcome)  { r.blocked = append(r.blocked, o) }
func (r *recorder) Finished(rs Reason) { r.finished = append(r.finished, rs) }

// root(left=L, right=R); only root holds a clue.
func smallMansion() (*mansion.Room, mansion.ClueTable) {
	root := mansion.MustRoom("Hall", mansion.CreateRoom("Kitchen"), mansion.CreateRoom("Library"))
	return root, mansion.ClueTable{"Hall": "torn letter"}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"e", GoLeft},
		{"E\n", GoLeft},
		{"   d", GoRight},
		{"\tS", Stop},
		{"sair", Stop},
		{"esquerda please", GoLeft},
		{"", Invalid},
		{"   ", Invalid},
		{"x", Invalid},
		{"?e", Invalid},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.line))
		})
	}
}

func TestScenarioCollectThenStop(t *testing.T) {
	root, clues := smallMansion()
	rec := &recorder{}
	e := New(root, clues, WithReporter(rec))

	require.NoError(t, e.Run(context.Background(), strings.NewReader("e\ns\n")))

	require.Len(t, rec.visits, 2)
	assert.Equal(t, Visit{Room: "Hall", Clue: "torn letter", Status: Collected, HasLeft: true, HasRight: true}, rec.visits[0])
	assert.Equal(t, Visit{Room: "Kitchen", Status: NoClue}, rec.visits[1])
	assert.Equal(t, []Reason{ReasonStopped}, rec.finished)
	assert.Equal(t, Terminated, e.State())
	assert.Equal(t, []string{"torn letter"}, slices.Collect(e.Ledger().All()))
}

func TestRevisitDoesNotDuplicate(t *testing.T) {
	root, clues := smallMansion()
	rec := &recorder{}
	e := New(root, clues, WithReporter(rec))
	ctx := context.Background()

	e.Start(ctx)
	require.Equal(t, 1, e.Ledger().Len())

	v := e.Start(ctx)
	assert.Equal(t, AlreadyCollected, v.Status)
	assert.Equal(t, "torn letter", v.Clue)
	assert.Equal(t, 1, e.Ledger().Len())
}

func TestSameClueInTwoRooms(t *testing.T) {
	root := mansion.MustRoom("Hall", mansion.CreateRoom("Kitchen"), nil)
	clues := mansion.ClueTable{"Hall": "ashes", "Kitchen": "ashes"}
	e := New(root, clues)
	ctx := context.Background()

	e.Start(ctx)
	turn := e.Step(ctx, GoLeft)
	require.NotNil(t, turn.Arrival)
	assert.Equal(t, AlreadyCollected, turn.Arrival.Status)
	assert.Equal(t, 1, e.Ledger().Len())
}

func TestBlockedMovesStayPut(t *testing.T) {
	root, clues := smallMansion()
	rec := &recorder{}
	e := New(root, clues, WithReporter(rec))

	require.NoError(t, e.Run(context.Background(), strings.NewReader("e\ne\nd\nx\n\ns\n")))

	assert.Equal(t, "Kitchen", e.Current().Name)
	assert.Equal(t, []Outcome{NoRoomLeft, NoRoomRight, Unrecognized, Unrecognized}, rec.blocked)
	assert.Len(t, rec.visits, 2)
	assert.Equal(t, 6, rec.prompts)
}

func TestEndOfInputTerminates(t *testing.T) {
	root, clues := smallMansion()
	rec := &recorder{}
	e := New(root, clues, WithReporter(rec))

	require.NoError(t, e.Run(context.Background(), strings.NewReader("d")))

	assert.Equal(t, "Library", e.Current().Name)
	assert.Equal(t, []Reason{ReasonInputClosed}, rec.finished)
	assert.Equal(t, Terminated, e.State())
}

func TestReadErrorTerminates(t *testing.T) {
	root, clues := smallMansion()
	rec := &recorder{}
	e := New(root, clues, WithReporter(rec))

	err := e.Run(context.Background(), iotest.ErrReader(errors.New("tty gone")))
	require.ErrorContains(t, err, "tty gone")
	assert.Equal(t, []Reason{ReasonInputClosed}, rec.finished)
	assert.Equal(t, 1, e.Ledger().Len())
}

func TestOverlongLineIsOneInvalidCommand(t *testing.T) {
	root, clues := smallMansion()
	rec := &recorder{}
	e := New(root, clues, WithReporter(rec))

	input := "x" + strings.Repeat("y", 70000) + "\ne\ns\n"
	require.NoError(t, e.Run(context.Background(), strings.NewReader(input)))

	assert.Equal(t, "Kitchen", e.Current().Name)
	assert.Equal(t, []Outcome{Unrecognized}, rec.blocked)
	assert.Equal(t, []Reason{ReasonStopped}, rec.finished)
}

func TestCommandAfterLongBlankRun(t *testing.T) {
	root, clues := smallMansion()
	rec := &recorder{}
	e := New(root, clues, WithReporter(rec))

	input := strings.Repeat(" ", 10000) + "d" + strings.Repeat("z", 10000) + "\ns\n"
	require.NoError(t, e.Run(context.Background(), strings.NewReader(input)))

	assert.Equal(t, "Library", e.Current().Name)
	assert.Empty(t, rec.blocked)
	assert.Equal(t, []Reason{ReasonStopped}, rec.finished)
}

// cancelOnRead cancels the game while a read is in flight, like a signal
// arriving during a blocked terminal read.
type cancelOnRead struct {
	cancel context.CancelFunc
}

func (c cancelOnRead) Read(p []byte) (int, error) {
	c.cancel()
	return 0, context.Canceled
}

func TestCancelDuringReadTerminates(t *testing.T) {
	root, clues := smallMansion()
	rec := &recorder{}
	e := New(root, clues, WithReporter(rec))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, e.Run(ctx, cancelOnRead{cancel: cancel}))
	assert.Equal(t, []Reason{ReasonCancelled}, rec.finished)
	assert.Equal(t, 1, rec.prompts)
}

func TestCancelledContextTerminates(t *testing.T) {
	root, clues := smallMansion()
	rec := &recorder{}
	e := New(root, clues, WithReporter(rec))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, e.Run(ctx, strings.NewReader("e\n")))
	assert.Equal(t, []Reason{ReasonCancelled}, rec.finished)
	assert.Equal(t, 0, rec.prompts)
}

func TestStepAfterTermination(t *testing.T) {
	root, clues := smallMansion()
	e := New(root, clues)
	ctx := context.Background()

	e.Start(ctx)
	e.Step(ctx, Stop)
	turn := e.Step(ctx, GoLeft)
	assert.Equal(t, Stopped, turn.Outcome)
	assert.Equal(t, "Hall", e.Current().Name)
}

func TestReportersFanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	r := Reporters(a, b)
	r.Arrived(Visit{Room: "Hall"})
	r.Prompt()
	r.Blocked(NoRoomLeft)
	r.Finished(ReasonStopped)

	for _, rec := range []*recorder{a, b} {
		assert.Len(t, rec.visits, 1)
		assert.Equal(t, 1, rec.prompts)
		assert.Equal(t, []Outcome{NoRoomLeft}, rec.blocked)
		assert.Equal(t, []Reason{ReasonStopped}, rec.finished)
	}
}

func TestVisitsAreTraced(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	root, clues := smallMansion()
	e := New(root, clues, WithTracer(tp.Tracer("test")))

	require.NoError(t, e.Run(context.Background(), strings.NewReader("d\ns\n")))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "exploration.visit", spans[0].Name())

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "Hall", attrs["room.name"])
	assert.Equal(t, "collected", attrs["clue.status"])
}
