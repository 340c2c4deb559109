package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"detectivequest/cmd/game/ui"
	"detectivequest/internal/config"
	"detectivequest/internal/debug"
	"detectivequest/internal/game/exploration"
	"detectivequest/internal/game/mansion"
	"detectivequest/internal/game/narration"
	"detectivequest/internal/game/scenario"
	"detectivequest/internal/game/verdict"
	"detectivequest/internal/i18n"
	"detectivequest/internal/logging"
	"detectivequest/internal/observability"
)

type app struct {
	cfg       *config.Config
	debug     *debug.Logger
	tracing   *observability.TracerProvider
	journal   *logging.Journal
	catalog   *i18n.Catalog
	game      *scenario.Game
	sessionID string
}

func createApp(ctx context.Context, cfg *config.Config) (*app, func(), error) {
	debugLogger, err := debug.NewLogger(cfg.Debug.Enabled, cfg.Debug.Path)
	if err != nil {
		return nil, nil, err
	}

	sc, err := scenario.Load(cfg.Scenario)
	if err != nil {
		return nil, nil, err
	}
	game, err := sc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to seed scenario: %w", err)
	}

	catalog, err := i18n.New(cfg.Locale)
	if err != nil {
		return nil, nil, err
	}

	tracerProvider, err := observability.InitTracing(ctx, observability.Config{
		Environment: cfg.Tracing.Environment,
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		debugLogger.Printf("Failed to initialize tracing: %v", err)
		tracerProvider, _ = observability.InitTracing(ctx, observability.Config{})
	} else if tracerProvider.IsEnabled() {
		debugLogger.Println("OpenTelemetry tracing initialized and enabled")
	} else {
		debugLogger.Println("OpenTelemetry tracing disabled (set DETECTIVE_TRACING_ENABLED=true to enable)")
	}

	var journal *logging.Journal
	if cfg.Journal.Enabled {
		journal, err = logging.NewJournal(cfg.Journal.Path)
		if err != nil {
			debugLogger.Printf("Failed to open case journal: %v", err)
			journal = nil
		}
	}

	sessionID := uuid.NewString()
	a := &app{
		cfg:       cfg,
		debug:     debugLogger.With("session", sessionID),
		tracing:   tracerProvider,
		journal:   journal,
		catalog:   catalog,
		game:      game,
		sessionID: sessionID,
	}
	a.debug.Printf("Seeded %q: %d rooms, %d suspects, %d directory entries",
		game.Title, mansion.Count(game.Root), len(game.Candidates), game.Directory.Len())

	cleanup := func() {
		if journal != nil {
			journal.Close()
		}
		tracerProvider.Shutdown(context.Background())
		debugLogger.Sync()
	}

	return a, cleanup, nil
}

// play runs one case from the first room to the verdict.
func (a *app) play(ctx context.Context, in io.Reader, out io.Writer, useTUI bool) (verdict.Result, error) {
	ctx = observability.WithSessionID(ctx, a.sessionID)
	ctx, span := a.tracing.GetTracer("game").Start(ctx, "case",
		trace.WithAttributes(observability.SessionAttributes(a.sessionID, a.game.Title, a.catalog.Locale())...))
	defer span.End()

	text := narration.NewText(a.catalog)
	rec := newCaseRecorder(a.journal, a.sessionID, a.debug)
	judge := verdict.NewEngine(a.tracing.GetTracer("verdict"))

	if useTUI {
		return a.playTUI(ctx, in, out, text, rec, judge)
	}

	console := narration.NewConsole(out, text)
	console.Intro(a.game.Title, a.game.Intro)

	eng := a.newEngine(exploration.Reporters(console, rec))
	if err := eng.Run(ctx, contextReader{ctx: ctx, r: in}); err != nil {
		a.debug.Printf("Exploration ended on input error: %v", err)
	}

	result := a.conclude(ctx, judge, eng, rec)
	console.Verdict(result)
	return result, nil
}

func (a *app) playTUI(ctx context.Context, in io.Reader, out io.Writer, text narration.Text, rec *caseRecorder, judge *verdict.Engine) (verdict.Result, error) {
	tr := ui.NewTranscript(text)
	eng := a.newEngine(exploration.Reporters(tr, rec))

	model := ui.NewModel(ctx, ui.Session{
		Title:      a.game.Title,
		Intro:      a.game.Intro,
		Engine:     eng,
		Transcript: tr,
		Text:       text,
		Conclude: func(ctx context.Context) verdict.Result {
			return a.conclude(ctx, judge, eng, rec)
		},
		Debug: a.debug,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return verdict.Result{}, fmt.Errorf("failed to run TUI: %w", err)
	}

	if m, ok := final.(ui.Model); ok {
		if result, done := m.Result(); done {
			return result, nil
		}
	}

	// Quit before the verdict: judge what was collected, on the plain console.
	console := narration.NewConsole(out, text)
	reporters := exploration.Reporters(console, rec)
	reporters.Finished(exploration.ReasonCancelled)
	result := a.conclude(ctx, judge, eng, rec)
	console.Verdict(result)
	return result, nil
}

func (a *app) newEngine(r exploration.Reporter) *exploration.Engine {
	return exploration.New(a.game.Root, a.game.Clues,
		exploration.WithReporter(r),
		exploration.WithTracer(a.tracing.GetTracer("exploration")),
	)
}

func (a *app) conclude(ctx context.Context, judge *verdict.Engine, eng *exploration.Engine, rec *caseRecorder) verdict.Result {
	result := judge.Decide(ctx, eng.Ledger(), a.game.Directory, a.game.Candidates)
	a.debug.Printf("Verdict: %s (max %d, %d clues)", verdictSummary(result), result.Max, eng.Ledger().Len())
	rec.Record(a.game.Title, a.catalog.Locale(), result)
	return result
}
