package debug

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger writes developer diagnostics to a file, keeping them out of the
// game's own output. A disabled logger discards everything.
type Logger struct {
	enabled bool
	sugar   *zap.SugaredLogger
}

func NewLogger(enabled bool, path string) (*Logger, error) {
	if !enabled {
		return &Logger{sugar: zap.NewNop().Sugar()}, nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}

	l := &Logger{enabled: true, sugar: logger.Sugar()}
	l.Println("=== DEBUG MODE ENABLED ===")
	return l, nil
}

// Nop returns a disabled logger.
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (d *Logger) Printf(format string, args ...interface{}) {
	if d.enabled {
		d.sugar.Debugf(format, args...)
	}
}

func (d *Logger) Println(args ...interface{}) {
	if d.enabled {
		d.sugar.Debugln(args...)
	}
}

// With returns a logger that adds the key/value pairs to every entry.
func (d *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{enabled: d.enabled, sugar: d.sugar.With(keysAndValues...)}
}

func (d *Logger) IsEnabled() bool {
	return d.enabled
}

func (d *Logger) Sync() error {
	return d.sugar.Sync()
}
