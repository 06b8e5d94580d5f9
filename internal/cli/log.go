package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps look like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one unit of work (a script, an apply) and tags every line it
// logs with the fields given to newProgress.
type progress struct {
	logger *log.Logger
	start  time.Time
	steps  int
}

// newProgress starts the clock. keyvals are attached to every line, e.g.
// newProgress(l, "script", path).
func newProgress(l *log.Logger, keyvals ...interface{}) *progress {
	if len(keyvals) > 0 {
		l = l.With(keyvals...)
	}
	return &progress{logger: l, start: time.Now()}
}

// step records an intermediate stage at debug level.
func (p *progress) step(msg string, keyvals ...interface{}) {
	p.steps++
	p.logger.Debug(msg, append(keyvals, "step", p.steps)...)
}

// done logs msg at info level with the elapsed time, e.g.
// "applied op=blur elapsed=3ms".
func (p *progress) done(msg string, keyvals ...interface{}) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append(keyvals, "elapsed", elapsed)...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
