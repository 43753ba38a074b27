package main

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/rkshoot/internal/dynamo"
)

// newLogger creates a logger with short timestamps filtered at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", time.Since(p.start).Round(time.Microsecond))...)
}

// stepTracer logs every recorded state at debug level, thinned to every
// stride-th step.
type stepTracer struct {
	logger *log.Logger
	stride int
}

func (t *stepTracer) OnStep(step int, s dynamo.State) {
	if t.stride > 1 && step%t.stride != 0 {
		return
	}
	t.logger.Debug("step", "n", step, "x", s.X, "y", s.Y, "z", s.Z)
}
