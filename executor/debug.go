package executor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/qjebbs/go-qb"
)

type debugger struct {
	name   string
	logger *slog.Logger

	query string
	attrs []any

	start time.Time
}

func newDebugger(funcName string, value any, opt *Options) *debugger {
	return &debugger{
		name:   fmt.Sprintf("%s(%T)", funcName, value),
		logger: opt.logger,
		start:  time.Now(),
	}
}

func (d *debugger) onRendered(s *qb.Statement) {
	query, err := qb.Interpolate(s.Query, s.Params)
	if err != nil {
		d.attrs = append(d.attrs, "interpolate", err)
		query = s.Query
	}
	d.query = query
	d.lap("render")
}

func (d *debugger) onExec(err error) {
	if err != nil {
		d.attrs = append(d.attrs, "error", err)
		return
	}
	d.lap("exec")
}

func (d *debugger) onSkipped() {
	d.query = "<empty>"
	d.attrs = append(d.attrs, "skipped", true)
}

func (d *debugger) lap(step string) {
	d.attrs = append(d.attrs, step, time.Since(d.start))
	d.start = time.Now()
}

func (d *debugger) print() {
	d.logger.Debug(d.query, append([]any{"name", d.name}, d.attrs...)...)
}
