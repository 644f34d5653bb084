package qb

import (
	"log/slog"
	"strings"

	"github.com/qjebbs/go-qb/internal/named"
)

type debugger struct {
	debug bool // debug mode
	name  string
}

// Debug enables debug mode which logs the interpolated query.
func (b *debugger) Debug(name ...string) {
	b.debug = true
	if len(name) == 0 {
		b.name = "qb"
		return
	}
	b.name = strings.Replace(strings.Join(name, "_"), " ", "_", -1)
}

// logIfDebug logs the statement at debug level.
func (b *debugger) logIfDebug(logger *slog.Logger, s *Statement) {
	if !b.debug {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	prefix := b.name
	if prefix == "" {
		prefix = "qb"
	}
	if s.Empty() {
		logger.Debug("empty statement", "name", prefix, "kind", s.Kind)
		return
	}
	interpolated, err := Interpolate(s.Query, s.Params)
	if err != nil {
		logger.Debug("interpolating", "name", prefix, "error", err)
		interpolated = s.Query
	}
	logger.Debug(interpolated, "name", prefix, "kind", s.Kind, "params", len(s.Params))
}

// Interpolate replaces the placeholders of query with their values as SQL
// literals. The result is meant for logs, never execute it.
func Interpolate(query string, params Params) (string, error) {
	var firstErr error
	r := named.Replace(query, func(name string) string {
		v, ok := params[name]
		if !ok {
			return ":" + name
		}
		s, err := literal(v)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return s
	})
	return r, firstErr
}
