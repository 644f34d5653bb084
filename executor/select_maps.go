package executor

import (
	"context"
	"fmt"

	"github.com/qjebbs/go-qb"
)

// SelectMaps renders r, executes the query and returns every row as a map
// of column name to value. []byte values are converted to strings.
func SelectMaps(ctx context.Context, db QueryAble, r qb.Renderer, options ...Option) ([]map[string]any, error) {
	c := callerAt(1)
	res, err := selectMaps(ctx, db, r, options...)
	if err != nil {
		return nil, wrapErr("SelectMaps", c, err)
	}
	return res, nil
}

func selectMaps(ctx context.Context, db QueryAble, r qb.Renderer, options ...Option) ([]map[string]any, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	opt := mergeOptions(options...)
	if opt.err != nil {
		return nil, opt.err
	}
	var debugger *debugger
	if opt.debug {
		debugger = newDebugger("SelectMaps", r, opt)
		defer debugger.print()
	}
	s, err := r.Render()
	if err != nil {
		return nil, err
	}
	if s.Kind != qb.KindSelect {
		return nil, fmt.Errorf("cannot scan rows of %s statement", s.Kind)
	}
	if debugger != nil {
		debugger.onRendered(s)
	}
	query, args, err := Bind(ctx, opt.dialect, s.Query, s.Params)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if debugger != nil {
		debugger.onExec(err)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		dests := make([]any, len(columns))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
