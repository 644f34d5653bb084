package executor

import (
	"context"

	"github.com/qjebbs/go-qb"
)

// Result is the result of Exec.
type Result struct {
	RowsAffected int64
	// LastInsertID is zero if the driver doesn't report it.
	LastInsertID int64
	// InsertedID is the value returned by "INSERT ... RETURNING", for
	// dialects without LastInsertId. It's set even if the id isn't an
	// integer, e.g. a UUID.
	InsertedID any
	// Skipped tells the statement was empty and not sent to the database,
	// e.g. an UPDATE with no changed field.
	Skipped bool
}

// Exec renders r and executes it against the database.
func Exec(ctx context.Context, db QueryAble, r qb.Renderer, options ...Option) (*Result, error) {
	c := callerAt(1)
	res, err := exec(ctx, db, r, c, options...)
	if err != nil {
		return nil, wrapErr("Exec", c, err)
	}
	return res, nil
}

func exec(ctx context.Context, db QueryAble, r qb.Renderer, c caller, options ...Option) (*Result, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	opt := mergeOptions(options...)
	if opt.err != nil {
		return nil, opt.err
	}
	var debugger *debugger
	if opt.debug {
		debugger = newDebugger("Exec", r, opt)
		defer debugger.print()
	}
	s, err := r.Render()
	if err != nil {
		return nil, err
	}
	if s.Empty() {
		if debugger != nil {
			debugger.onSkipped()
		}
		return &Result{Skipped: true}, nil
	}
	if debugger != nil {
		debugger.onRendered(s)
	}
	query, args, err := Bind(ctx, opt.dialect, s.Query, s.Params)
	if err != nil {
		return nil, err
	}
	var res *Result
	if opt.returnsID(s) {
		res, err = execReturning(ctx, db, query+" RETURNING "+opt.returning, args)
	} else {
		res, err = execResult(ctx, db, s, query, args, opt)
	}
	if debugger != nil {
		debugger.onExec(err)
	}
	if err != nil {
		return nil, err
	}
	opt.dispatch(ctx, s, res, c)
	return res, nil
}

func execResult(ctx context.Context, db QueryAble, s *qb.Statement, query string, args []any, opt *Options) (*Result, error) {
	sr, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	if res.RowsAffected, err = sr.RowsAffected(); err != nil {
		return nil, err
	}
	if s.Kind == qb.KindInsert && opt.dialect.Capabilities().SupportsLastInsertID {
		if res.LastInsertID, err = sr.LastInsertId(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// execReturning executes an INSERT ... RETURNING of a single row.
func execReturning(ctx context.Context, db QueryAble, query string, args []any) (*Result, error) {
	var id any
	if err := db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, err
	}
	res := &Result{RowsAffected: 1, InsertedID: id}
	if n, ok := id.(int64); ok {
		res.LastInsertID = n
	}
	return res, nil
}

// returnsID reports whether the inserted id of s is read with RETURNING.
func (o *Options) returnsID(s *qb.Statement) bool {
	caps := o.dialect.Capabilities()
	return s.Kind == qb.KindInsert && o.returning != "" &&
		!caps.SupportsLastInsertID && caps.SupportsReturning
}
