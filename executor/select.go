package executor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"github.com/qjebbs/go-qb"
)

// Select renders r, executes the query and scans the rows into a slice of T.
//
// T is a struct or a pointer to struct. Columns are matched against the
// `qb:"column"` tags of its fields, including fields of embedded structs.
// Columns with no matching field are dropped.
//
//	type User struct {
//		ID   int64  `qb:"id"`
//		Name string `qb:"name"`
//	}
func Select[T any](ctx context.Context, db QueryAble, r qb.Renderer, options ...Option) ([]T, error) {
	c := callerAt(1)
	res, err := _select[T](ctx, db, r, options...)
	if err != nil {
		var zero T
		return nil, wrapErr(fmt.Sprintf("Select(%T)", zero), c, err)
	}
	return res, nil
}

// Get is like Select, but returns the first row only.
// It returns sql.ErrNoRows if there is none.
func Get[T any](ctx context.Context, db QueryAble, r qb.Renderer, options ...Option) (T, error) {
	c := callerAt(1)
	var zero T
	res, err := _select[T](ctx, db, r, options...)
	if err != nil {
		return zero, wrapErr(fmt.Sprintf("Get(%T)", zero), c, err)
	}
	if len(res) == 0 {
		return zero, sql.ErrNoRows
	}
	return res[0], nil
}

func _select[T any](ctx context.Context, db QueryAble, r qb.Renderer, options ...Option) ([]T, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	isPtr := typ.Kind() == reflect.Ptr
	if isPtr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, errors.New("value must be a struct or a pointer to struct")
	}
	info, err := getStructInfo(typ)
	if err != nil {
		return nil, err
	}
	opt := mergeOptions(options...)
	if opt.err != nil {
		return nil, opt.err
	}
	var debugger *debugger
	if opt.debug {
		var zero T
		debugger = newDebugger("Select", zero, opt)
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
	var results []T
	for rows.Next() {
		dest := reflect.New(typ)
		if err := rows.Scan(info.destinations(dest.Elem(), columns)...); err != nil {
			return nil, err
		}
		if isPtr {
			results = append(results, dest.Interface().(T))
		} else {
			results = append(results, dest.Elem().Interface().(T))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
