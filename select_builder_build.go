package qb

import (
	"fmt"
	"strconv"
	"strings"
)

// Render renders the statement.
func (b *SelectBuilder) Render() (*Statement, error) {
	f, err := b.render(newRenderCtx(b.opts.keys))
	if err != nil {
		return nil, err
	}
	s := &Statement{
		Kind:   KindSelect,
		Query:  f.sql,
		Params: f.params(),
	}
	if b.where != nil {
		s.ID, _ = b.where.ID()
	}
	if b.table != nil {
		s.Table, _ = tableName(b.table)
	}
	b.debugger.logIfDebug(b.opts.logger, s)
	return s, nil
}

// Build renders the statement and returns the query and params.
func (b *SelectBuilder) Build() (query string, params Params, err error) {
	s, err := b.Render()
	if err != nil {
		return "", nil, err
	}
	return s.Query, s.Params, nil
}

// SQL renders the statement and returns the query only.
func (b *SelectBuilder) SQL() (string, error) {
	query, _, err := b.Build()
	return query, err
}

// Debug enables debug mode which logs the interpolated query.
func (b *SelectBuilder) Debug(name ...string) *SelectBuilder {
	b.debugger.Debug(name...)
	return b
}

// render renders the statement with the given context.
func (b *SelectBuilder) render(ctx *renderCtx) (fragment, error) {
	if b == nil {
		return fragment{}, nil
	}
	if err := b.anyError(); err != nil {
		return fragment{}, err
	}
	if b.order.state == clauseNone {
		return fragment{}, missingClause("select", "")
	}
	w := newFragmentWriter(ctx)
	sel, err := b.renderColumns(ctx)
	if err != nil {
		return fragment{}, err
	}
	w.WriteFragment(sel)
	if b.table == nil {
		return fragment{}, missingClause("from", "")
	}
	table, err := tableName(b.table)
	if err != nil {
		return fragment{}, err
	}
	w.WriteString(" FROM " + tableAs(table, b.alias))
	for _, j := range b.joins {
		f, err := j.render(ctx)
		if err != nil {
			return fragment{}, err
		}
		w.WriteString(" ")
		w.WriteFragment(f)
	}
	if b.where != nil {
		f, err := b.where.render(ctx)
		if err != nil {
			return fragment{}, fmt.Errorf("WHERE: %w", err)
		}
		w.WriteString(" WHERE ")
		w.WriteFragment(f)
	}
	if len(b.groupBy) > 0 {
		w.WriteString(" GROUP BY " + strings.Join(b.groupBy, ", "))
	}
	if b.having != nil {
		f, err := b.having.render(ctx)
		if err != nil {
			return fragment{}, fmt.Errorf("HAVING: %w", err)
		}
		w.WriteString(" HAVING ")
		w.WriteFragment(f)
	}
	if len(b.orderBy) > 0 {
		w.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.hasLimit {
		w.WriteString(" LIMIT " + strconv.FormatInt(b.limit, 10))
		if b.offset > 0 {
			w.WriteString(" OFFSET " + strconv.FormatInt(b.offset, 10))
		}
	}
	return w.Fragment(), nil
}

func (b *SelectBuilder) renderColumns(ctx *renderCtx) (fragment, error) {
	prefix := "SELECT "
	if b.distinct {
		prefix = "SELECT DISTINCT "
	}
	if len(b.columns) == 0 {
		return rawFragment(prefix + "*"), nil
	}
	cols := make([]fragment, 0, len(b.columns))
	for _, c := range b.columns {
		f, err := ctx.column(c)
		if err != nil {
			return fragment{}, err
		}
		cols = append(cols, f)
	}
	w := newFragmentWriter(ctx)
	w.WriteString(prefix)
	w.WriteFragment(joinFragments(ctx, ", ", cols...))
	return w.Fragment(), nil
}

func (j *join) render(ctx *renderCtx) (fragment, error) {
	table, err := tableName(j.table)
	if err != nil {
		return fragment{}, err
	}
	w := newFragmentWriter(ctx)
	w.WriteString(string(j.kind) + " " + tableAs(table, j.alias))
	if j.kind == JoinCross {
		return w.Fragment(), nil
	}
	on, err := j.on.render(ctx)
	if err != nil {
		return fragment{}, fmt.Errorf("%s %s ON: %w", j.kind, table, err)
	}
	w.WriteString(" ON ")
	w.WriteFragment(on)
	return w.Fragment(), nil
}

func tableAs(table, alias string) string {
	if alias == "" {
		return table
	}
	return table + " AS " + alias
}
