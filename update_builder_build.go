package qb

import "fmt"

// Render renders the statement. It's empty when no field changed.
func (b *UpdateBuilder) Render() (*Statement, error) {
	if err := b.anyError(); err != nil {
		return nil, err
	}
	if b.table == nil {
		return nil, missingClause("update", "")
	}
	table, err := tableName(b.table)
	if err != nil {
		return nil, err
	}
	if !b.hasSet {
		return nil, missingClause("set", "e.g. Set(qb.Change(\"column\", old, new))")
	}
	if b.where == nil {
		return nil, missingClause("where", "UPDATE without WHERE is not allowed")
	}
	ctx := newRenderCtx(b.opts.keys)
	s := &Statement{Kind: KindUpdate, Table: table}
	s.ID, _ = b.where.ID()

	var set fragment
	if b.isRaw {
		set = rawFragment(b.rawSet)
	} else {
		row, err := evaluateFields(ctx, b.fields, nil)
		if err != nil {
			return nil, err
		}
		assignments := make([]fragment, len(row.columns))
		for i, col := range row.columns {
			w := newFragmentWriter(ctx)
			w.WriteString(col + " = ")
			w.WriteFragment(row.values[i])
			assignments[i] = w.Fragment()
		}
		set = joinFragments(ctx, ", ", assignments...)
		s.Audit = row.audit
	}
	// rendered even when nothing changed, so that a broken WHERE is
	// reported either way
	where, err := b.where.render(ctx)
	if err != nil {
		return nil, fmt.Errorf("WHERE: %w", err)
	}
	if set.sql == "" {
		s.Audit = nil
		b.debugger.logIfDebug(b.opts.logger, s)
		return s, nil
	}

	w := newFragmentWriter(ctx)
	w.WriteString("UPDATE " + tableAs(table, b.alias) + " SET ")
	w.WriteFragment(set)
	w.WriteString(" WHERE ")
	w.WriteFragment(where)
	f := w.Fragment()
	s.Query = f.sql
	s.Params = f.params()
	b.debugger.logIfDebug(b.opts.logger, s)
	return s, nil
}

// Build renders the statement and returns the query and params.
func (b *UpdateBuilder) Build() (query string, params Params, err error) {
	s, err := b.Render()
	if err != nil {
		return "", nil, err
	}
	return s.Query, s.Params, nil
}

// SQL renders the statement and returns the query only.
func (b *UpdateBuilder) SQL() (string, error) {
	query, _, err := b.Build()
	return query, err
}

// Debug enables debug mode which logs the interpolated query.
func (b *UpdateBuilder) Debug(name ...string) *UpdateBuilder {
	b.debugger.Debug(name...)
	return b
}
