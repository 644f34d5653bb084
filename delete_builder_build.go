package qb

import "fmt"

// Render renders the statement.
func (b *DeleteBuilder) Render() (*Statement, error) {
	if err := b.anyError(); err != nil {
		return nil, err
	}
	if b.table == nil {
		return nil, missingClause("delete", "")
	}
	table, err := tableName(b.table)
	if err != nil {
		return nil, err
	}
	if b.where == nil {
		return nil, missingClause("where", "use raw SQL to delete all rows")
	}
	ctx := newRenderCtx(b.opts.keys)
	w := newFragmentWriter(ctx)
	if b.softDelete {
		at, err := ctx.rowValue(b.softDeleteAt, b.softColumn)
		if err != nil {
			return nil, fmt.Errorf("soft delete: %w", err)
		}
		w.WriteString("UPDATE " + tableAs(table, b.alias) + " SET " + b.softColumn + " = ")
		w.WriteFragment(at)
	} else {
		w.WriteString("DELETE FROM " + tableAs(table, b.alias))
	}
	where, err := b.where.render(ctx)
	if err != nil {
		return nil, fmt.Errorf("WHERE: %w", err)
	}
	w.WriteString(" WHERE ")
	w.WriteFragment(where)
	f := w.Fragment()
	s := &Statement{
		Kind:       KindDelete,
		Query:      f.sql,
		Params:     f.params(),
		Table:      table,
		SoftDelete: b.softDelete,
	}
	s.ID, _ = b.where.ID()
	b.debugger.logIfDebug(b.opts.logger, s)
	return s, nil
}

// Build renders the statement and returns the query and params.
func (b *DeleteBuilder) Build() (query string, params Params, err error) {
	s, err := b.Render()
	if err != nil {
		return "", nil, err
	}
	return s.Query, s.Params, nil
}

// SQL renders the statement and returns the query only.
func (b *DeleteBuilder) SQL() (string, error) {
	query, _, err := b.Build()
	return query, err
}

// Debug enables debug mode which logs the interpolated query.
func (b *DeleteBuilder) Debug(name ...string) *DeleteBuilder {
	b.debugger.Debug(name...)
	return b
}
