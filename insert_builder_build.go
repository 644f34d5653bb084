package qb

import "strings"

// Render renders the statement. It's empty when no field is accepted.
func (b *InsertBuilder) Render() (*Statement, error) {
	if err := b.anyError(); err != nil {
		return nil, err
	}
	if b.table == nil {
		return nil, missingClause("insert", "")
	}
	table, err := tableName(b.table)
	if err != nil {
		return nil, err
	}
	if !b.hasValues {
		return nil, missingClause("values", "e.g. Values(qb.Value(\"column\", value))")
	}
	ctx := newRenderCtx(b.opts.keys)
	s := &Statement{Kind: KindInsert, Table: table}
	if b.rawRow {
		s.Query = "INSERT INTO " + table
		if len(b.columns) > 0 {
			s.Query += " (" + strings.Join(b.columns, ", ") + ")"
		}
		s.Query += " VALUES (" + b.rawValues + ")"
		s.Params = Params{}
		b.debugger.logIfDebug(b.opts.logger, s)
		return s, nil
	}
	row, err := evaluateFields(ctx, b.fields, b.columns)
	if err != nil {
		return nil, err
	}
	if row.empty() {
		b.debugger.logIfDebug(b.opts.logger, s)
		return s, nil
	}
	w := newFragmentWriter(ctx)
	w.WriteString("INSERT INTO " + table + " (" + strings.Join(row.columns, ", ") + ") VALUES (")
	w.WriteFragment(joinFragments(ctx, ", ", row.values...))
	w.WriteString(")")
	f := w.Fragment()
	s.Query = f.sql
	s.Params = f.params()
	b.debugger.logIfDebug(b.opts.logger, s)
	return s, nil
}

// Build renders the statement and returns the query and params.
func (b *InsertBuilder) Build() (query string, params Params, err error) {
	s, err := b.Render()
	if err != nil {
		return "", nil, err
	}
	return s.Query, s.Params, nil
}

// SQL renders the statement and returns the query only.
func (b *InsertBuilder) SQL() (string, error) {
	query, _, err := b.Build()
	return query, err
}

// Debug enables debug mode which logs the interpolated query.
func (b *InsertBuilder) Debug(name ...string) *InsertBuilder {
	b.debugger.Debug(name...)
	return b
}
