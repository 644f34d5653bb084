package qb

import "testing"

func TestTransitions(t *testing.T) {
	testCases := []struct {
		table             transitions
		next, state, last clause
		want              bool
	}{
		{selectTransitions, clauseSelect, clauseNone, clauseNone, true},
		{selectTransitions, clauseFrom, clauseSelect, clauseSelect, true},
		{selectTransitions, clauseJoin, clauseFrom, clauseAs, true},
		{selectTransitions, clauseOn, clauseJoin, clauseAs, true},
		{selectTransitions, clauseOn, clauseJoin, clauseOn, false},
		{selectTransitions, clauseOr, clauseJoin, clauseOn, true},
		{selectTransitions, clauseOr, clauseHaving, clauseAnd, true},
		{selectTransitions, clauseHaving, clauseOrderBy, clauseOrderBy, true},
		{selectTransitions, clauseOrderBy, clauseHaving, clauseHaving, false},
		{selectTransitions, clauseGroupBy, clauseLimit, clauseLimit, false},
		{selectTransitions, clauseOffset, clauseLimit, clauseLimit, true},
		{selectTransitions, clauseOffset, clauseWhere, clauseWhere, false},
		{insertTransitions, clauseValues, clauseInsert, clauseInsert, true},
		{insertTransitions, clauseValues, clauseInsert, clauseColumns, true},
		{insertTransitions, clauseColumns, clauseInsert, clauseColumns, false},
		{insertTransitions, clauseColumns, clauseValues, clauseValues, false},
		{updateTransitions, clauseSet, clauseUpdate, clauseAs, true},
		{updateTransitions, clauseWhere, clauseUpdate, clauseUpdate, false},
		{updateTransitions, clauseOr, clauseWhere, clauseAnd, true},
		{deleteTransitions, clauseWhere, clauseDelete, clauseAs, true},
		{deleteTransitions, clauseAnd, clauseDelete, clauseDelete, false},
	}
	for _, tc := range testCases {
		if got := tc.table.allowed(tc.next, tc.state, tc.last); got != tc.want {
			t.Errorf("%s after %s/%s: got %v, want %v", tc.next, tc.state, tc.last, got, tc.want)
		}
	}
}

func TestOrderTracker(t *testing.T) {
	o := &orderTracker{table: selectTransitions}
	steps := []struct {
		c     clause
		opens bool
	}{
		{clauseSelect, true},
		{clauseFrom, true},
		{clauseAs, false},
		{clauseJoin, true},
		{clauseOn, false},
		{clauseAnd, false},
		{clauseWhere, true},
	}
	for _, s := range steps {
		if !o.check(s.c, s.opens) {
			t.Fatalf("%s rejected: %v", s.c, o.err)
		}
	}
	if o.state != clauseWhere || o.last != clauseWhere {
		t.Errorf("got state %s, last %s", o.state, o.last)
	}
	// WHERE can never be followed by ON, whatever the last call
	if o.check(clauseOn, false) {
		t.Fatal("ON after WHERE accepted")
	}
	e, ok := o.err.(*OrderError)
	if !ok || e.Clause != "ON" || e.After != "WHERE" {
		t.Errorf("got %v", o.err)
	}
	// later calls are ignored
	if o.check(clauseGroupBy, true) || o.state != clauseWhere {
		t.Errorf("call accepted after an error")
	}
}

func TestOrderTrackerNamesLastCall(t *testing.T) {
	o := &orderTracker{table: selectTransitions}
	o.check(clauseSelect, true)
	o.check(clauseFrom, true)
	o.check(clauseJoin, true)
	o.check(clauseOn, false)
	if o.check(clauseAs, false) {
		t.Fatal("AS after ON accepted")
	}
	e := o.err.(*OrderError)
	if e.Clause != "AS" || e.After != "ON" {
		t.Errorf("got %v", e)
	}
}
