package qb

import (
	"strings"

	"github.com/qjebbs/go-qb/internal/util"
)

// clause is a builder call tracked by the call-order rules.
type clause string

// clauses
const (
	clauseNone    clause = ""
	clauseSelect  clause = "select"
	clauseFrom    clause = "from"
	clauseAs      clause = "as"
	clauseJoin    clause = "join"
	clauseOn      clause = "on"
	clauseAnd     clause = "and"
	clauseOr      clause = "or"
	clauseWhere   clause = "where"
	clauseGroupBy clause = "groupBy"
	clauseOrderBy clause = "orderBy"
	clauseHaving  clause = "having"
	clauseLimit   clause = "limit"
	clauseOffset  clause = "offset"
	clauseInsert  clause = "insert"
	clauseColumns clause = "columns"
	clauseValues  clause = "values"
	clauseUpdate  clause = "update"
	clauseSet     clause = "set"
	clauseDelete  clause = "delete"
)

func (c clause) String() string {
	return strings.ToUpper(string(c))
}

// transitions lists, for every clause, the states it may follow and, per
// state, the last calls it may follow.
//
// A state is the last clause that opened a section of the statement
// (FROM, JOIN, WHERE...), while calls like AS, ON, AND and OR only change
// the last call.
type transitions map[clause]map[clause][]clause

// allowed reports whether next may follow the call last made in state.
func (t transitions) allowed(next, state, last clause) bool {
	return util.Index(t[next][state], last) >= 0
}

var joinTail = []clause{clauseJoin, clauseAs, clauseOn, clauseAnd, clauseOr}

var selectTransitions = transitions{
	clauseSelect: {
		clauseNone: {clauseNone},
	},
	clauseFrom: {
		clauseSelect: {clauseSelect},
	},
	clauseAs: {
		clauseFrom: {clauseFrom},
		clauseJoin: {clauseJoin},
	},
	clauseJoin: {
		clauseFrom: {clauseFrom, clauseAs},
		clauseJoin: joinTail,
	},
	clauseOn: {
		clauseJoin: {clauseJoin, clauseAs},
	},
	clauseAnd: {
		clauseJoin:   {clauseOn, clauseAnd, clauseOr},
		clauseWhere:  {clauseWhere, clauseAnd, clauseOr},
		clauseHaving: {clauseHaving, clauseAnd, clauseOr},
	},
	clauseWhere: {
		clauseFrom: {clauseFrom, clauseAs},
		clauseJoin: joinTail,
	},
	clauseGroupBy: {
		clauseFrom:  {clauseFrom, clauseAs},
		clauseJoin:  joinTail,
		clauseWhere: {clauseWhere, clauseAnd, clauseOr},
	},
	clauseOrderBy: {
		clauseFrom:    {clauseFrom, clauseAs},
		clauseJoin:    joinTail,
		clauseWhere:   {clauseWhere, clauseAnd, clauseOr},
		clauseGroupBy: {clauseGroupBy},
	},
	clauseHaving: {
		clauseFrom:    {clauseFrom, clauseAs},
		clauseJoin:    joinTail,
		clauseWhere:   {clauseWhere, clauseAnd, clauseOr},
		clauseGroupBy: {clauseGroupBy},
		clauseOrderBy: {clauseOrderBy},
	},
	clauseLimit: {
		clauseFrom:    {clauseFrom, clauseAs},
		clauseJoin:    joinTail,
		clauseWhere:   {clauseWhere, clauseAnd, clauseOr},
		clauseGroupBy: {clauseGroupBy},
		clauseOrderBy: {clauseOrderBy},
		clauseHaving:  {clauseHaving, clauseAnd, clauseOr},
	},
	clauseOffset: {
		clauseLimit: {clauseLimit},
	},
}

var insertTransitions = transitions{
	clauseInsert: {
		clauseNone: {clauseNone},
	},
	clauseColumns: {
		clauseInsert: {clauseInsert},
	},
	clauseValues: {
		clauseInsert: {clauseInsert, clauseColumns},
	},
}

var updateTransitions = transitions{
	clauseUpdate: {
		clauseNone: {clauseNone},
	},
	clauseAs: {
		clauseUpdate: {clauseUpdate},
	},
	clauseSet: {
		clauseUpdate: {clauseUpdate, clauseAs},
	},
	clauseWhere: {
		clauseSet: {clauseSet},
	},
	clauseAnd: {
		clauseWhere: {clauseWhere, clauseAnd, clauseOr},
	},
}

var deleteTransitions = transitions{
	clauseDelete: {
		clauseNone: {clauseNone},
	},
	clauseAs: {
		clauseDelete: {clauseDelete},
	},
	clauseWhere: {
		clauseDelete: {clauseDelete, clauseAs},
	},
	clauseAnd: {
		clauseWhere: {clauseWhere, clauseAnd, clauseOr},
	},
}

func init() {
	// OR is legal wherever AND is.
	for _, t := range []transitions{selectTransitions, updateTransitions, deleteTransitions} {
		t[clauseOr] = t[clauseAnd]
	}
}

// orderTracker validates the calls made on a builder.
type orderTracker struct {
	table transitions
	state clause
	last  clause
	err   error
}

// check validates next. If it's legal, the tracker moves on and reports
// true. Otherwise the error is recorded, and every later call is
// rejected too.
//
// opens tells whether next starts a new state, or only changes the last
// call within the current one.
func (o *orderTracker) check(next clause, opens bool) bool {
	if o.err != nil {
		return false
	}
	if !o.table.allowed(next, o.state, o.last) {
		o.err = o.violation(next)
		return false
	}
	if opens {
		o.state = next
	}
	o.last = next
	return true
}

// violation names the clause next illegally follows: the current state
// when next can't follow it at all, the last call otherwise.
func (o *orderTracker) violation(next clause) *OrderError {
	after := o.last
	if _, ok := o.table[next][o.state]; !ok {
		after = o.state
	}
	e := &OrderError{Clause: next.String()}
	if after != clauseNone {
		e.After = after.String()
	}
	return e
}
