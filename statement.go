package qb

// Kind is the kind of a statement.
type Kind string

// statement kinds
const (
	KindSelect Kind = "select"
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// Diff is the audit record of an updated field.
type Diff struct {
	Field string
	New   any
	Old   any
}

// Statement is a rendered statement.
//
// A statement with an empty Query means there is nothing to execute,
// e.g. none of the fields of an UPDATE changed. It's not an error, but it
// must not be sent to the database.
type Statement struct {
	Kind   Kind
	Query  string
	Params Params
	// Table is the target table of INSERT, UPDATE and DELETE.
	Table string
	// ID is the value the statement compared against the "id" column,
	// nil if none.
	ID any
	// Audit holds the changed fields of an UPDATE, in order.
	Audit []Diff
	// SoftDelete reports whether the DELETE was rendered as an UPDATE.
	SoftDelete bool
}

// Empty reports whether there is nothing to execute.
func (s *Statement) Empty() bool {
	return s == nil || s.Query == ""
}
