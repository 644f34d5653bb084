// Package executor executes the statements rendered by qb on database/sql.
//
// Named placeholders are bound to the positional bind variables of the
// dialect by go-sqlf. Empty statements, like an UPDATE with no changed
// field, are skipped without a round trip to the database.
package executor
