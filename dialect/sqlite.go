package dialect

import (
	"github.com/qjebbs/go-sqlf/v4/dialect"
)

var _ Dialect = SQLite{}

// SQLite is the SQLite dialect, for github.com/mattn/go-sqlite3.
type SQLite struct {
	dialect.SQLite
}

// Driver returns the database/sql driver name.
func (SQLite) Driver() string { return "sqlite3" }

// Capabilities returns the capabilities of the SQLite dialect.
func (SQLite) Capabilities() Capabilities {
	return Capabilities{
		SupportsLastInsertID: true,
		SupportsReturning:    true,
	}
}
