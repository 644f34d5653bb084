package dialect

import (
	"github.com/qjebbs/go-sqlf/v4/dialect"
)

var _ Dialect = PostgreSQL{}

// PostgreSQL is the PostgreSQL dialect, for github.com/lib/pq.
type PostgreSQL struct {
	dialect.PostgreSQL
}

// Driver returns the database/sql driver name.
func (PostgreSQL) Driver() string { return "postgres" }

// Capabilities returns the capabilities of the PostgreSQL dialect.
//
// lib/pq does not implement LastInsertId, use RETURNING instead.
func (PostgreSQL) Capabilities() Capabilities {
	return Capabilities{
		SupportsLastInsertID: false,
		SupportsReturning:    true,
	}
}
