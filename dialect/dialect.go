// Package dialect provides the database dialects supported by the executor.
//
// Each dialect wraps the go-sqlf dialect of the same name, which decides
// the bind variable style, and adds the database/sql driver name.
package dialect

import (
	"fmt"

	"github.com/qjebbs/go-sqlf/v4/dialect"
)

// Dialect extends dialect.Dialect with the driver it belongs to.
type Dialect interface {
	dialect.Dialect

	// Driver returns the database/sql driver name.
	Driver() string

	// Capabilities returns the SQL capabilities of the dialect.
	Capabilities() Capabilities
}

// Capabilities represents the SQL capabilities of a dialect.
type Capabilities struct {
	// SupportsLastInsertID indicates whether the driver reports
	// sql.Result.LastInsertId().
	SupportsLastInsertID bool
	// SupportsReturning indicates whether the dialect supports RETURNING clause.
	SupportsReturning bool
}

// ByDriver returns the dialect of a database/sql driver name.
func ByDriver(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return MySQL{}, nil
	case "postgres", "postgresql", "pgx":
		return PostgreSQL{}, nil
	case "sqlite3", "sqlite":
		return SQLite{}, nil
	}
	return nil, fmt.Errorf("unsupported driver %q", driver)
}

// Upgrade attempts to upgrade a sqlf/dialect.Dialect to a Dialect.
func Upgrade(d dialect.Dialect) (Dialect, bool) {
	if dialect, ok := d.(Dialect); ok {
		return dialect, true
	}
	switch v := d.(type) {
	case dialect.PostgreSQL:
		return PostgreSQL{
			PostgreSQL: v,
		}, true
	case dialect.SQLite:
		return SQLite{
			SQLite: v,
		}, true
	case dialect.MySQL:
		return MySQL{
			MySQL: v,
		}, true
	}
	return nil, false
}
