package dialect

import (
	"github.com/qjebbs/go-sqlf/v4/dialect"
)

var _ Dialect = MySQL{}

// MySQL is the MySQL dialect, for github.com/go-sql-driver/mysql.
type MySQL struct {
	dialect.MySQL
}

// Driver returns the database/sql driver name.
func (MySQL) Driver() string { return "mysql" }

// Capabilities returns the capabilities of the MySQL dialect.
func (MySQL) Capabilities() Capabilities {
	return Capabilities{
		SupportsLastInsertID: true,
		SupportsReturning:    false,
	}
}
