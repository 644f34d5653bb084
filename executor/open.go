package executor

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // mysql driver
	_ "github.com/lib/pq"              // postgres driver
	_ "github.com/mattn/go-sqlite3"    // sqlite3 driver

	"github.com/qjebbs/go-qb/dialect"
)

// Open opens and pings a database of driver "mysql", "postgres" or
// "sqlite3", and returns the dialect to execute statements with.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, dialect.Dialect, error) {
	d, err := dialect.ByDriver(driver)
	if err != nil {
		return nil, nil, err
	}
	db, err := sql.Open(d.Driver(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", d.Driver(), err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("connecting to %s: %w", d.Driver(), err)
	}
	return db, d, nil
}
