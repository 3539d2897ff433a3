package database

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Connect opens the database for driver ("sqlite" or "pgx") using dsn.
func Connect(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s", driver)
	}
	if driver == "sqlite" {
		// SQLite serializes writers; a single connection also keeps
		// in-memory databases alive for the life of the pool.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
	}
	return db, nil
}
