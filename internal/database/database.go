package database

import (
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect captures the SQL differences between the supported drivers.
type Dialect struct {
	Name       string // value of DB_DRIVER
	DriverName string // database/sql driver name
	// Returning is true when inserts report the new id via RETURNING.
	Returning bool
	// ForUpdate is appended to a SELECT that must lock the row it reads.
	ForUpdate string
}

var (
	MySQL    = Dialect{Name: "mysql", DriverName: "mysql", ForUpdate: " FOR UPDATE"}
	Postgres = Dialect{Name: "postgres", DriverName: "pgx", Returning: true, ForUpdate: " FOR UPDATE"}
	// SQLite serialises writers on its own and has no row locks.
	SQLite = Dialect{Name: "sqlite3", DriverName: "sqlite3"}
)

// DialectFor resolves a DB_DRIVER value.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case MySQL.Name:
		return MySQL, nil
	case Postgres.Name, "pgx":
		return Postgres, nil
	case SQLite.Name, "sqlite":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
}

// OpenDB creates and configures a connection pool for the given driver
// and DSN, and pings it before returning.
func OpenDB(driver, dsn string) (*sqlx.DB, Dialect, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := sqlx.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, Dialect{}, err
	}

	if dialect == SQLite {
		// One connection keeps ":memory:" databases alive and avoids
		// SQLITE_BUSY between concurrent writers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, Dialect{}, fmt.Errorf("ping %s: %w", dialect.Name, err)
	}

	log.Printf("Database connection pool established successfully (%s)", dialect.Name)
	return db, dialect, nil
}
