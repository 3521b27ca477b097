package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect captures the differences between the supported SQL engines so the
// rest of the code can write one flavor of SQL
type Dialect interface {
	// DriverName is the name the driver registered with database/sql
	DriverName() string

	// DSN builds the connection string from config
	DSN(config DialectConfig) string

	// RewriteQuery translates ? placeholders into the engine's syntax
	RewriteQuery(query string) string

	// SupportsLastInsertId reports whether inserts can use Result.LastInsertId
	SupportsLastInsertId() bool

	// ConfigureConnection applies per-engine pool and pragma settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory holding this dialect's migrations
	MigrationsSubdir() string

	// CreateMigrationsTableQuery is the bootstrap DDL for the migration ledger
	CreateMigrationsTableQuery() string
}

// DialectConfig carries the connection settings a dialect may need
type DialectConfig struct {
	// Path is the SQLite database file
	Path string

	// URL is the Postgres or MySQL connection string
	URL string
}

// placeholderRegexp matches ? placeholders
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

// configurePool applies the shared connection pool settings
func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
}
