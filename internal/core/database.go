package core

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Database wraps sql.DB with additional functionality
type Database struct {
	*sql.DB
	logger *Logger
}

// OpenDatabase opens and pings the sqlite database at path.
// Use ":memory:" for an in-memory database.
func OpenDatabase(path string, logger *Logger) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, NewDatabaseError("failed to open database", err)
	}

	// A single connection keeps ":memory:" databases shared across queries.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	wrapped := NewDatabase(db, logger)
	if err := wrapped.PingWithTimeout(5 * time.Second); err != nil {
		db.Close()
		return nil, NewDatabaseError("failed to ping database", err)
	}

	return wrapped, nil
}

// NewDatabase creates a new database wrapper
func NewDatabase(db *sql.DB, logger *Logger) *Database {
	return &Database{
		DB:     db,
		logger: logger,
	}
}

// Transaction executes a function within a database transaction
func (db *Database) Transaction(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)
	return err
}

// PingWithTimeout pings the database with a timeout
func (db *Database) PingWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return db.PingContext(ctx)
}

// ExecWithTimeout executes a command with a timeout
func (db *Database) ExecWithTimeout(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return db.ExecContext(queryCtx, query, args...)
}

// Close closes the database connection
func (db *Database) Close() error {
	db.logger.Info("Closing database connection")
	return db.DB.Close()
}
