// Package sqlite backs the account store with an embedded database file,
// for single-node deployments that do not run postgres.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"recruitai/internal/database"
)

// Open opens (creating if needed) the database at path. ":memory:" gives a
// private in-process database.
func Open(ctx context.Context, path string) (database.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite: empty path")
	}

	dsn := "file::memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	}

	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: a single writer, and an in-memory database lives
	// only as long as its connection.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := sqldb.PingContext(pingCtx); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return database.Wrap(sqldb, database.DialectSQLite, nil), nil
}
