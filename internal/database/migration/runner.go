// Package migration applies versioned SQL files to the account store.
package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"recruitai/internal/database"
)

// Held per transaction on postgres so concurrent instances apply each
// version once.
const lockKey = 746295114

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

// Runner applies V<n>__<name>.sql files from Source in version order and
// records each in schema_migrations with its checksum. A changed file
// that was already applied is an error.
type Runner struct {
	Source fs.FS
	Logger *log.Logger
}

// NewRunner reads migrations from dir on disk. A missing dir means there
// is nothing to apply.
func NewRunner(dir string, logger *log.Logger) Runner {
	return Runner{Source: os.DirFS(strings.TrimSpace(dir)), Logger: logger}
}

// Run returns the number of migrations it applied.
func (r Runner) Run(ctx context.Context, db database.DB) (int, error) {
	if db == nil {
		return 0, errors.New("migration: nil db")
	}

	migs, err := Load(r.Source)
	if err != nil {
		return 0, err
	}
	if len(migs) == 0 {
		return 0, nil
	}

	if _, err := db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`); err != nil {
		return 0, fmt.Errorf("migration: create schema_migrations: %w", err)
	}

	applied, err := appliedChecksums(ctx, db)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, m := range migs {
		if sum, ok := applied[m.Version]; ok {
			if sum != m.Checksum {
				return n, fmt.Errorf("migration checksum mismatch: version=%d name=%s", m.Version, m.Name)
			}
			continue
		}

		did, err := applyOne(ctx, db, m)
		if err != nil {
			return n, err
		}
		if !did {
			continue
		}
		n++
		if r.Logger != nil {
			r.Logger.Printf("[Migration] applied version=%d name=%s", m.Version, m.Name)
		}
	}
	return n, nil
}

// Load reads and orders the migrations in src. Other files are ignored.
func Load(src fs.FS) ([]Migration, error) {
	if src == nil {
		return nil, nil
	}
	entries, err := fs.ReadDir(src, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		sm := fileRe.FindStringSubmatch(name)
		if sm == nil {
			continue
		}
		v, err := strconv.ParseInt(sm[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version: %s", name)
		}

		b, err := fs.ReadFile(src, name)
		if err != nil {
			return nil, err
		}
		body := strings.TrimSpace(string(b))
		if body == "" {
			return nil, fmt.Errorf("empty migration file: %s", name)
		}

		sum := sha256.Sum256([]byte(body))
		migs = append(migs, Migration{
			Version:  v,
			Name:     sm[2],
			Filename: name,
			SQL:      body,
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %d", migs[i].Version)
		}
	}
	return migs, nil
}

func appliedChecksums(ctx context.Context, db database.DB) (map[int64]string, error) {
	rows, err := db.Query(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var v int64
		var sum string
		if err := rows.Scan(&v, &sum); err != nil {
			return nil, err
		}
		out[v] = sum
	}
	return out, rows.Err()
}

// applyOne runs m in its own transaction. It reports false when another
// instance applied the version first.
func applyOne(ctx context.Context, db database.DB, m Migration) (bool, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	// sqlite runs on a single connection, which already serializes us.
	if db.Dialect() == database.DialectPostgres {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(lockKey)); err != nil {
			return false, fmt.Errorf("migration: lock: %w", err)
		}
		var exists int
		err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = $1`, m.Version).Scan(&exists)
		if err != nil {
			return false, err
		}
		if exists > 0 {
			return false, nil
		}
	}

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return false, fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, name, checksum, applied_at) VALUES ($1, $2, $3, $4)`,
		m.Version, m.Name, m.Checksum, time.Now().UTC(),
	); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}
