package database

import (
	"context"
	"database/sql"
	"errors"
)

var errClosed = errors.New("database: not open")

// SQL adapts a *sql.DB to DB. Queries use $N placeholders and are rebound
// for the dialect before they reach the driver.
type SQL struct {
	db      *sql.DB
	dialect string
	onClose func()
}

// Wrap takes ownership of db. onClose, if set, runs after db is closed.
func Wrap(db *sql.DB, dialect string, onClose func()) *SQL {
	return &SQL{db: db, dialect: dialect, onClose: onClose}
}

func (s *SQL) rebind(q string) string { return Rebind(s.dialect, q) }

func (s *SQL) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errClosed
	}
	return s.db.PingContext(ctx)
}

func (s *SQL) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.onClose != nil {
		s.onClose()
	}
	return err
}

func (s *SQL) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if s == nil || s.db == nil {
		return 0, errClosed
	}
	return rowsAffected(s.db.ExecContext(ctx, s.rebind(query), args...))
}

func (s *SQL) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	if s == nil || s.db == nil {
		return nil, errClosed
	}
	r, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows: r}, nil
}

func (s *SQL) QueryRow(ctx context.Context, query string, args ...any) Row {
	if s == nil || s.db == nil {
		return errRow{err: errClosed}
	}
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

func (s *SQL) Begin(ctx context.Context) (Tx, error) {
	if s == nil || s.db == nil {
		return nil, errClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return sqlTx{tx: tx, dialect: s.dialect}, nil
}

func (s *SQL) Dialect() string {
	if s == nil {
		return ""
	}
	return s.dialect
}

func (s *SQL) SQLDB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}

func rowsAffected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	// Some drivers cannot report it; that is not a failed statement.
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

type sqlTx struct {
	tx      *sql.Tx
	dialect string
}

func (t sqlTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return rowsAffected(t.tx.ExecContext(ctx, Rebind(t.dialect, query), args...))
}

func (t sqlTx) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	r, err := t.tx.QueryContext(ctx, Rebind(t.dialect, query), args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows: r}, nil
}

func (t sqlTx) QueryRow(ctx context.Context, query string, args ...any) Row {
	return t.tx.QueryRowContext(ctx, Rebind(t.dialect, query), args...)
}

func (t sqlTx) Commit(context.Context) error   { return t.tx.Commit() }
func (t sqlTx) Rollback(context.Context) error { return t.tx.Rollback() }

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Close()                 { _ = r.rows.Close() }
func (r sqlRows) Next() bool             { return r.rows.Next() }
func (r sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r sqlRows) Err() error             { return r.rows.Err() }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
