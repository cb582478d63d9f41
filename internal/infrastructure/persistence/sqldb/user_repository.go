// Package sqldb stores accounts and recruiter profiles in postgres or
// sqlite through prepared statements.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"recruitai/internal/database"
	"recruitai/internal/domain/user"
)

const (
	qCreateUser = `INSERT INTO users (id, email, password_hash, full_name, company, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	qUserByID      = `SELECT id, email, password_hash, full_name, company, created_at, updated_at FROM users WHERE id = $1`
	qUserByEmail   = `SELECT id, email, password_hash, full_name, company, created_at, updated_at FROM users WHERE email = $1`
	qEmailExists   = `SELECT COUNT(1) FROM users WHERE email = $1`
	qProfileByID   = `SELECT id, email, full_name, company, created_at, updated_at FROM user_profiles WHERE id = $1`
	qCreateProfile = `INSERT INTO user_profiles (id, email, full_name, company, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`
	qUpdateProfile = `UPDATE user_profiles
SET full_name = COALESCE($1, full_name), company = COALESCE($2, company), updated_at = $3
WHERE id = $4`
)

type UserRepository struct {
	db  database.DB
	now func() time.Time

	stmtCreateUser    *sql.Stmt
	stmtUserByID      *sql.Stmt
	stmtUserByEmail   *sql.Stmt
	stmtEmailExists   *sql.Stmt
	stmtProfileByID   *sql.Stmt
	stmtCreateProfile *sql.Stmt
	stmtUpdateProfile *sql.Stmt
}

func NewUserRepository(ctx context.Context, db database.DB) (*UserRepository, error) {
	if db == nil || db.SQLDB() == nil {
		return nil, errors.New("sqldb: nil db")
	}
	r := &UserRepository{db: db, now: time.Now}

	prepare := func(dst **sql.Stmt, q string) error {
		s, err := db.SQLDB().PrepareContext(ctx, database.Rebind(db.Dialect(), q))
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}
	for _, p := range []struct {
		dst **sql.Stmt
		q   string
	}{
		{&r.stmtCreateUser, qCreateUser},
		{&r.stmtUserByID, qUserByID},
		{&r.stmtUserByEmail, qUserByEmail},
		{&r.stmtEmailExists, qEmailExists},
		{&r.stmtProfileByID, qProfileByID},
		{&r.stmtCreateProfile, qCreateProfile},
		{&r.stmtUpdateProfile, qUpdateProfile},
	} {
		if err := prepare(p.dst, p.q); err != nil {
			_ = r.Close()
			return nil, err
		}
	}
	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	for _, s := range []*sql.Stmt{
		r.stmtCreateUser,
		r.stmtUserByID,
		r.stmtUserByEmail,
		r.stmtEmailExists,
		r.stmtProfileByID,
		r.stmtCreateProfile,
		r.stmtUpdateProfile,
	} {
		if s == nil {
			continue
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *UserRepository) CreateUser(ctx context.Context, u user.User) error {
	now := r.now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	_, err := r.stmtCreateUser.ExecContext(ctx, u.ID, u.Email, u.PasswordHash, u.FullName, u.Company, u.CreatedAt, u.UpdatedAt)
	if err == nil {
		return nil
	}
	// Unique violations differ per driver; the email lookup does not.
	if taken, exErr := r.ExistsByEmail(ctx, u.Email); exErr == nil && taken {
		return user.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.stmtUserByID.QueryRowContext(ctx, id))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.stmtUserByEmail.QueryRowContext(ctx, email))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.stmtEmailExists.QueryRowContext(ctx, email).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) GetProfile(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	return scanProfile(r.stmtProfileByID.QueryRowContext(ctx, id))
}

func (r *UserRepository) CreateProfileIfAbsent(ctx context.Context, p user.Profile) (user.Profile, error) {
	now := r.now().UTC()
	if _, err := r.stmtCreateProfile.ExecContext(ctx, p.ID, p.Email, p.FullName, p.Company, now, now); err != nil {
		return user.Profile{}, err
	}
	return r.GetProfile(ctx, p.ID)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, patch user.ProfilePatch) (user.Profile, error) {
	res, err := r.stmtUpdateProfile.ExecContext(ctx, patch.FullName, patch.Company, r.now().UTC(), id)
	if err != nil {
		return user.Profile{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.Profile{}, user.ErrNotFound
	}
	return r.GetProfile(ctx, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Company, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func scanProfile(row scanner) (user.Profile, error) {
	var p user.Profile
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Company, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}
