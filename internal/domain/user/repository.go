package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Repository interface {
	// CreateUser fails with ErrEmailTaken when the email is in use.
	CreateUser(ctx context.Context, u User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	GetProfile(ctx context.Context, id uuid.UUID) (Profile, error)
	// CreateProfileIfAbsent inserts p unless a profile with the same id
	// exists and returns the stored row either way.
	CreateProfileIfAbsent(ctx context.Context, p Profile) (Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (Profile, error)
}
