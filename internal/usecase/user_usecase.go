package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"recruitai/internal/domain/user"
	ucuser "recruitai/internal/usecase/user"
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	EnsureProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (user.Profile, error)
}

type Profiles struct {
	svc   *ucuser.Service
	users user.Repository
}

func NewProfileUsecase(users user.Repository) *Profiles {
	return &Profiles{svc: ucuser.NewService(users), users: users}
}

func (u *Profiles) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	return u.svc.GetProfile(ctx, userID)
}

// EnsureProfile creates the caller's profile from the account's sign-up
// details when it does not exist yet.
func (u *Profiles) EnsureProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, ucuser.ErrNotFound
		}
		return user.Profile{}, ucuser.ErrInternal
	}
	return u.svc.EnsureProfile(ctx, usr)
}

func (u *Profiles) UpdateProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (user.Profile, error) {
	return u.svc.UpdateProfile(ctx, userID, in)
}
