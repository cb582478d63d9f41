package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"recruitai/internal/domain/user"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
	ErrInternal     = errors.New("internal error")
)

const (
	fallbackFullName = "User"
	fallbackCompany  = "Unknown Company"
)

type UpdateProfileInput struct {
	FullName *string
	Company  *string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	p, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, ErrNotFound
		}
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

// EnsureProfile creates the profile of u from its sign-up details unless
// one already exists, and returns the stored profile.
func (s *Service) EnsureProfile(ctx context.Context, u user.User) (user.Profile, error) {
	p, err := s.users.CreateProfileIfAbsent(ctx, ProfileFromUser(u))
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

// UpdateProfile merges the provided fields into the stored profile. Blank
// values are rejected; absent fields are left untouched.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.Profile, error) {
	patch := user.ProfilePatch{}
	if in.FullName != nil {
		v := strings.TrimSpace(*in.FullName)
		if v == "" {
			return user.Profile{}, ErrInvalidInput
		}
		patch.FullName = &v
	}
	if in.Company != nil {
		v := strings.TrimSpace(*in.Company)
		if v == "" {
			return user.Profile{}, ErrInvalidInput
		}
		patch.Company = &v
	}
	if patch.IsEmpty() {
		return user.Profile{}, ErrInvalidInput
	}

	p, err := s.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, ErrNotFound
		}
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

// ProfileFromUser derives the initial profile: the sign-up name or the
// email local part, and the sign-up company.
func ProfileFromUser(u user.User) user.Profile {
	name := strings.TrimSpace(u.FullName)
	if name == "" {
		if i := strings.Index(u.Email, "@"); i > 0 {
			name = u.Email[:i]
		}
	}
	if name == "" {
		name = fallbackFullName
	}
	company := strings.TrimSpace(u.Company)
	if company == "" {
		company = fallbackCompany
	}
	return user.Profile{ID: u.ID, Email: u.Email, FullName: name, Company: company}
}
