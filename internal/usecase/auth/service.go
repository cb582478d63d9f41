// Package auth checks account credentials. Sessions and tokens live one
// layer up.
package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"recruitai/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const (
	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	MaxPasswordBytes = 72
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Company  string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	cost  int
	now   func() time.Time

	// decoy is compared against when the email is unknown so both
	// failure paths pay for one bcrypt comparison.
	decoy []byte
}

type Option func(*Service)

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

func NewService(users user.Repository, opts ...Option) *Service {
	s := &Service{users: users, cost: bcrypt.DefaultCost, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.decoy, _ = bcrypt.GenerateFromPassword([]byte("decoy-password"), s.cost)
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || ValidatePassword(in.Password) != nil {
		return user.User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	now := s.now().UTC()
	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Company:      strings.TrimSpace(in.Company),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	u.PasswordHash = ""
	return u, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" || len(in.Password) > MaxPasswordBytes {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, user.ErrNotFound):
		_ = bcrypt.CompareHashAndPassword(s.decoy, []byte(in.Password))
		return user.User{}, ErrInvalidCredentials
	case err != nil:
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	u.PasswordHash = ""
	return u, nil
}

// NormalizeEmail lowercases and trims an address, returning "" when it
// does not parse as a bare address.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ""
	}
	return email
}

func ValidatePassword(pw string) error {
	if len(strings.TrimSpace(pw)) < MinPasswordLength || len(pw) > MaxPasswordBytes {
		return ErrInvalidInput
	}
	return nil
}
