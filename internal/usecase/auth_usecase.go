package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"recruitai/internal/domain/user"
	"recruitai/internal/pkg/jwt"
	ucauth "recruitai/internal/usecase/auth"
	ucuser "recruitai/internal/usecase/user"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
)

const (
	RedirectAfterSignIn  = "/dashboard"
	RedirectAfterSignOut = "/"
	RedirectAfterSignUp  = "/login"

	revokedTokenPrefix = "auth:revoked:"
)

// RevocationStore remembers revoked token ids until they would have
// expired anyway.
type RevocationStore interface {
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, out any) (bool, error)
}

type Session struct {
	User         user.User
	Profile      *user.Profile
	AccessToken  string
	RefreshToken string
	RedirectTo   string
}

type AuthUsecase interface {
	SignUp(ctx context.Context, in ucauth.RegisterInput) (user.User, error)
	SignIn(ctx context.Context, in ucauth.LoginInput) (Session, error)
	SignOut(ctx context.Context, accessToken, refreshToken string) (string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Authenticate(ctx context.Context, accessToken string) (jwt.Claims, error)
}

type Auth struct {
	authSvc  *ucauth.Service
	profiles *ucuser.Service
	users    user.Repository
	jwt      jwt.Service
	revoked  RevocationStore
	now      func() time.Time
	logger   *log.Logger
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service, revoked RevocationStore, logger *log.Logger) *Auth {
	return &Auth{
		authSvc:  ucauth.NewService(users),
		profiles: ucuser.NewService(users),
		users:    users,
		jwt:      jwtSvc,
		revoked:  revoked,
		now:      time.Now,
		logger:   logger,
	}
}

// SignUp creates the account. The profile row is created on first sign-in.
func (u *Auth) SignUp(ctx context.Context, in ucauth.RegisterInput) (user.User, error) {
	return u.authSvc.Register(ctx, in)
}

// SignIn checks credentials, makes sure the profile exists and issues a
// token pair. A failure to create the profile does not fail the sign-in.
func (u *Auth) SignIn(ctx context.Context, in ucauth.LoginInput) (Session, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return Session{}, err
	}

	s := Session{User: usr, RedirectTo: RedirectAfterSignIn}
	if p, err := u.profiles.EnsureProfile(ctx, usr); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Auth] ensure profile failed user_id=%s err=%v", usr.ID, err)
		}
	} else {
		s.Profile = &p
	}

	s.AccessToken, err = u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return Session{}, ErrInternal
	}
	s.RefreshToken, err = u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return Session{}, ErrInternal
	}
	return s, nil
}

// SignOut revokes the presented tokens. Tokens that are already invalid are
// ignored.
func (u *Auth) SignOut(ctx context.Context, accessToken, refreshToken string) (string, error) {
	validators := []func(string) (jwt.Claims, error){u.jwt.ValidateAccessToken, u.jwt.ValidateRefreshToken}
	for i, tok := range []string{accessToken, refreshToken} {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		claims, err := validators[i](tok)
		if err != nil {
			continue
		}
		if err := u.revoke(ctx, claims); err != nil {
			return "", ErrInternal
		}
	}
	return RedirectAfterSignOut, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if u.isRevoked(ctx, claims) {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return "", "", ErrInternal
	}
	newRefresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return "", "", ErrInternal
	}

	// Refresh tokens are single use.
	_ = u.revoke(ctx, claims)

	return access, newRefresh, nil
}

// Authenticate validates an access token and rejects revoked ones.
func (u *Auth) Authenticate(ctx context.Context, accessToken string) (jwt.Claims, error) {
	claims, err := u.jwt.ValidateAccessToken(accessToken)
	if err != nil {
		return jwt.Claims{}, err
	}
	if u.isRevoked(ctx, claims) {
		return jwt.Claims{}, ErrUnauthorized
	}
	return claims, nil
}

func (u *Auth) revoke(ctx context.Context, c jwt.Claims) error {
	if u.revoked == nil || c.TokenID() == "" {
		return nil
	}
	ttl := c.Expiry().Sub(u.now())
	if ttl <= 0 {
		return nil
	}
	return u.revoked.SetJSON(ctx, revokedTokenPrefix+c.TokenID(), true, ttl)
}

func (u *Auth) isRevoked(ctx context.Context, c jwt.Claims) bool {
	if u.revoked == nil || c.TokenID() == "" {
		return false
	}
	var v bool
	hit, err := u.revoked.GetJSON(ctx, revokedTokenPrefix+c.TokenID(), &v)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Auth] revocation lookup error jti=%s err=%v", c.TokenID(), err)
		}
		return false
	}
	return hit && v
}
