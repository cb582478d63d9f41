package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"recruitai/internal/infrastructure/cache"
	"recruitai/internal/infrastructure/persistence/memory"
	"recruitai/internal/pkg/jwt"
	ucauth "recruitai/internal/usecase/auth"
	ucuser "recruitai/internal/usecase/user"
)

func newTestAuth(t *testing.T) (*Auth, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository(nil)
	svc := jwt.NewHMACService("access", "refresh", 15*time.Minute, time.Hour)
	return NewAuthUsecase(users, svc, cache.NewMemory(nil), nil), users
}

func TestAuth_SignUpSignInCreatesProfile(t *testing.T) {
	uc, users := newTestAuth(t)
	ctx := context.Background()

	u, err := uc.SignUp(ctx, ucauth.RegisterInput{Email: " Ada@Example.com ", Password: "correct horse", FullName: "Ada Lovelace", Company: "Analytical"})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if u.Email != "ada@example.com" || u.PasswordHash != "" {
		t.Fatalf("user = %+v", u)
	}
	if _, err := users.GetProfile(ctx, u.ID); err == nil {
		t.Fatalf("profile should not exist before first sign-in")
	}

	if _, err := uc.SignUp(ctx, ucauth.RegisterInput{Email: "ada@example.com", Password: "another pass"}); !errors.Is(err, ucauth.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}

	s, err := uc.SignIn(ctx, ucauth.LoginInput{Email: "ada@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if s.RedirectTo != RedirectAfterSignIn || s.AccessToken == "" || s.RefreshToken == "" {
		t.Fatalf("session = %+v", s)
	}
	if s.Profile == nil || s.Profile.FullName != "Ada Lovelace" || s.Profile.Company != "Analytical" {
		t.Fatalf("profile = %+v", s.Profile)
	}

	if _, err := uc.SignIn(ctx, ucauth.LoginInput{Email: "ada@example.com", Password: "wrong password"}); !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_SignUpValidation(t *testing.T) {
	uc, _ := newTestAuth(t)
	for _, in := range []ucauth.RegisterInput{
		{Email: "", Password: "long enough"},
		{Email: "not-an-email", Password: "long enough"},
		{Email: "a@example.com", Password: "short"},
	} {
		if _, err := uc.SignUp(context.Background(), in); !errors.Is(err, ucauth.ErrInvalidInput) {
			t.Fatalf("SignUp(%+v) err = %v", in, err)
		}
	}
}

func TestAuth_SignOutRevokesTokens(t *testing.T) {
	uc, _ := newTestAuth(t)
	ctx := context.Background()
	if _, err := uc.SignUp(ctx, ucauth.RegisterInput{Email: "grace@example.com", Password: "cobol-rules"}); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	s, err := uc.SignIn(ctx, ucauth.LoginInput{Email: "grace@example.com", Password: "cobol-rules"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if s.Profile == nil || s.Profile.FullName != "grace" || s.Profile.Company != "Unknown Company" {
		t.Fatalf("fallback profile = %+v", s.Profile)
	}

	if _, err := uc.Authenticate(ctx, s.AccessToken); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if _, err := uc.Authenticate(ctx, s.RefreshToken); err == nil {
		t.Fatalf("refresh token must not authenticate requests")
	}

	redirect, err := uc.SignOut(ctx, s.AccessToken, s.RefreshToken)
	if err != nil || redirect != RedirectAfterSignOut {
		t.Fatalf("sign out = %q err=%v", redirect, err)
	}
	if _, err := uc.Authenticate(ctx, s.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after sign out, got %v", err)
	}
	if _, _, err := uc.Refresh(ctx, s.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken after sign out, got %v", err)
	}
}

func TestAuth_RefreshIsSingleUse(t *testing.T) {
	uc, _ := newTestAuth(t)
	ctx := context.Background()
	_, _ = uc.SignUp(ctx, ucauth.RegisterInput{Email: "alan@example.com", Password: "enigma-machine"})
	s, err := uc.SignIn(ctx, ucauth.LoginInput{Email: "alan@example.com", Password: "enigma-machine"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	access, refresh, err := uc.Refresh(ctx, s.RefreshToken)
	if err != nil || access == "" || refresh == "" {
		t.Fatalf("refresh: %v", err)
	}
	if _, _, err := uc.Refresh(ctx, s.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("reused refresh err = %v", err)
	}
	if _, _, err := uc.Refresh(ctx, s.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("access token as refresh err = %v", err)
	}
}

func TestProfiles_EnsureAndUpdate(t *testing.T) {
	uc, users := newTestAuth(t)
	ctx := context.Background()
	u, _ := uc.SignUp(ctx, ucauth.RegisterInput{Email: "linus@example.com", Password: "penguin-power", Company: "OSDL"})

	profiles := NewProfileUsecase(users)
	if _, err := profiles.GetProfile(ctx, u.ID); !errors.Is(err, ucuser.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	p, err := profiles.EnsureProfile(ctx, u.ID)
	if err != nil || p.FullName != "linus" || p.Company != "OSDL" {
		t.Fatalf("ensure = %+v err=%v", p, err)
	}

	name := "Linus Torvalds"
	p, err = profiles.UpdateProfile(ctx, u.ID, ucuser.UpdateProfileInput{FullName: &name})
	if err != nil || p.FullName != name || p.Company != "OSDL" {
		t.Fatalf("update = %+v err=%v", p, err)
	}

	blank := "  "
	if _, err := profiles.UpdateProfile(ctx, u.ID, ucuser.UpdateProfileInput{Company: &blank}); !errors.Is(err, ucuser.ErrInvalidInput) {
		t.Fatalf("blank company err = %v", err)
	}
	if _, err := profiles.UpdateProfile(ctx, u.ID, ucuser.UpdateProfileInput{}); !errors.Is(err, ucuser.ErrInvalidInput) {
		t.Fatalf("empty patch err = %v", err)
	}
}
