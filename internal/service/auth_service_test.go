package service

import (
	"context"
	"errors"
	"testing"

	"tradebooks/internal/apperr"
	"tradebooks/internal/config"
	"tradebooks/internal/repository"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := setupTestDB(t)
	cfg := testConfig()
	cfg.AllowedEmails = []string{"owner@example.com"}
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{Email: "Owner@Example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.User.Email != "owner@example.com" {
		t.Fatalf("email not normalized: %q", registered.User.Email)
	}
	if registered.AccessToken == "" || registered.RefreshToken == "" {
		t.Fatal("expected tokens on register")
	}

	loggedIn, err := svc.Login(ctx, LoginRequest{Email: "owner@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.User.ID != registered.User.ID {
		t.Fatal("login returned different user")
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "owner@example.com", Password: "wrong"}); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated for bad password, got %v", err)
	}
}

func TestRegisterRejectsUnlistedEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "stranger@example.com", Password: "whatever1"})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestLoginChecksAllowListBeforeCredentials(t *testing.T) {
	svc := newAuthService(t)

	// Even with no such account, an unlisted email gets 403, not 401.
	_, err := svc.Login(context.Background(), LoginRequest{Email: "stranger@example.com", Password: "whatever1"})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{Email: "owner@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, registered.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}

	// The old token is single-use.
	if _, err := svc.Refresh(ctx, registered.RefreshToken); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated for reused token, got %v", err)
	}
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{Email: "owner@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Logout(ctx, registered.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Refresh(ctx, registered.RefreshToken); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated after logout, got %v", err)
	}
}

func TestAuthServiceRespectsConfigDefaults(t *testing.T) {
	cfg := config.Config{AllowedEmails: []string{"a@b.co"}}
	if !cfg.EmailAllowed("A@B.CO") {
		t.Fatal("allow-list must be case-insensitive")
	}
	if cfg.EmailAllowed("other@b.co") {
		t.Fatal("unlisted email allowed")
	}
}
