package service_test

import (
	"errors"
	"testing"
	"time"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/auth"
	"carteirab3/internal/repository"
	"carteirab3/internal/service"
	"carteirab3/internal/testutil"
)

func newTestAuthService(t *testing.T, ttl time.Duration) (*service.AuthService, *repository.UsuarioRepository) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	codec, err := auth.NewTokenCodec("", ttl)
	if err != nil {
		t.Fatalf("failed to build codec: %v", err)
	}
	repo := repository.NewUsuarioRepository(db)
	return service.NewAuthService(repo, codec), repo
}

func TestAuthService(t *testing.T) {
	svc, _ := newTestAuthService(t, time.Hour)
	if err := svc.SeedAdmin("admin@test.local", "s3cret"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	t.Run("seeding twice is a no-op", func(t *testing.T) {
		if err := svc.SeedAdmin("admin@test.local", "other"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, _, err := svc.Login("admin@test.local", "s3cret"); err != nil {
			t.Errorf("original password should still work: %v", err)
		}
	})

	t.Run("login returns a token that resolves to the user", func(t *testing.T) {
		user, token, err := svc.Login("admin@test.local", "s3cret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" {
			t.Fatal("expected a session token")
		}

		userID, err := svc.Resolve(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if userID != user.ID {
			t.Errorf("resolved %q, want %q", userID, user.ID)
		}
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, _, errPass := svc.Login("admin@test.local", "wrong")
		_, _, errMail := svc.Login("nobody@test.local", "s3cret")
		if !errors.Is(errPass, apperrors.ErrInvalidCredentials) ||
			!errors.Is(errMail, apperrors.ErrInvalidCredentials) {
			t.Errorf("got %v / %v, want ErrInvalidCredentials for both", errPass, errMail)
		}
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		_, token, err := svc.Login("admin@test.local", "s3cret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := svc.Logout(token); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Resolve(token); !errors.Is(err, apperrors.ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired after logout, got %v", err)
		}
	})

	t.Run("garbage tokens are rejected", func(t *testing.T) {
		if _, err := svc.Resolve("not-a-token"); !errors.Is(err, apperrors.ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired, got %v", err)
		}
	})
}

func TestSessionExpiry(t *testing.T) {
	svc, repo := newTestAuthService(t, time.Hour)
	if err := svc.SeedAdmin("admin@test.local", "s3cret"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	user, err := repo.GetByEmail("admin@test.local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("expired sessions do not resolve and get purged", func(t *testing.T) {
		session, err := repo.CreateSession(user.ID, time.Now().Add(-time.Minute))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		purged, err := repo.DeleteExpiredSessions(time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if purged != 1 {
			t.Errorf("purged = %d, want 1", purged)
		}

		if _, err := repo.GetSession(session.ID); !errors.Is(err, apperrors.ErrRecordNotFound) {
			t.Errorf("expected the session gone, got %v", err)
		}
	})
}
