package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/auth"
	"carteirab3/internal/model"
	"carteirab3/internal/repository"
)

// AuthService handles login, logout and session resolution. Sessions are
// stored server-side; the client only holds an encrypted token carrying the
// session ID, so logout revokes immediately.
type AuthService struct {
	usuarioRepo *repository.UsuarioRepository
	codec       *auth.TokenCodec
}

// NewAuthService creates a new AuthService with the provided repository and
// token codec.
func NewAuthService(usuarioRepo *repository.UsuarioRepository, codec *auth.TokenCodec) *AuthService {
	return &AuthService{usuarioRepo: usuarioRepo, codec: codec}
}

// Login validates credentials and opens a session, returning the user and
// the encrypted session token. Bad email and bad password are
// indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (model.Usuario, string, error) {
	user, err := s.usuarioRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return model.Usuario{}, "", apperrors.ErrInvalidCredentials
		}
		return model.Usuario{}, "", err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return model.Usuario{}, "", apperrors.ErrInvalidCredentials
	}

	session, err := s.usuarioRepo.CreateSession(user.ID, time.Now().Add(s.codec.TTL()))
	if err != nil {
		return model.Usuario{}, "", err
	}

	token, err := s.codec.Encode(session.ID)
	if err != nil {
		return model.Usuario{}, "", err
	}
	return user, token, nil
}

// TokenTTL is the lifetime of issued session tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.codec.TTL()
}

// Logout revokes the session inside the token. Invalid tokens are ignored:
// the client is logging out either way.
func (s *AuthService) Logout(token string) error {
	sessionID, err := s.codec.Decode(token)
	if err != nil {
		return nil
	}
	return s.usuarioRepo.DeleteSession(sessionID)
}

// Resolve maps a session token to the owning user ID, enforcing expiry.
func (s *AuthService) Resolve(token string) (string, error) {
	sessionID, err := s.codec.Decode(token)
	if err != nil {
		return "", apperrors.ErrSessionExpired
	}

	session, err := s.usuarioRepo.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return "", apperrors.ErrSessionExpired
		}
		return "", err
	}
	if time.Now().After(session.ExpiresAt) {
		return "", apperrors.ErrSessionExpired
	}
	return session.UserID, nil
}

// PurgeExpiredSessions removes sessions past their expiry. Scheduled hourly
// at startup.
func (s *AuthService) PurgeExpiredSessions() {
	purged, err := s.usuarioRepo.DeleteExpiredSessions(time.Now())
	if err != nil {
		log.Printf("session purge failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("purged %d expired sessions", purged)
	}
}

// SeedAdmin ensures the configured admin account exists. A blank password
// skips seeding so production setups can disable it.
func (s *AuthService) SeedAdmin(email, password string) error {
	if password == "" {
		return nil
	}
	_, err := s.usuarioRepo.GetByEmail(email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if _, err := s.usuarioRepo.Create(email, hash, "ADMIN"); err != nil {
		return err
	}
	log.Printf("seeded admin account %s", email)
	return nil
}
