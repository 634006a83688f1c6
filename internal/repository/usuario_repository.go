package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
)

// UsuarioRepository provides data access methods for the usuario and sessao
// tables.
type UsuarioRepository struct {
	db *sql.DB
}

// NewUsuarioRepository creates a new UsuarioRepository with the provided
// database connection.
func NewUsuarioRepository(db *sql.DB) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

// GetByEmail returns the user with the given email or
// apperrors.ErrRecordNotFound.
func (r *UsuarioRepository) GetByEmail(email string) (model.Usuario, error) {
	var u model.Usuario
	var createdAt string
	err := r.db.QueryRow(`
		SELECT id, email, password_hash, role, created_at
		FROM usuario WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return u, fmt.Errorf("failed to query usuario: %w", err)
	}
	u.CreatedAt, _ = parseTimestamp(createdAt)
	return u, nil
}

// Create inserts a new user with an already-hashed password.
func (r *UsuarioRepository) Create(email, passwordHash, role string) (model.Usuario, error) {
	u := model.Usuario{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := r.db.Exec(`
		INSERT INTO usuario (id, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return u, fmt.Errorf("failed to insert usuario: %w", err)
	}
	return u, nil
}

// CreateSession opens a new session for a user.
func (r *UsuarioRepository) CreateSession(userID string, expiresAt time.Time) (model.Sessao, error) {
	s := model.Sessao{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.Exec(`
		INSERT INTO sessao (id, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)`,
		s.ID, s.UserID, s.ExpiresAt.Format(time.RFC3339), s.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return s, fmt.Errorf("failed to insert sessao: %w", err)
	}
	return s, nil
}

// GetSession returns a session by ID or apperrors.ErrRecordNotFound.
func (r *UsuarioRepository) GetSession(sessionID string) (model.Sessao, error) {
	var s model.Sessao
	var expiresAt, createdAt string
	err := r.db.QueryRow(`
		SELECT id, user_id, expires_at, created_at
		FROM sessao WHERE id = ?`, sessionID).
		Scan(&s.ID, &s.UserID, &expiresAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return s, fmt.Errorf("failed to query sessao: %w", err)
	}
	if s.ExpiresAt, err = parseTimestamp(expiresAt); err != nil {
		return s, err
	}
	s.CreatedAt, _ = parseTimestamp(createdAt)
	return s, nil
}

// DeleteSession revokes one session. Deleting a session that is already
// gone is not an error.
func (r *UsuarioRepository) DeleteSession(sessionID string) error {
	if _, err := r.db.Exec("DELETE FROM sessao WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete sessao: %w", err)
	}
	return nil
}

// DeleteExpiredSessions purges sessions past their expiry and returns the
// number removed.
func (r *UsuarioRepository) DeleteExpiredSessions(now time.Time) (int, error) {
	result, err := r.db.Exec(
		"DELETE FROM sessao WHERE expires_at < ?", now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged sessions: %w", err)
	}
	return int(affected), nil
}

func parseTimestamp(str string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		t, err = time.Parse("2006-01-02 15:04:05", str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
		}
	}
	return t.UTC(), nil
}
