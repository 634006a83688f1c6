package model

import "time"

// Usuario is an account that owns imported records.
type Usuario struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Sessao is a server-side login session. The session ID travels inside an
// encrypted cookie token; the row allows revocation on logout.
type Sessao struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
