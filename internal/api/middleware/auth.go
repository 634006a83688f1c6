package middleware

import (
	"context"
	"net/http"

	"carteirab3/internal/api/response"
)

// SessionCookieName is the cookie carrying the encrypted session token.
const SessionCookieName = "session"

type contextKey string

const userIDKey contextKey = "userID"

// SessionResolver maps a session token to the owning user ID.
type SessionResolver interface {
	Resolve(token string) (string, error)
}

// SessionAuth authenticates requests via the session cookie and injects the
// user ID into the request context. Requests without a valid session get a
// 401 and never reach the handler.
func SessionAuth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				response.RespondError(w, http.StatusUnauthorized, "Unauthorized", "")
				return
			}

			userID, err := resolver.Resolve(cookie.Value)
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, "Unauthorized", "")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFrom extracts the authenticated user ID from the request context.
// It is empty only on routes that skip SessionAuth.
func UserIDFrom(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
