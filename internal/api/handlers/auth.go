package handlers

import (
	"errors"
	"net/http"

	"carteirab3/internal/api/middleware"
	"carteirab3/internal/api/response"
	"carteirab3/internal/apperrors"
	"carteirab3/internal/service"
)

// AuthHandler handles login and logout requests.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST requests authenticating a user. On success the
// encrypted session token is set as an HttpOnly cookie and the user is
// returned.
//
// Endpoint: POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := parseJSON(r, &req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		response.RespondError(w, http.StatusBadRequest, "Email and password are required", "")
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, "Invalid credentials", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "Failed to log in", err.Error())
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.authService.TokenTTL().Seconds())))
	response.RespondJSON(w, http.StatusOK, user)
}

// Logout handles POST requests revoking the current session and clearing
// the cookie. Logging out without a valid session still succeeds.
//
// Endpoint: POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			response.RespondError(w, http.StatusInternalServerError, "Failed to log out", err.Error())
			return
		}
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	response.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
