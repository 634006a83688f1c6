package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carteirab3/internal/api/handlers"
	"carteirab3/internal/api/middleware"
	"carteirab3/internal/auth"
	"carteirab3/internal/repository"
	"carteirab3/internal/service"
	"carteirab3/internal/testutil"
)

func newAuthHandler(t *testing.T) *handlers.AuthHandler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	codec, err := auth.NewTokenCodec("", time.Hour)
	if err != nil {
		t.Fatalf("failed to build codec: %v", err)
	}
	svc := service.NewAuthService(repository.NewUsuarioRepository(db), codec)
	if err := svc.SeedAdmin("admin@test.local", "s3cret"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	return handlers.NewAuthHandler(svc)
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestAuthHandlerLogin(t *testing.T) {
	handler := newAuthHandler(t)

	t.Run("valid credentials set the session cookie", func(t *testing.T) {
		body := `{"email":"admin@test.local","password":"s3cret"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		cookie := sessionCookieFrom(t, w)
		if cookie.Value == "" || !cookie.HttpOnly {
			t.Errorf("unexpected cookie %+v", cookie)
		}
		if strings.Contains(w.Body.String(), "password_hash") {
			t.Error("response must not leak the password hash")
		}
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		body := `{"email":"admin@test.local","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", w.Code)
		}
		if msg := decodeError(t, w); msg != "Invalid credentials" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("missing fields are 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b"}`))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})
}

func TestAuthHandlerLogout(t *testing.T) {
	handler := newAuthHandler(t)

	t.Run("logout clears the cookie even without a session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		w := httptest.NewRecorder()
		handler.Logout(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if cookie := sessionCookieFrom(t, w); cookie.MaxAge != -1 || cookie.Value != "" {
			t.Errorf("expected an expired empty cookie, got %+v", cookie)
		}
	})
}
