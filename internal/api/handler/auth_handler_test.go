package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestLoginIssuesSessionCookie(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	cookie := env.login(t, "alice", "pw1")

	if !cookie.HttpOnly {
		t.Error("expected session cookie to be httpOnly")
	}
	if cookie.MaxAge != 0 {
		t.Errorf("expected a session-lifetime cookie without max-age, got %d", cookie.MaxAge)
	}

	// The cookie authenticates a guarded route
	w := env.get(t, "/faq", cookie)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 on /faq with session, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "alice") {
		t.Error("expected faq page to greet the resolved identity")
	}
}

func TestLoginRedirectTarget(t *testing.T) {
	tests := []struct {
		name       string
		redirectTo string
		expected   string
	}{
		{"default goes home", "", "/"},
		{"local path honored", "/faq", "/faq"},
		{"external target rejected", "https://evil.example", "/"},
		{"protocol-relative target rejected", "//evil.example", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)
			defer env.cleanup()

			path := "/login"
			if tt.redirectTo != "" {
				path += "?redirectTo=" + url.QueryEscape(tt.redirectTo)
			}

			w := env.postForm(t, path, url.Values{
				"username": {"alice"},
				"password": {"pw1"},
			}, nil)

			if w.Code != http.StatusFound {
				t.Fatalf("expected 302, got %d", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != tt.expected {
				t.Errorf("expected redirect to %s, got %s", tt.expected, loc)
			}
		})
	}
}

func TestLoginWrongPasswordShowsMessage(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	original := env.login(t, "alice", "pw1")

	w := env.postForm(t, "/login", url.Values{
		"username": {"alice"},
		"password": {"pw2"},
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with inline message, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid credentials") {
		t.Error("expected invalid credentials message")
	}
	if sessionCookie(w) != nil {
		t.Error("expected no cookie on failed login")
	}

	// The failed attempt must not disturb the existing session
	if got := env.get(t, "/faq", original); got.Code != http.StatusOK {
		t.Errorf("expected original session to survive failed login, got %d", got.Code)
	}
}

func TestLoginMissingFieldsRejected(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.postForm(t, "/login", url.Values{"username": {"alice"}}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing password, got %d", w.Code)
	}
}

func TestRequireGuardRedirectsAnonymous(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.get(t, "/faq", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?redirectTo=%2Ffaq" {
		t.Errorf("expected redirect carrying the original path, got %s", loc)
	}
}

func TestRequireGuardRejectsBogusToken(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	bogus := &http.Cookie{Name: "miniblog_session", Value: "not-a-real-token"}
	w := env.get(t, "/faq", bogus)
	if w.Code != http.StatusFound {
		t.Errorf("expected 302 for unknown token, got %d", w.Code)
	}
}

func TestProvideGuardAllowsAnonymous(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.get(t, "/about", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous /about, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "anonymously") {
		t.Error("expected anonymous rendering of /about")
	}

	cookie := env.login(t, "alice", "pw1")
	w = env.get(t, "/about", cookie)
	if !strings.Contains(w.Body.String(), "alice") {
		t.Error("expected authenticated rendering of /about")
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	cookie := env.login(t, "alice", "pw1")

	w := env.get(t, "/logout", cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	cleared := sessionCookie(w)
	if cleared == nil || cleared.MaxAge >= 0 {
		t.Error("expected logout to expire the client cookie")
	}

	// The old token no longer authenticates
	if got := env.get(t, "/faq", cookie); got.Code != http.StatusFound {
		t.Errorf("expected old session to be invalid, got %d", got.Code)
	}
}

func TestLogoutIsIdempotentOverHTTP(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	cookie := env.login(t, "alice", "pw1")

	for i := 0; i < 2; i++ {
		w := env.get(t, "/logout", cookie)
		if w.Code != http.StatusFound {
			t.Fatalf("logout %d: expected 302, got %d", i+1, w.Code)
		}
	}

	// Anonymous logout also succeeds and still clears the cookie
	w := env.get(t, "/logout", nil)
	if w.Code != http.StatusFound {
		t.Errorf("expected anonymous logout to redirect, got %d", w.Code)
	}
	if cleared := sessionCookie(w); cleared == nil || cleared.MaxAge >= 0 {
		t.Error("expected cookie to be cleared even without a server-side session")
	}
}
