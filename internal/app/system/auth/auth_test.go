package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/coophub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		logger,
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

// signInCookies runs SignIn and returns the cookies it set.
func signInCookies(t *testing.T, sm *auth.SessionManager, id auth.Identity) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	if err := sm.SignIn(rec, req, id); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected SignIn to set a cookie")
	}
	return cookies
}

// captureUser runs LoadSessionUser and returns the user the next handler saw.
func captureUser(sm *auth.SessionManager, req *http.Request) (*auth.SessionUser, bool, *httptest.ResponseRecorder) {
	var got *auth.SessionUser
	var found bool
	h := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = auth.CurrentUser(r)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return got, found, rec
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	_, err := auth.NewSessionManager("", "s", "", time.Hour, false, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestSignIn_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	tests := []struct {
		name string
		id   auth.Identity
	}{
		{"admin", auth.AdminIdentity},
		{"farmer", auth.FarmerIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			for _, c := range signInCookies(t, sm, tt.id) {
				req.AddCookie(c)
			}

			u, ok, _ := captureUser(sm, req)
			if !ok {
				t.Fatal("expected user in context after sign in")
			}
			if u.Role != tt.id.Role || u.Name != tt.id.Name || u.FarmName != tt.id.FarmName {
				t.Errorf("user: got %+v, want %+v", *u, tt.id)
			}
		})
	}
}

func TestLoadSessionUser_NoCookie(t *testing.T) {
	sm := newTestSessionManager(t)

	_, ok, rec := captureUser(sm, httptest.NewRequest("GET", "/", nil))
	if ok {
		t.Error("expected no user without a cookie")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("expected no cookie to be written")
	}
}

func TestLoadSessionUser_CorruptCookieIsCleared(t *testing.T) {
	sm := newTestSessionManager(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: sm.Name(), Value: "not-a-valid-securecookie"})

	_, ok, rec := captureUser(sm, req)
	if ok {
		t.Fatal("expected no user for a corrupt cookie")
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.Name() && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the corrupt cookie to be expired")
	}
}

func TestLoadSessionUser_ForeignKeyCookieIsCleared(t *testing.T) {
	sm := newTestSessionManager(t)
	other, err := auth.NewSessionManager("another-session-key-that-is-32-chars!!", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range signInCookies(t, other, auth.AdminIdentity) {
		req.AddCookie(c)
	}

	if _, ok, _ := captureUser(sm, req); ok {
		t.Error("expected a cookie signed with another key to be rejected")
	}
}

func TestSignOut_ExpiresCookie(t *testing.T) {
	sm := newTestSessionManager(t)

	req := httptest.NewRequest("GET", "/logout", nil)
	for _, c := range signInCookies(t, sm, auth.FarmerIdentity) {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	if err := sm.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	var expired bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.Name() && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("expected SignOut to expire the session cookie")
	}
}

func TestRequireSignedIn_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/farmer/farm-overview", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/login?return=") {
		t.Errorf("expected redirect to /login?return=, got %q", location)
	}
}

func TestRequireSignedIn_NoUser_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/farmer/door-automation/status.json", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSignedIn_NoUser_HTMX_ReturnsHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin/reports", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/login") {
		t.Errorf("expected HX-Redirect to /login, got %q", hx)
	}
}

func TestRequireRole(t *testing.T) {
	sm := newTestSessionManager(t)

	tests := []struct {
		name     string
		user     *auth.SessionUser
		accept   string
		wantCode int
		wantLoc  string
	}{
		{"admin reaches admin route", &auth.SessionUser{Role: "admin", Name: "Admin User"}, "text/html", http.StatusOK, ""},
		{"farmer is forbidden", &auth.SessionUser{Role: "farmer", Name: "John Smith", FarmName: "Green Valley Farm"}, "text/html", http.StatusSeeOther, "/forbidden"},
		{"farmer API gets 403", &auth.SessionUser{Role: "farmer"}, "application/json", http.StatusForbidden, ""},
		{"anonymous goes to login", nil, "text/html", http.StatusSeeOther, "/login?return=%2Fadmin%2Fsystem-overview"},
	}

	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin/system-overview", nil)
			req.Header.Set("Accept", tt.accept)
			if tt.user != nil {
				req = auth.WithTestUser(req, tt.user)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantLoc != "" && rec.Header().Get("Location") != tt.wantLoc {
				t.Errorf("location: got %q, want %q", rec.Header().Get("Location"), tt.wantLoc)
			}
		})
	}
}

func TestRequireRole_HTMXWrongRole(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireRole("farmer")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/farmer/door-automation/toggle", nil)
	req.Header.Set("HX-Request", "true")
	req = auth.WithTestUser(req, &auth.SessionUser{Role: "admin"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); hx != "/forbidden" {
		t.Errorf("expected HX-Redirect /forbidden, got %q", hx)
	}
}
