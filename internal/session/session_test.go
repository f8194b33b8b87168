package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var testSecret = []byte("test-session-secret-0123456789ab")

func newRequest(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestCreateAndGet(t *testing.T) {
	store := NewStore(testSecret, time.Hour)

	w := httptest.NewRecorder()
	sess, err := store.Create(w, httptest.NewRequest("POST", "/api/login", nil), 42, "alice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sess.ID == "" {
		t.Error("Expected session id")
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a session cookie to be set")
	}
	if cookies[0].Name != CookieName {
		t.Errorf("Expected cookie %q, got %q", CookieName, cookies[0].Name)
	}
	if !cookies[0].HttpOnly {
		t.Error("Expected HttpOnly cookie")
	}

	got := store.Get(newRequest(cookies))
	if got == nil {
		t.Fatal("Expected session from cookie")
	}
	if got.UserID != 42 || got.Username != "alice" {
		t.Errorf("Unexpected session: %+v", got)
	}
}

func TestGetRejectsUnknownAndTampered(t *testing.T) {
	store := NewStore(testSecret, time.Hour)

	if store.Get(newRequest(nil)) != nil {
		t.Error("Expected nil session without cookie")
	}

	if store.Get(newRequest([]*http.Cookie{{Name: CookieName, Value: "garbage"}})) != nil {
		t.Error("Expected nil session for tampered cookie")
	}

	// A validly signed cookie from a store with a different secret.
	other := NewStore([]byte("another-secret-another-secret-ab"), time.Hour)
	w := httptest.NewRecorder()
	if _, err := other.Create(w, httptest.NewRequest("POST", "/", nil), 1, "eve"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if store.Get(newRequest(w.Result().Cookies())) != nil {
		t.Error("Expected nil session for foreign cookie")
	}
}

func TestDestroy(t *testing.T) {
	store := NewStore(testSecret, time.Hour)

	w := httptest.NewRecorder()
	if _, err := store.Create(w, httptest.NewRequest("POST", "/", nil), 7, "bob"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	cookies := w.Result().Cookies()

	w2 := httptest.NewRecorder()
	if err := store.Destroy(w2, newRequest(cookies)); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if store.Len() != 0 {
		t.Errorf("Expected empty session table, got %d", store.Len())
	}
	if store.Get(newRequest(cookies)) != nil {
		t.Error("Expected destroyed session to be gone")
	}

	cleared := w2.Result().Cookies()
	if len(cleared) == 0 || cleared[0].MaxAge != -1 {
		t.Error("Expected the cookie to be cleared")
	}
}

func TestExpiry(t *testing.T) {
	store := NewStore(testSecret, 10*time.Millisecond)

	w := httptest.NewRecorder()
	if _, err := store.Create(w, httptest.NewRequest("POST", "/", nil), 7, "bob"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	cookies := w.Result().Cookies()

	if store.Get(newRequest(cookies)) == nil {
		t.Fatal("Expected live session before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if store.Get(newRequest(cookies)) != nil {
		t.Error("Expected expired session to be treated as absent")
	}
	if store.Len() != 0 {
		t.Error("Expected expired session to be reaped")
	}
}
