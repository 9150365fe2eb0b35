package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adijith/HotelManagement/internal/client/session"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// recordingServer captures the Authorization header per path.
func recordingServer(t *testing.T) (*httptest.Server, map[string]string) {
	t.Helper()
	seen := map[string]string{}
	mux := http.NewServeMux()
	respond := func(w http.ResponseWriter, r *http.Request) {
		seen[r.URL.Path] = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/api/auth/me":
			_ = json.NewEncoder(w).Encode(Identity{Username: "alice", Email: "alice@x.com", UserID: 7})
		default:
			_ = json.NewEncoder(w).Encode(authResponse{
				Token:     "fresh-token",
				Username:  "alice",
				Email:     "alice@x.com",
				ExpiresAt: time.Now().Add(24 * time.Hour).UTC(),
			})
		}
	}
	mux.HandleFunc("/", respond)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, seen
}

func TestTransport_AttachesBearerOnlyToPrivilegedCalls(t *testing.T) {
	t.Parallel()

	ts, seen := recordingServer(t)
	c := New(ts.URL, staticToken("held-token"))
	ctx := context.Background()

	if _, err := c.Login(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := c.Register(ctx, "alice", "alice@x.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := c.Me(ctx); err != nil {
		t.Fatalf("Me: %v", err)
	}

	if seen["/api/auth/login"] != "" {
		t.Fatalf("login carried Authorization %q", seen["/api/auth/login"])
	}
	if seen["/api/auth/register"] != "" {
		t.Fatalf("register carried Authorization %q", seen["/api/auth/register"])
	}
	if seen["/api/auth/me"] != "Bearer held-token" {
		t.Fatalf("me Authorization=%q, want held bearer token", seen["/api/auth/me"])
	}
}

func TestTransport_NoTokenMeansNoHeader(t *testing.T) {
	t.Parallel()

	ts, seen := recordingServer(t)
	c := New(ts.URL, staticToken(""))

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if seen["/api/auth/me"] != "" {
		t.Fatalf("empty token still produced header %q", seen["/api/auth/me"])
	}
}

func TestLogin_ParsesSession(t *testing.T) {
	t.Parallel()

	ts, _ := recordingServer(t)
	c := New(ts.URL, staticToken(""))

	d, err := c.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	want := session.User{Username: "alice", Email: "alice@x.com"}
	if d.Token != "fresh-token" || d.User != want {
		t.Fatalf("session=%+v", d)
	}
	if !d.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", d.ExpiresAt)
	}
}

func TestErrorResponsesBecomeAPIError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid username or password"})
	}))
	t.Cleanup(ts.Close)

	c := New(ts.URL, staticToken(""))
	_, err := c.Login(context.Background(), "alice", "wrong")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err=%T %v, want *APIError", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid username or password" {
		t.Fatalf("apiErr=%+v", apiErr)
	}
}
