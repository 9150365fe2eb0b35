// Package api is the HTTP client for the authentication endpoints. Privileged
// requests are decorated with the held bearer token by an http.RoundTripper;
// the login and registration calls go out bare.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/adijith/HotelManagement/internal/client/session"
)

// Client calls the server's auth API.
type Client struct {
	base string
	http *http.Client
}

// New constructs a Client against baseURL. Tokens from src are attached to
// every call except login/register.
func New(baseURL string, src TokenSource) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &authTransport{src: src, next: http.DefaultTransport},
		},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server: %d %s", e.Status, e.Message)
}

type authResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, username, password string) (session.Data, error) {
	return c.authCall(ctx, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
}

// Register creates an account; the response authenticates it directly.
func (c *Client) Register(ctx context.Context, username, email, password string) (session.Data, error) {
	return c.authCall(ctx, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

// Identity is the server's view of the presented token.
type Identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	UserID   int64  `json:"userId"`
}

// Me asks the server who the held token belongs to. It is a privileged call:
// the transport attaches the bearer token.
func (c *Client) Me(ctx context.Context) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/auth/me", nil)
	if err != nil {
		return Identity{}, err
	}
	var id Identity
	if err := c.do(req, &id); err != nil {
		return Identity{}, err
	}
	return id, nil
}

func (c *Client) authCall(ctx context.Context, path string, body map[string]string) (session.Data, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return session.Data{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(b))
	if err != nil {
		return session.Data{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var ar authResponse
	if err := c.do(req, &ar); err != nil {
		return session.Data{}, err
	}
	return session.Data{
		Token:     ar.Token,
		User:      session.User{Username: ar.Username, Email: ar.Email},
		ExpiresAt: ar.ExpiresAt,
	}, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var eb struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &APIError{Status: resp.StatusCode, Message: eb.Message}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
