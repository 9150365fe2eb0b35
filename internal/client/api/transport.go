package api

import "net/http"

// TokenSource yields the currently held bearer token, or "" when none is
// held. *session.Guard satisfies it.
type TokenSource interface {
	Token() string
}

// The only endpoints called while unauthenticated; they never carry a token.
var publicPaths = map[string]bool{
	"/api/auth/login":    true,
	"/api/auth/register": true,
}

// authTransport decorates outgoing requests with the held bearer token. It is
// pure decoration: no retry and no refresh on an expired-token failure.
type authTransport struct {
	src  TokenSource
	next http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if publicPaths[req.URL.Path] {
		return t.next.RoundTrip(req)
	}
	if tok := t.src.Token(); tok != "" {
		// RoundTrippers must not mutate the caller's request
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return t.next.RoundTrip(req)
}
