package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/adijith/HotelManagement/internal/errs"
	"github.com/adijith/HotelManagement/internal/model"
)

func testAccount() *model.Account {
	return &model.Account{ID: 42, Username: "alice", Email: "alice@x.com"}
}

func TestIssue_ClaimsAndExpiry(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	m := NewManager([]byte("k1"))
	m.now = func() time.Time { return issued }

	tok, exp, err := m.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(strings.Split(tok, ".")) != 3 {
		t.Fatalf("token is not three dot-separated segments: %q", tok)
	}
	if !exp.Equal(issued.Add(TTL)) {
		t.Fatalf("exp=%v, want issuedAt+%v", exp, TTL)
	}

	claims, err := m.Validate(tok)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Subject != "alice" || claims.Email != "alice@x.com" || claims.UserID != 42 {
		t.Fatalf("bad identity claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("missing jti")
	}
	if claims.Issuer != Issuer {
		t.Fatalf("issuer=%q, want %q", claims.Issuer, Issuer)
	}
}

func TestIssue_FreshTokenIDPerIssuance(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("k1"))
	t1, _, err := m.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	t2, _, err := m.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue(2): %v", err)
	}
	c1, _ := m.Validate(t1)
	c2, _ := m.Validate(t2)
	if c1.ID == c2.ID {
		t.Fatalf("two issuances share jti %q", c1.ID)
	}
}

func TestValidate_LifetimeWindow(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	m := NewManager([]byte("k1"))
	m.now = func() time.Time { return issued }

	tok, _, err := m.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// validates anywhere inside [t, t+24h)
	for _, at := range []time.Time{issued, issued.Add(time.Hour), issued.Add(TTL - time.Second)} {
		m.now = func() time.Time { return at }
		if _, err := m.Validate(tok); err != nil {
			t.Fatalf("Validate at %v: %v", at, err)
		}
	}

	// rejected at and after t+24h, boundary included
	for _, at := range []time.Time{issued.Add(TTL), issued.Add(TTL + time.Second), issued.Add(48 * time.Hour)} {
		m.now = func() time.Time { return at }
		if _, err := m.Validate(tok); !errors.Is(err, errs.ErrTokenExpired) {
			t.Fatalf("Validate at %v: err=%v, want ErrTokenExpired", at, err)
		}
	}
}

func TestValidate_TamperedSignature(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("k1"))
	tok, _, err := m.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// flip one character of the signature segment; 'A' vs 'Q' differ in bits
	// the base64url decoder cannot ignore
	flip := byte('A')
	if tok[len(tok)-1] == 'A' {
		flip = 'Q'
	}
	tampered := tok[:len(tok)-1] + string(flip)

	if _, err := m.Validate(tampered); !errors.Is(err, errs.ErrTokenInvalid) {
		t.Fatalf("err=%v, want ErrTokenInvalid for tampered signature", err)
	}
}

func TestValidate_WrongKeyAndMalformed(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("k1"))
	tok, _, err := m.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := NewManager([]byte("k2"))
	if _, err := other.Validate(tok); !errors.Is(err, errs.ErrTokenInvalid) {
		t.Fatalf("err=%v, want ErrTokenInvalid under wrong key", err)
	}

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c.d", "not.a.jwt"} {
		if _, err := m.Validate(bad); !errors.Is(err, errs.ErrTokenInvalid) {
			t.Fatalf("Validate(%q): err=%v, want ErrTokenInvalid", bad, err)
		}
	}
}
