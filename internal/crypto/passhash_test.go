package crypto

import (
	"bytes"
	"strings"
	"testing"
)

func TestRandBytes_LengthAndUniqueness(t *testing.T) {
	t.Parallel()

	const n = 64
	a, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes: %v", err)
	}
	if len(a) != n {
		t.Fatalf("len=%d, want=%d", len(a), n)
	}
	b, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes(2): %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two subsequent RandBytes(%d) are equal — looks non-random", n)
	}
}

func TestLegacyHasher_DeterministicAndCompatible(t *testing.T) {
	t.Parallel()

	h := LegacyHasher{}
	d1, err := h.Hash("p@ssw0rd")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	d2, _ := h.Hash("p@ssw0rd")
	if d1 != d2 {
		t.Fatalf("digest not deterministic for same input")
	}

	// base64(SHA-256("secret1")) as stored by earlier deployments
	const known = "WxFhjC5EAnh30M0JIe0Wa58Xb1BYf8kedTTdKUbbd9Y="
	got, _ := h.Hash("secret1")
	if got != known {
		t.Fatalf("digest %q not compatible with stored value %q", got, known)
	}

	d3, _ := h.Hash("p@ssw0rd!")
	if d1 == d3 {
		t.Fatalf("digest should differ when password differs")
	}
}

func TestLegacyHasher_Verify(t *testing.T) {
	t.Parallel()

	h := LegacyHasher{}
	digest, _ := h.Hash("correct horse battery staple")

	if !h.Verify("correct horse battery staple", digest) {
		t.Fatalf("Verify: expected true for correct password")
	}
	if h.Verify("wrong", digest) {
		t.Fatalf("Verify: expected false for wrong password")
	}
	if h.Verify("", digest) {
		t.Fatalf("Verify: expected false for empty password")
	}
	if h.Verify("correct horse battery staple", "not-base64!!") {
		t.Fatalf("Verify: expected false for malformed digest")
	}
}

func TestArgon2Hasher_SaltedRoundTrip(t *testing.T) {
	t.Parallel()

	h := Argon2Hasher{}
	d1, err := h.Hash("pwd")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	d2, err := h.Hash("pwd")
	if err != nil {
		t.Fatalf("Hash(2): %v", err)
	}
	if d1 == d2 {
		t.Fatalf("same password produced identical digests — salt missing")
	}
	if !strings.HasPrefix(d1, "$argon2id$") {
		t.Fatalf("unexpected digest form: %q", d1)
	}

	if !h.Verify("pwd", d1) || !h.Verify("pwd", d2) {
		t.Fatalf("Verify: expected true for correct password")
	}
	if h.Verify("other", d1) {
		t.Fatalf("Verify: expected false for wrong password")
	}
	if h.Verify("pwd", "$argon2id$garbage") {
		t.Fatalf("Verify: expected false for malformed digest")
	}
}

func TestNewHasher_SchemeSelection(t *testing.T) {
	t.Parallel()

	if _, ok := NewHasher("argon2id").(Argon2Hasher); !ok {
		t.Fatalf("argon2id scheme should select Argon2Hasher")
	}
	if _, ok := NewHasher("sha256").(LegacyHasher); !ok {
		t.Fatalf("sha256 scheme should select LegacyHasher")
	}
	if _, ok := NewHasher("").(LegacyHasher); !ok {
		t.Fatalf("unknown scheme should fall back to LegacyHasher")
	}
}
