// Package token issues and validates the signed bearer tokens that carry an
// authenticated identity across the request boundary. Tokens are HS256 JWTs
// with a fixed lifetime; there is no renewal and no server-side revocation —
// a minted token stays valid until its natural expiry.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/adijith/HotelManagement/internal/errs"
	"github.com/adijith/HotelManagement/internal/model"
)

// Issuer/audience values are part of the token contract with existing clients.
const (
	Issuer   = "HotelManagementAPI"
	Audience = "HotelManagementClient"

	// TTL is the fixed token lifetime. expiresAt = issuedAt + TTL.
	TTL = 24 * time.Hour
)

// Claims is the token payload: registered claims plus the identity fields the
// client reads back without a server round trip.
type Claims struct {
	Email  string `json:"email"`
	UserID int64  `json:"userId,string"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a shared symmetric key.
type Manager struct {
	signKey []byte
	now     func() time.Time
}

// NewManager constructs a Manager. The key is held out-of-band configuration
// and must never be logged.
func NewManager(signKey []byte) *Manager {
	return &Manager{signKey: signKey, now: time.Now}
}

// Issue mints a signed token for the account. Every issuance gets a fresh
// random jti; issuedAt and expiresAt derive from a single clock reading.
func (m *Manager) Issue(acc *model.Account) (string, time.Time, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", time.Time{}, err
	}
	now := m.now().UTC()
	exp := now.Add(TTL)
	claims := Claims{
		Email:  acc.Email,
		UserID: acc.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.Username,
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			ID:        jti.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Validate parses and verifies a serialized token. It distinguishes an expired
// token (errs.ErrTokenExpired) from everything else — bad signature, wrong
// signing method, wrong issuer/audience, malformed input — which all map to
// errs.ErrTokenInvalid. Callers surface both as the same access denial.
func (m *Manager) Validate(tokenStr string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.signKey, nil
	},
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.ErrTokenExpired
		}
		return nil, errs.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, errs.ErrTokenInvalid
	}
	return &claims, nil
}
