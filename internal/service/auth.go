// Package service contains the application service orchestrating authentication.
package service

import (
	"context"

	"github.com/adijith/HotelManagement/internal/crypto"
	"github.com/adijith/HotelManagement/internal/errs"
	"github.com/adijith/HotelManagement/internal/limiter"
	"github.com/adijith/HotelManagement/internal/model"
	"github.com/adijith/HotelManagement/internal/repository"
	"github.com/adijith/HotelManagement/internal/token"
)

// AuthService defines login and registration as atomic operations.
type AuthService interface {
	// Login verifies credentials and returns a fresh session.
	Login(ctx context.Context, username, password, ip string) (model.Session, error)
	// Register creates an account and authenticates it in the same call.
	Register(ctx context.Context, username, email, password string) (model.Session, error)
}

type AuthServiceImpl struct {
	accounts repository.AccountRepository
	hasher   crypto.Hasher
	tokens   *token.Manager
	lim      limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(accounts repository.AccountRepository, hasher crypto.Hasher, tokens *token.Manager, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{accounts: accounts, hasher: hasher, tokens: tokens, lim: lim}
}

// Login authenticates a user with rate limiting by (username, ip).
// An unknown username and a wrong password both come back as
// errs.ErrInvalidCredentials so responses cannot enumerate accounts.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password, ip string) (model.Session, error) {
	if username == "" || password == "" {
		return model.Session{}, errs.ErrInvalidCredentials
	}
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, username, ipHash)
	if err != nil {
		return model.Session{}, err
	}
	if !allowed {
		return model.Session{}, errs.ErrRateLimited
	}

	acc, err := s.accounts.GetByUsername(ctx, username)
	if err != nil || !s.hasher.Verify(password, acc.PasswordDigest) {
		if blocked, _, ferr := s.lim.Failure(ctx, username, ipHash); ferr == nil && blocked {
			return model.Session{}, errs.ErrRateLimited
		}
		// lookup errors are masked the same as a wrong password
		return model.Session{}, errs.ErrInvalidCredentials
	}

	// best-effort counter reset
	_ = s.lim.Success(ctx, username, ipHash)

	return s.issueSession(acc)
}

// Register creates a new account and returns a session for it, so no separate
// login step is needed. The existence checks are a fast path; the storage
// uniqueness constraints decide races between concurrent registrations.
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (model.Session, error) {
	if username == "" || email == "" || password == "" {
		return model.Session{}, errs.ErrValidation
	}

	if taken, err := s.accounts.UsernameExists(ctx, username); err != nil {
		return model.Session{}, err
	} else if taken {
		return model.Session{}, errs.ErrDuplicateUsername
	}
	if taken, err := s.accounts.EmailExists(ctx, email); err != nil {
		return model.Session{}, err
	} else if taken {
		return model.Session{}, errs.ErrDuplicateEmail
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return model.Session{}, err
	}
	acc := &model.Account{Username: username, Email: email, PasswordDigest: digest}
	if err := s.accounts.Create(ctx, acc); err != nil {
		// the repo maps a constraint firing despite the pre-check to the
		// matching duplicate sentinel, so a lost race surfaces as 400 not 500
		return model.Session{}, err
	}

	return s.issueSession(acc)
}

func (s *AuthServiceImpl) issueSession(acc *model.Account) (model.Session, error) {
	tok, exp, err := s.tokens.Issue(acc)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: tok, Username: acc.Username, Email: acc.Email, ExpiresAt: exp}, nil
}
