package postgres

import (
	"context"
	"errors"

	"github.com/adijith/HotelManagement/internal/errs"
	"github.com/adijith/HotelManagement/internal/model"
)

// Constraint names from the accounts migration; Create maps violations of each
// to its duplicate sentinel so a registration race stays a deterministic
// second-writer failure.
const (
	usernameConstraint = "accounts_username_key"
	emailConstraint    = "accounts_email_key"
)

// AccountRepo implements repository.AccountRepository using PostgreSQL.
type AccountRepo struct{ db *DB }

// NewAccountRepo constructs an account repository.
func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

// Create inserts a new account row and scans back the assigned ID and creation time.
func (r *AccountRepo) Create(ctx context.Context, acc *model.Account) error {
	const q = `
INSERT INTO accounts (username, email, password_digest)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	err := r.db.Pool.QueryRow(ctx, q, acc.Username, acc.Email, acc.PasswordDigest).
		Scan(&acc.ID, &acc.CreatedAt)
	switch uniqueViolation(err) {
	case usernameConstraint:
		return errs.ErrDuplicateUsername
	case emailConstraint:
		return errs.ErrDuplicateEmail
	}
	return err
}

// GetByUsername selects an account by login name.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	const q = `
SELECT id, username, email, password_digest, created_at
FROM accounts WHERE username=$1`
	row := r.db.Pool.QueryRow(ctx, q, username)
	var acc model.Account
	if err := row.Scan(&acc.ID, &acc.Username, &acc.Email, &acc.PasswordDigest, &acc.CreatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &acc, nil
}

// UsernameExists reports whether a row with the username exists.
func (r *AccountRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM accounts WHERE username=$1)`
	var exists bool
	if err := r.db.Pool.QueryRow(ctx, q, username).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// EmailExists reports whether a row with the email exists.
func (r *AccountRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM accounts WHERE email=$1)`
	var exists bool
	if err := r.db.Pool.QueryRow(ctx, q, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
