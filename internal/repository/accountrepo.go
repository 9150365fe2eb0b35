// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/adijith/HotelManagement/internal/model"
)

// AccountRepository provides durable access to registered accounts.
type AccountRepository interface {
	// Create inserts a new account and fills in its assigned ID and CreatedAt.
	// A username or email collision is reported as errs.ErrDuplicateUsername
	// or errs.ErrDuplicateEmail; the database constraint is the authority,
	// not any prior existence check.
	Create(ctx context.Context, acc *model.Account) error
	// GetByUsername loads an account by its login name.
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	// UsernameExists reports whether the username is taken (fast-path check).
	UsernameExists(ctx context.Context, username string) (bool, error)
	// EmailExists reports whether the email is taken (fast-path check).
	EmailExists(ctx context.Context, email string) (bool, error)
}
