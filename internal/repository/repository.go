// Package repository defines the storage interfaces the service layer
// programs against. Concrete implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/sakif/blog-backend/internal/model"
)

// UserRepository is the contract for the user record store.
//
// Uniqueness of email and username is the store's job (UNIQUE constraints
// in the sqlite implementation). Create reports a duplicate
// email as apperror.ErrConflict so a signup race resolves to a 409, never
// a silent double-creation.
type UserRepository interface {
	// Create persists a new user and assigns ID/CreatedAt/UpdatedAt.
	// Returns apperror.ErrConflict if the email is already registered.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail looks a user up by email (case-insensitive).
	// Returns apperror.ErrNotFound if no account exists.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID looks a user up by internal ID.
	// Returns apperror.ErrNotFound if no account exists.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// UsernameExists reports whether any user already holds the handle.
	UsernameExists(ctx context.Context, username string) (bool, error)
}
