package repository

import (
	"context"

	"github.com/greatochuko/fobeworkLMS/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store. The store's unique index on
	// the email column is the single authority on duplicates; Create returns
	// an already-exists error on violation rather than the caller doing a
	// read-then-write.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address, case-insensitively.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user in the store.
	Update(ctx context.Context, user *domain.User) error
}
