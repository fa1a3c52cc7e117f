// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUserNotFound is a domain-specific error returned when an account is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateName and ErrDuplicateEmail surface store-level uniqueness
// violations. The service's own pre-checks are advisory; a concurrent insert
// the pre-check missed still raises one of these from the store constraint.
var (
	ErrDuplicateName  = errors.New("duplicate account name")
	ErrDuplicateEmail = errors.New("duplicate account email")
)

// UserRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// Create persists a new account. Uniqueness violations are reported as
	// ErrDuplicateName / ErrDuplicateEmail.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)

	// FindByName retrieves a single account by its unique display name.
	FindByName(ctx context.Context, name string) (*entity.User, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List returns all non-deleted accounts.
	List(ctx context.Context) ([]*entity.User, error)

	// Update modifies an existing account. Uniqueness violations are reported
	// the same way as Create.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the account with the given ID, reporting ErrUserNotFound
	// when no such account exists.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
