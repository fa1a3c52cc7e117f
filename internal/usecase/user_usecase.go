// Package usecase defines the application's business operations and their
// input/output shapes.
package usecase

import (
	"context"
	"io"

	"passport/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterInput carries a registration candidate.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterOutput carries the created account and its session token.
type RegisterOutput struct {
	User  *entity.User
	Token string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginOutput carries the authenticated account and its session token.
type LoginOutput struct {
	User  *entity.User
	Token string
}

// UpdateInput is a partial patch of mutable account fields. Nil means the
// field is absent from the patch; only supplied fields are validated and
// written. Changing the password requires the verifying old password.
type UpdateInput struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	OldPassword *string `json:"oldPassword"`
}

// UserUsecase is the account service: it orchestrates validation, uniqueness
// enforcement, password hashing, token issuance, and the owner-only mutation
// rule.
type UserUsecase interface {
	// Register validates the candidate, enforces name/email uniqueness (name
	// checked first), hashes the password, persists the account, and issues a
	// session token.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies the credentials and issues a session token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetByID returns the account for a well-formed id, or (nil, nil) when the
	// id is well-formed but unmatched. A malformed id is a client error.
	GetByID(ctx context.Context, idHex string) (*entity.User, error)

	// List returns all non-deleted accounts.
	List(ctx context.Context) ([]*entity.User, error)

	// Update applies a partial patch to the account identified by idHex.
	// The caller must be the account owner.
	Update(ctx context.Context, callerID primitive.ObjectID, idHex string, patch *UpdateInput) (*entity.User, error)

	// Delete removes the account identified by idHex. The caller must be the
	// account owner.
	Delete(ctx context.Context, callerID primitive.ObjectID, idHex string) error

	// AttachAvatar stores the uploaded bytes and persists the resulting
	// reference on the caller's own account.
	AttachAvatar(ctx context.Context, callerID primitive.ObjectID, filename string, r io.Reader) error

	// RequestPasswordRecovery triggers recovery dispatch for the account with
	// the given email, if it exists.
	RequestPasswordRecovery(ctx context.Context, email string) error
}
