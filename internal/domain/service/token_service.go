package service

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verification failures. An expired token and a structurally broken token are
// distinct outcomes of the verifier; the HTTP guard collapses both into a
// single unauthorized response.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenService defines the interface for issuing and verifying session tokens.
// Tokens are self-contained: validity is determined purely by signature and
// expiry, never by server-side session state.
type TokenService interface {
	// Issue creates a signed session token bound to the given account ID.
	Issue(userID primitive.ObjectID) (string, error)

	// Verify checks signature and expiry and returns the bound account ID.
	// Fails with ErrTokenExpired or ErrTokenInvalid.
	Verify(token string) (primitive.ObjectID, error)

	// TokenTTL returns the configured session token lifetime.
	TokenTTL() time.Duration
}
