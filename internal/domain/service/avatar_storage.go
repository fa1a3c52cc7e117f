package service

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AvatarStorage abstracts the external byte store holding avatar images.
// The core only deals in the opaque reference the store hands back.
type AvatarStorage interface {
	// Store writes the avatar bytes for the given account and returns the
	// reference to persist on the account record.
	Store(ctx context.Context, userID primitive.ObjectID, filename string, r io.Reader) (string, error)
}
