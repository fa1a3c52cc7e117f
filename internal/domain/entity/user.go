// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the core entity in the system, representing a single account.
// The identifier is a 24-hex-character ObjectID; name and email are globally
// unique across all non-deleted accounts.
type User struct {
	ID           primitive.ObjectID // Stable, immutable account identifier.
	Name         string             // Display name, unique, 1-16 characters.
	Email        string             // Login identifier, unique, valid email syntax.
	PasswordHash string             // One-way hash of the password. Never the plaintext.
	Avatar       string             // Optional reference to the stored avatar bytes.
	CreatedAt    time.Time          // Timestamp of when this account was created.
	UpdatedAt    time.Time          // Timestamp of the last modification.
}
