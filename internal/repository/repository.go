package repository

import (
	"context"
)

// CartRepository persists serialized carts under a key. It plays the role of
// browser-local storage: one opaque document per cart session.
type CartRepository interface {
	// Load returns the document stored under key, or nil when there is none
	// or it has expired.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores data under key, replacing any previous document.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the document stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// SchemaMigrator is implemented by repositories backed by a SQL schema.
type SchemaMigrator interface {
	// Migrate creates the tables the repository needs if they do not exist.
	Migrate(ctx context.Context) error
}
