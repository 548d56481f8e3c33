// Package docstore provides a document-oriented key-value store addressed by
// (collection, document id). Documents are schemaless JSON bodies; writes are
// either full inserts with a store-assigned id or merge-upserts that overwrite
// only the supplied top-level fields.
package docstore

import "context"

// Fields holds a document body as decoded by encoding/json. A key mapped to a
// nil value is an explicit null marker ("field intentionally cleared") and is
// distinct from the key being absent from the map.
type Fields map[string]any

// Document is a stored document together with its id.
type Document struct {
	ID     string
	Fields Fields
}

// Store is the backing document store.
type Store interface {
	// All returns every document in a collection.
	All(ctx context.Context, collection string) ([]Document, error)

	// Get returns one document's fields, or (nil, nil) if the id does not
	// exist in the collection.
	Get(ctx context.Context, collection, id string) (Fields, error)

	// Add creates a document with a store-assigned id and returns the id.
	Add(ctx context.Context, collection string, fields Fields) (string, error)

	// Merge upserts a document: it is created if absent, otherwise the
	// supplied top-level fields overwrite the stored ones (explicit nulls
	// overwrite too) and fields not supplied are left untouched.
	Merge(ctx context.Context, collection, id string, fields Fields) error

	// Delete removes a document. Deleting a missing id is not an error.
	Delete(ctx context.Context, collection, id string) error
}
