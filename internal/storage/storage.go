// Package storage abstracts the object store holding backup artifacts.
package storage

import "context"

// ListedTimeLayout is the format of Entry.LastModified as reported by
// the store listing, interpreted as UTC.
const ListedTimeLayout = "2006-01-02 15:04:05"

// Entry is one object returned by a listing. It is never persisted;
// retention pruning and latest-selection both derive from it.
type Entry struct {
	Key          string
	LastModified string
	Size         int64
}

// PutOptions carry the attributes applied to an upload.
type PutOptions struct {
	// Metadata is stored with the object and returned by Metadata();
	// the content digest rides here.
	Metadata map[string]string

	// StorageClass, SSE and SSEKMSKeyID are passed through verbatim
	// when non-empty.
	StorageClass string
	SSE          string
	SSEKMSKeyID  string
}

// ObjectStore is the remote side of the backup lifecycle. PUT by key
// overwrites, so every operation is safe to repeat.
type ObjectStore interface {
	// Put uploads the file at localPath under key.
	Put(ctx context.Context, key, localPath string, opts PutOptions) error

	// Get downloads key into localPath.
	Get(ctx context.Context, key, localPath string) error

	// List returns all objects whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]Entry, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Metadata returns the user metadata stored with key.
	Metadata(ctx context.Context, key string) (map[string]string, error)
}
