// Package store persists JSON documents keyed by string IDs across three
// namespaces. There is no locking or versioning: concurrent writers to the
// same document race at whole-document granularity and the last write wins.
package store

import "errors"

const (
	NamespaceSessions = "sessions"
	NamespaceIdeas    = "ideas"
	NamespaceComments = "comments"
)

// ErrNotFound is returned when a document is absent. Corrupt documents are
// reported the same way so callers can substitute a fresh structure.
var ErrNotFound = errors.New("document not found")

type Store interface {
	// Read returns the raw JSON document, or ErrNotFound.
	Read(namespace, id string) ([]byte, error)
	// Write stores the document, replacing any previous version.
	Write(namespace, id string, doc []byte) error
	// List returns all readable documents in the namespace, skipping any
	// that cannot be parsed.
	List(namespace string) ([][]byte, error)
}
