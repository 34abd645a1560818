package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each document as data/<namespace>/<id>.json.
type FileStore struct {
	root string
}

// NewFileStore creates the namespace directories under root on first use.
func NewFileStore(root string) (*FileStore, error) {
	for _, ns := range []string{NamespaceSessions, NamespaceIdeas, NamespaceComments} {
		if err := os.MkdirAll(filepath.Join(root, ns), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s directory: %w", ns, err)
		}
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) path(namespace, id string) string {
	return filepath.Join(s.root, namespace, id+".json")
}

func (s *FileStore) Read(namespace, id string) ([]byte, error) {
	data, err := os.ReadFile(s.path(namespace, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s/%s: %w", namespace, id, err)
	}
	if !json.Valid(data) {
		// Corrupt documents are treated as absent.
		return nil, ErrNotFound
	}
	return data, nil
}

func (s *FileStore) Write(namespace, id string, doc []byte) error {
	dir := filepath.Join(s.root, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", namespace, err)
	}
	if err := os.WriteFile(s.path(namespace, id), doc, 0o644); err != nil {
		return fmt.Errorf("writing %s/%s: %w", namespace, id, err)
	}
	return nil
}

func (s *FileStore) List(namespace string) ([][]byte, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, namespace))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", namespace, err)
	}

	var docs [][]byte
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.root, namespace, entry.Name()))
		if err != nil || !json.Valid(data) {
			continue
		}
		docs = append(docs, data)
	}
	return docs, nil
}
