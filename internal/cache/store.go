package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deferredreward/translation-note-writer-sub001/internal/headword"
)

// DocumentStore persists well-known JSON documents as plain files in the
// cache directory, next to the byte-cache entries. Documents are returned
// intact; the store never transforms their contents. Only offline jobs
// write documents; batch runs read them, so concurrent readers are safe.
type DocumentStore struct {
	dir string
}

// NewDocumentStore creates a document store rooted at dir.
func NewDocumentStore(dir string) *DocumentStore {
	return &DocumentStore{dir: dir}
}

// Dir returns the store's root directory.
func (s *DocumentStore) Dir() string { return s.dir }

// Load reads a document by its well-known key (e.g., "tw_headwords").
func (s *DocumentStore) Load(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Save writes a document, creating the cache directory as needed.
func (s *DocumentStore) Save(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Invalidate removes a document.
func (s *DocumentStore) Invalidate(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *DocumentStore) path(key string) string {
	if !strings.HasSuffix(key, ".json") {
		key += ".json"
	}
	return filepath.Join(s.dir, key)
}

// HeadwordKey is the well-known document key of the headword index.
const HeadwordKey = "tw_headwords"

// LoadHeadwords loads the headword index from the store. A missing or
// unparseable document yields headword.ErrIndexUnavailable.
func LoadHeadwords(s *DocumentStore) (headword.Index, error) {
	data, ok := s.Load(HeadwordKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s not found in %s", headword.ErrIndexUnavailable, HeadwordKey, s.dir)
	}
	return headword.ParseIndex(data)
}
