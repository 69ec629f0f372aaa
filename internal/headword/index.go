package headword

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/deferredreward/translation-note-writer-sub001/internal/model"
)

// ErrIndexUnavailable indicates the cached headword index could not be
// loaded. Classification degrades to the AI path; it never aborts a batch.
var ErrIndexUnavailable = errors.New("headword index unavailable")

// IndexFile is the well-known filename/cache key for the serialized index.
const IndexFile = "tw_headwords.json"

// Index is the in-memory headword table, treated as immutable once loaded.
type Index []model.HeadwordEntry

// Marshal serializes the index in its canonical byte form. The same input
// always yields the same bytes, so repeated extraction runs are
// byte-identical.
func (ix Index) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal index: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseIndex decodes a serialized index without transforming its contents.
func ParseIndex(data []byte) (Index, error) {
	var ix Index
	if err := json.Unmarshal(data, &ix); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return ix, nil
}

// WriteIndex serializes the index once and writes the identical bytes to
// every destination path, creating parent directories as needed.
func WriteIndex(ix Index, paths ...string) error {
	data, err := ix.Marshal()
	if err != nil {
		return err
	}

	for _, path := range paths {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create index dir: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write index: %w", err)
		}
	}
	return nil
}

// ReadIndex loads the index from a file written by WriteIndex.
func ReadIndex(path string) (Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return ParseIndex(data)
}

// Holder publishes an index snapshot to readers. Reloads swap the whole
// index atomically; readers never observe a partial update.
type Holder struct {
	ptr atomic.Pointer[Index]
}

// Store replaces the published index.
func (h *Holder) Store(ix Index) {
	h.ptr.Store(&ix)
}

// Snapshot returns the current index, or nil when none has been stored.
func (h *Holder) Snapshot() Index {
	p := h.ptr.Load()
	if p == nil {
		return nil
	}
	return *p
}
