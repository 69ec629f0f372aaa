package headword

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testIndex() Index {
	return Index{
		{Article: "god", File: "god.md", Category: "kt", Headwords: []string{"God", "god"}},
		{Article: "bread", File: "bread.md", Category: "other", Headwords: []string{"bread"}},
	}
}

func TestIndex_MarshalIsStable(t *testing.T) {
	ix := testIndex()

	a, err := ix.Marshal()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	b, err := ix.Marshal()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("Expected repeated marshals to be byte-identical")
	}
	if a[len(a)-1] != '\n' {
		t.Error("Expected serialized index to end with a newline")
	}
}

func TestWriteIndex_IdenticalCopies(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data", IndexFile)
	cachePath := filepath.Join(dir, "cache", IndexFile)

	if err := WriteIndex(testIndex(), dataPath, cachePath); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	dataBytes, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("read data copy: %v", err)
	}
	cacheBytes, err := os.ReadFile(cachePath)
	if err != nil {
		t.Fatalf("read cache copy: %v", err)
	}

	if !bytes.Equal(dataBytes, cacheBytes) {
		t.Error("Expected both index copies to be byte-identical")
	}
}

func TestWriteIndex_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), IndexFile)

	want := testIndex()
	if err := WriteIndex(want, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, err := ReadIndex(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].File != want[i].File || got[i].Article != want[i].Article {
			t.Errorf("Entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestIndex_EntryJSONShape(t *testing.T) {
	data, err := Index{{Article: "god", File: "god.md", Category: "kt", Headwords: []string{"God"}}}.Marshal()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, key := range []string{`"twarticle"`, `"file"`, `"category"`, `"headwords"`} {
		if !bytes.Contains(data, []byte(key)) {
			t.Errorf("Expected serialized entry to contain %s key", key)
		}
	}
}

func TestIndex_CategoryOmittedWhenEmpty(t *testing.T) {
	data, err := Index{{Article: "god", File: "god.md", Headwords: []string{"God"}}}.Marshal()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if bytes.Contains(data, []byte(`"category"`)) {
		t.Error("Expected category key to be omitted for uncategorized entries")
	}
}

func TestReadIndex_Missing(t *testing.T) {
	_, err := ReadIndex(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("Expected ErrIndexUnavailable, got %v", err)
	}
}

func TestParseIndex_Malformed(t *testing.T) {
	_, err := ParseIndex([]byte("{not json"))
	if !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("Expected ErrIndexUnavailable, got %v", err)
	}
}

func TestHolder_Snapshot(t *testing.T) {
	var h Holder

	if h.Snapshot() != nil {
		t.Error("Expected nil snapshot before any store")
	}

	h.Store(testIndex())
	first := h.Snapshot()
	if len(first) != 2 {
		t.Fatalf("Expected 2 entries in snapshot, got %d", len(first))
	}

	// A reload must not disturb an already-taken snapshot.
	h.Store(Index{{Article: "paul", File: "paul.md", Headwords: []string{"Paul"}}})
	if len(first) != 2 {
		t.Errorf("Expected old snapshot to keep 2 entries, got %d", len(first))
	}
	if len(h.Snapshot()) != 1 {
		t.Errorf("Expected new snapshot to have 1 entry, got %d", len(h.Snapshot()))
	}
}
