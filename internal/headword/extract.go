package headword

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/deferredreward/translation-note-writer-sub001/internal/model"
)

// ErrCorpusNotFound indicates the corpus root or its bible/ subdirectory is
// missing. Extraction cannot proceed and nothing is written.
var ErrCorpusNotFound = errors.New("corpus not found")

// Categories are the fixed corpus subdirectories, in scan order.
var Categories = []string{"kt", "names", "other"}

// ExtractOptions controls extraction behavior.
type ExtractOptions struct {
	// IncludeCategory emits the category field on each entry.
	IncludeCategory bool
}

// ExtractStats reports what an extraction run saw.
type ExtractStats struct {
	Entries int // Entries emitted
	Skipped int // Articles without a parseable heading
}

// Extract builds a headword index from a corpus directory tree. The corpus
// root must contain a bible/ subdirectory; each category directory under it
// holds .md articles whose first line is a heading of comma-separated
// headwords. Articles without such a heading are skipped, never fatal.
func Extract(root string, opts ExtractOptions) (Index, *ExtractStats, error) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, root)
	}

	biblePath := filepath.Join(root, "bible")
	if info, err := os.Stat(biblePath); err != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: bible directory not found in %s", ErrCorpusNotFound, root)
	}

	var index Index
	stats := &ExtractStats{}

	for _, category := range Categories {
		dir := filepath.Join(biblePath, category)
		names, err := listArticles(dir)
		if err != nil {
			// A missing category directory contributes nothing.
			continue
		}

		for _, name := range names {
			headwords, err := readHeading(filepath.Join(dir, name))
			if err != nil || len(headwords) == 0 {
				stats.Skipped++
				continue
			}

			entry := model.HeadwordEntry{
				Article:   strings.TrimSuffix(name, filepath.Ext(name)),
				File:      name,
				Headwords: headwords,
			}
			if opts.IncludeCategory {
				entry.Category = category
			}
			index = append(index, entry)
			stats.Entries++
		}
	}

	return index, stats, nil
}

// listArticles returns the .md files in dir in lexicographic order.
func listArticles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// readHeading reads only the first line of an article and parses its
// comma-separated headwords. A first line without a heading marker yields
// no headwords.
func readHeading(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, scanner.Err()
	}

	line := strings.TrimSpace(scanner.Text())
	if !strings.HasPrefix(line, "#") {
		return nil, nil
	}

	line = strings.TrimSpace(strings.TrimLeft(line, "#"))

	var headwords []string
	for _, token := range strings.Split(line, ",") {
		if token = strings.TrimSpace(token); token != "" {
			headwords = append(headwords, token)
		}
	}
	return headwords, nil
}
