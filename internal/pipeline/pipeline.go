// Package pipeline orchestrates one batch pass: classify rows, resolve
// the programmatic partition immediately, fan the rest out to the
// completion provider, and collect write-backs.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/deferredreward/translation-note-writer-sub001/internal/cache"
	"github.com/deferredreward/translation-note-writer-sub001/internal/classify"
	"github.com/deferredreward/translation-note-writer-sub001/internal/headword"
	"github.com/deferredreward/translation-note-writer-sub001/internal/llm"
	"github.com/deferredreward/translation-note-writer-sub001/internal/model"
	"github.com/deferredreward/translation-note-writer-sub001/internal/note"
	"github.com/deferredreward/translation-note-writer-sub001/internal/scrape"
	"github.com/deferredreward/translation-note-writer-sub001/internal/worker"
)

// Pipeline runs classification and note generation for row batches.
type Pipeline struct {
	cfg        *model.Config
	classifier *classify.Classifier
	holder     *headword.Holder
	store      *cache.DocumentStore
	provider   llm.Provider // nil when AI resolution is disabled
	fetcher    *scrape.Fetcher
	verses     map[string]scrape.BookText // Supporting source text by edition
	verbose    bool
}

// New creates a pipeline. A missing or broken headword index is not fatal
// here: affected rows degrade to the AI path at classification time.
func New(cfg *model.Config, verbose bool) (*Pipeline, error) {
	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("initialize LLM provider: %w", err)
		}
		provider = p
	}

	var pageCache cache.Cache
	if cfg.Cache.Enabled {
		pageCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	p := &Pipeline{
		cfg:        cfg,
		classifier: classify.NewClassifier(),
		holder:     &headword.Holder{},
		store:      cache.NewDocumentStore(cfg.Cache.Dir),
		provider:   provider,
		fetcher: scrape.NewFetcher(scrape.FetcherOptions{
			Timeout:           cfg.HTTP.Timeout,
			UserAgent:         cfg.HTTP.UserAgent,
			MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
			Cache:             pageCache,
			CacheTTL:          cfg.Cache.DiskTTL,
			RequestsPerSecond: cfg.HTTP.RequestsPerSecond,
			BurstSize:         cfg.HTTP.BurstSize,
		}),
		verses:  make(map[string]scrape.BookText),
		verbose: verbose,
	}

	if err := p.ReloadIndex(); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Headword index not loaded: %v\n", err)
		}
	}

	return p, nil
}

// ReloadIndex re-reads the cached headword index and swaps it in
// atomically. Readers of the previous snapshot are unaffected.
func (p *Pipeline) ReloadIndex() error {
	index, err := cache.LoadHeadwords(p.store)
	if err != nil {
		return err
	}
	p.holder.Store(index)
	return nil
}

// Summary reports what a batch pass did.
type Summary struct {
	Total        int
	Programmatic int
	AIResolved   int
	AIFailed     int
	AISkipped    int // Needs-AI rows left untouched (no provider or dry run)
}

// Process classifies rows and produces their write-backs. Programmatic
// rows never trigger an AI call; needs-AI rows run concurrently over the
// worker pool when a provider is configured. Updates come back in input
// row order.
func (p *Pipeline) Process(ctx context.Context, rows []model.Row) (Summary, []model.RowUpdate, error) {
	summary := Summary{Total: len(rows)}

	cctx := &classify.Context{Index: p.holder.Snapshot()}
	result := p.classifier.Classify(rows, cctx)
	summary.Programmatic = len(result.Programmatic)

	if p.verbose {
		fmt.Fprintf(os.Stderr, "Classified %d rows: %d programmatic, %d need AI\n",
			len(rows), len(result.Programmatic), len(result.NeedsAI))
	}

	var updates []model.RowUpdate

	for _, res := range result.Programmatic {
		text := p.programmaticNote(res)
		if text == "" {
			// A rule claimed the row but produced nothing usable; the
			// conservative outcome is to leave the row for a later pass.
			summary.Programmatic--
			continue
		}
		updates = append(updates, model.NoteUpdate(res.Row, text))
	}

	if p.provider == nil || p.cfg.Processing.DryRun {
		summary.AISkipped = len(result.NeedsAI)
		sortUpdates(updates)
		return summary, updates, nil
	}

	aiUpdates, resolved, failed := p.generateNotes(ctx, result.NeedsAI)
	summary.AIResolved = resolved
	summary.AIFailed = failed
	updates = append(updates, aiUpdates...)

	sortUpdates(updates)
	return summary, updates, nil
}

// programmaticNote renders the note for a rule-resolved row.
func (p *Pipeline) programmaticNote(res classify.Resolution) string {
	switch res.Rule {
	case classify.TranslateUnknownRule{}.Name():
		return note.TranslateUnknown(res.Matches)
	case classify.SeeHowRule{}.Name():
		return note.SeeHow(res.Row)
	default:
		return ""
	}
}

// generateNotes runs the needs-AI rows over the worker pool.
func (p *Pipeline) generateNotes(ctx context.Context, rows []model.Row) ([]model.RowUpdate, int, int) {
	if len(rows) == 0 {
		return nil, 0, 0
	}

	pool := worker.NewPool(ctx, p.cfg.Processing.Workers)
	pool.Start()

	for i, row := range rows {
		pool.Submit(&worker.NoteJob{
			Seq:      i,
			Row:      row,
			Verses:   p.versesFor(row),
			Provider: p.provider,
		})
	}

	results := pool.Wait()

	// Restore input order regardless of completion order.
	noteResults := make([]*worker.NoteResult, 0, len(results))
	for _, r := range results {
		noteResults = append(noteResults, r.(*worker.NoteResult))
	}
	sort.Slice(noteResults, func(i, j int) bool { return noteResults[i].Seq < noteResults[j].Seq })

	var updates []model.RowUpdate
	var resolved, failed int

	for _, r := range noteResults {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Row.Ref, r.Err)
			continue
		}
		resolved++
		updates = append(updates, model.NoteUpdate(r.Row, r.Note))
		if p.verbose {
			fmt.Fprintf(os.Stderr, "✓ %s (%s)\n", r.Row.Ref, r.Model)
		}
	}

	return updates, resolved, failed
}

// LoadSourceText fetches a source-text page (cached), parses its verse
// content, and makes it available to AI prompts under the edition label
// (e.g., "ULT").
func (p *Pipeline) LoadSourceText(ctx context.Context, edition, url string) error {
	body, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch %s source text: %w", edition, err)
	}

	book, err := scrape.ParseVersePage(body)
	if err != nil {
		return fmt.Errorf("parse %s source text: %w", edition, err)
	}

	p.verses[edition] = book
	if p.verbose {
		fmt.Fprintf(os.Stderr, "Loaded %s source text: %d chapters\n", edition, len(book))
	}
	return nil
}

// versesFor extracts the verse text for a row's reference from each
// loaded edition.
func (p *Pipeline) versesFor(row model.Row) map[string]string {
	if len(p.verses) == 0 {
		return nil
	}

	chapter, verse, ok := parseRef(row.Ref)
	if !ok {
		return nil
	}

	out := make(map[string]string, len(p.verses))
	for edition, book := range p.verses {
		if text := book.Verse(chapter, verse); text != "" {
			out[edition] = text
		}
	}
	return out
}

// parseRef parses "chapter:verse" locators, tolerating a book prefix and
// verse ranges ("PSA 65:1-2" yields 65, 1).
func parseRef(ref string) (int, int, bool) {
	if _, rest, found := strings.Cut(ref, " "); found {
		ref = rest
	}

	chapterStr, verseStr, found := strings.Cut(ref, ":")
	if !found {
		return 0, 0, false
	}
	if first, _, isRange := strings.Cut(verseStr, "-"); isRange {
		verseStr = first
	}

	chapter, err1 := strconv.Atoi(strings.TrimSpace(chapterStr))
	verse, err2 := strconv.Atoi(strings.TrimSpace(verseStr))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return chapter, verse, true
}

func sortUpdates(updates []model.RowUpdate) {
	sort.SliceStable(updates, func(i, j int) bool { return updates[i].Number < updates[j].Number })
}
