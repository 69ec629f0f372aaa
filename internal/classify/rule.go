// Package classify partitions a batch of translation-note rows into those
// resolvable by deterministic rule and those needing an AI completion.
package classify

import (
	"strings"

	"github.com/deferredreward/translation-note-writer-sub001/internal/headword"
	"github.com/deferredreward/translation-note-writer-sub001/internal/model"
)

// TranslateUnknownMarker is the tag that requests dictionary-backed
// resolution.
const TranslateUnknownMarker = "translate-unknown"

// twnOverride in the explanation forces a row to the AI path even when the
// translate-unknown tag is present.
const twnOverride = "TWN"

// Context carries the immutable per-batch state rules consult. Index is
// nil when the cached headword index could not be loaded; rules that need
// it then pass, degrading their rows to the AI path.
type Context struct {
	Index      headword.Index
	Categories []string // Optional category filter for headword matching

	// RequiresAT reports whether a "see how" row needs an alternate
	// translation to be complete. Nil means always required.
	RequiresAT func(model.Row) bool
}

// Outcome is a rule's verdict on one row.
type Outcome struct {
	Claimed bool     // Row resolved programmatically by this rule
	Matches []string // Matched article files, when headword-backed
}

// Rule is one deterministic resolution strategy. Rules are evaluated in a
// fixed order; the first to claim a row wins, and a row no rule claims
// falls through to the AI path.
type Rule interface {
	Name() string
	Apply(row model.Row, ctx *Context) Outcome
}

// TranslateUnknownRule resolves rows tagged translate-unknown whose quote
// contains a known headword phrase. The tag alone is not enough: without a
// dictionary hit the row passes to the next rule.
type TranslateUnknownRule struct{}

func (TranslateUnknownRule) Name() string { return "translate-unknown" }

func (TranslateUnknownRule) Apply(row model.Row, ctx *Context) Outcome {
	if !tagged(row) {
		return Outcome{}
	}
	if ctx.Index == nil {
		// Index unavailable: degrade to the AI path, never fail the batch.
		return Outcome{}
	}

	matches := headword.FindMatches(row.GLQuote, ctx.Index, ctx.Categories...)
	if len(matches) == 0 {
		return Outcome{}
	}
	return Outcome{Claimed: true, Matches: matches}
}

func tagged(row model.Row) bool {
	if strings.Contains(row.Explanation, twnOverride) {
		return false
	}
	explanation := strings.ToLower(row.Explanation)
	sref := strings.ToLower(row.SRef)
	return strings.Contains(explanation, TranslateUnknownMarker) ||
		strings.Contains(sref, TranslateUnknownMarker)
}

// SeeHowRule resolves "see how <ref>" rows that already have everything
// they need: either an alternate translation is provided, or none is
// required for this row.
type SeeHowRule struct{}

func (SeeHowRule) Name() string { return "see-how" }

func (SeeHowRule) Apply(row model.Row, ctx *Context) Outcome {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(row.Explanation)), "see how") {
		return Outcome{}
	}

	required := true
	if ctx.RequiresAT != nil {
		required = ctx.RequiresAT(row)
	}
	if required && !row.HasAT() {
		return Outcome{}
	}
	return Outcome{Claimed: true}
}
