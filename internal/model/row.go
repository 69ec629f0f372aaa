package model

import "strings"

// Row is a single translation-note work item as handed over by the
// spreadsheet side. Field names mirror the external column contract.
type Row struct {
	Number      int    `json:"row"`                 // 1-based row number in the source sheet/TSV
	Book        string `json:"book,omitempty"`      // Book code (e.g., "PSA")
	Ref         string `json:"ref"`                 // Reference locator, "chapter:verse"
	SRef        string `json:"sref,omitempty"`      // Secondary tag (support reference)
	GLQuote     string `json:"gl_quote"`            // Gateway-language quote text
	Explanation string `json:"explanation"`         // Primary tag / free-text guidance
	AT          string `json:"at,omitempty"`        // Provided alternate translation
	Go          string `json:"go,omitempty"`        // Processing marker ("Go?" column)
	Existing    string `json:"existing,omitempty"`  // Already-written note ("AI TN" column)
}

// HasAT reports whether the row carries a non-blank alternate translation.
func (r Row) HasAT() bool {
	return strings.TrimSpace(r.AT) != ""
}

// RowUpdate is a write-back for one sheet row. Values are keyed by the
// external column names (e.g., "Go?", "AI TN", "SRef").
type RowUpdate struct {
	Number int               `json:"row_number"`
	Values map[string]string `json:"updates"`
}

// NoteUpdate builds the standard update for a resolved row: the note text
// plus the completion marker, carrying SRef through when present.
func NoteUpdate(row Row, note string) RowUpdate {
	values := map[string]string{
		"Go?":   "AI",
		"AI TN": note,
	}
	if row.SRef != "" {
		values["SRef"] = row.SRef
	}
	return RowUpdate{Number: row.Number, Values: values}
}
