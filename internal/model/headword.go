package model

// HeadwordEntry maps a glossary article to the surface-form terms it is
// indexed under. The JSON field names are the on-disk contract for the
// tw_headwords index and must not change.
type HeadwordEntry struct {
	Article   string   `json:"twarticle"`          // Stable article id (filename without extension)
	File      string   `json:"file"`               // Source filename (e.g., "faithful.md")
	Category  string   `json:"category,omitempty"` // Corpus subdirectory ("kt", "names", "other")
	Headwords []string `json:"headwords"`          // Surface forms as written, never empty
}
