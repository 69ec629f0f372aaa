package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/deferredreward/translation-note-writer-sub001/internal/model"
	"github.com/deferredreward/translation-note-writer-sub001/internal/note"
)

// Provider defines the interface for completion providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// GenerateNote produces a translation-note suggestion for one row.
	GenerateNote(ctx context.Context, req NoteRequest) (*NoteResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible.
	IsAvailable(ctx context.Context) bool
}

// NoteRequest contains the input for note generation.
type NoteRequest struct {
	// Row is the work item needing a note.
	Row model.Row

	// NoteType selects the instruction variant (see_how, given_at, writes_at).
	NoteType note.Type

	// Verses holds supporting source text keyed by edition (e.g., "ULT", "UST").
	Verses map[string]string

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model is the specific model to use (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// NoteResponse contains the provider's output.
type NoteResponse struct {
	Text       string // Raw note text (before final formatting)
	Model      string // Model that generated the response
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	Provider  string // "openai", "anthropic", "ollama", ""
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int

	// Proxy settings (honored by the Ollama transport).
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// systemMessage is the shared system prompt for all providers.
const systemMessage = "You are an assistant writing concise translation notes for Bible translators. " +
	"Write one short note explaining the translation issue in the quoted text. " +
	"Never include greetings, preamble, or commentary about your task."

// BuildPrompt constructs the default note-generation prompt for a row.
func BuildPrompt(req NoteRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Reference: %s\n", req.Row.Ref)
	fmt.Fprintf(&b, "Quoted text: %s\n", req.Row.GLQuote)
	if req.Row.SRef != "" {
		fmt.Fprintf(&b, "Issue type: %s\n", req.Row.SRef)
	}
	if req.Row.Explanation != "" {
		fmt.Fprintf(&b, "Guidance: %s\n", req.Row.Explanation)
	}

	for edition, text := range req.Verses {
		if text != "" {
			fmt.Fprintf(&b, "%s verse text: %s\n", edition, text)
		}
	}

	switch req.NoteType {
	case note.TypeGivenAT:
		b.WriteString("\nWrite a 1-2 sentence note explaining the translation issue. " +
			"Do not suggest an alternate translation; one is already provided and will be appended.")
	case note.TypeWritesAT:
		b.WriteString("\nWrite a 1-2 sentence note explaining the translation issue, " +
			"ending with: Alternate translation: [your suggestion]")
	default:
		b.WriteString("\nWrite a 1-2 sentence translation note for this row.")
	}

	return b.String()
}
