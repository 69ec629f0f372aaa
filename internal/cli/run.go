package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/deferredreward/translation-note-writer-sub001/internal/model"
	"github.com/deferredreward/translation-note-writer-sub001/internal/pipeline"
	"github.com/deferredreward/translation-note-writer-sub001/internal/sheet"
	"github.com/spf13/cobra"
)

var (
	bookCode    string
	outputPath  string
	maxItems    int
	workers     int
	dryRun      bool
	runTimeout  time.Duration
	noCache     bool
	sourceURLs  []string
	llmEnabled  bool
	llmProvider string
	llmModel    string
	// dataDir and cacheDir are defined in extract.go and shared here
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <work.tsv>",
	Short: "Classify a work TSV and draft the notes it can",
	Long: `Run processes one batch of flagged translation-note rows:
- Load pending rows from the work TSV
- Resolve key-term and "see how" rows from the headword index (no AI call)
- Draft the remaining rows with the configured AI provider
- Write the resolved notes to the output TSV

Example:
  tnw run work.tsv --book PSA
  tnw run work.tsv --book PSA --output notes.tsv --dry-run
  tnw run work.tsv --book PSA --llm anthropic --llm-model claude-3-5-haiku-20241022
  tnw run work.tsv --book PSA --source-url "ULT=https://example.org/ult/psa.html"`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Batch flags
	runCmd.Flags().StringVar(&bookCode, "book", "", "fallback book code for rows without one (e.g. PSA)")
	runCmd.Flags().StringVar(&outputPath, "output", "output.tsv", "output TSV path")
	runCmd.Flags().IntVar(&maxItems, "max-items", 0, "maximum rows to process (0 = all)")
	runCmd.Flags().IntVar(&workers, "workers", 4, "number of concurrent AI workers")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "classify only; never call the AI provider")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 10*time.Minute, "total timeout for the batch")

	// Cache and source-text flags
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache (force fresh fetches)")
	runCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default from config)")
	runCmd.Flags().StringArrayVar(&sourceURLs, "source-url", nil, "source text page as EDITION=URL (repeatable)")

	// LLM flags
	runCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable AI note drafting")
	runCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runRun(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	cfg.Processing.Workers = workers
	cfg.Processing.MaxItems = maxItems
	cfg.Processing.DryRun = dryRun

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	provider, err := sheet.NewProvider(input, strings.ToUpper(bookCode))
	if err != nil {
		return err
	}

	rows := provider.Pending(cfg.Processing.MaxItems)
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d rows (%d pending)\n", provider.Len(), len(rows))
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to do")
		return nil
	}

	p, err := pipeline.New(cfg, verbose)
	if err != nil {
		return err
	}

	// Make source text available to AI prompts
	for _, pair := range sourceURLs {
		edition, url, found := strings.Cut(pair, "=")
		if !found {
			return fmt.Errorf("invalid --source-url %q (want EDITION=URL)", pair)
		}
		if err := p.LoadSourceText(ctx, edition, url); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s source text unavailable: %v\n", edition, err)
		}
	}

	summary, updates, err := p.Process(ctx, rows)
	if err != nil {
		return fmt.Errorf("process batch: %w", err)
	}

	writer := sheet.NewWriter(outputPath)
	if err := writer.Write(provider.All(), updates); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:         %d rows\n", summary.Total)
	fmt.Fprintf(os.Stderr, "  Programmatic:  %d\n", summary.Programmatic)
	fmt.Fprintf(os.Stderr, "  AI resolved:   %d\n", summary.AIResolved)
	fmt.Fprintf(os.Stderr, "  AI failed:     %d\n", summary.AIFailed)
	if summary.AISkipped > 0 {
		fmt.Fprintf(os.Stderr, "  AI skipped:    %d\n", summary.AISkipped)
	}
	fmt.Fprintf(os.Stderr, "  Output:        %s\n", outputPath)

	return nil
}
