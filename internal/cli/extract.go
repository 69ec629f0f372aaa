package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deferredreward/translation-note-writer-sub001/internal/headword"
	"github.com/deferredreward/translation-note-writer-sub001/internal/model"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	cacheDir   string
	noCategory bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [corpus-root]",
	Short: "Build the headword index from a translationWords corpus",
	Long: `Extract scans a translationWords corpus checkout and builds the
headword index used to resolve key-term rows without an AI call.

The corpus root must contain a bible/ directory with kt/, names/ and
other/ article folders. Each article's first-line heading supplies its
headwords. The index is written to the data directory (source of truth)
and to the cache directory (runtime copy) as identical bytes.

Example:
  tnw extract en_tw_repo
  tnw extract en_tw_repo --data-dir data --cache-dir cache
  tnw extract en_tw_repo --no-category`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&dataDir, "data-dir", "", "index output directory (default from config)")
	extractCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "runtime cache directory (default from config)")
	extractCmd.Flags().BoolVar(&noCategory, "no-category", false, "omit the category field from index entries")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()

	root := cfg.Corpus.Root
	if len(args) == 1 {
		root = args[0]
	}
	if dataDir == "" {
		dataDir = cfg.Corpus.DataDir
	}
	if cacheDir == "" {
		cacheDir = cfg.Cache.Dir
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Corpus root: %s\n", root)
		fmt.Fprintf(os.Stderr, "Data dir:    %s\n", dataDir)
		fmt.Fprintf(os.Stderr, "Cache dir:   %s\n", cacheDir)
		fmt.Fprintln(os.Stderr)
	}

	index, stats, err := headword.Extract(root, headword.ExtractOptions{
		IncludeCategory: !noCategory && cfg.Corpus.IncludeCategory,
	})
	if err != nil {
		return fmt.Errorf("extract headwords: %w", err)
	}

	paths := []string{
		filepath.Join(dataDir, headword.IndexFile),
		filepath.Join(cacheDir, headword.IndexFile),
	}
	if err := headword.WriteIndex(index, paths...); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Indexed %d articles (%d skipped)\n", stats.Entries, stats.Skipped)
	for _, p := range paths {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", p)
	}

	return nil
}
