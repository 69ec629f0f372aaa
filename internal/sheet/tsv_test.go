package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deferredreward/translation-note-writer-sub001/internal/model"
)

func writeWorkTSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "work.tsv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write work TSV: %v", err)
	}
	return path
}

func TestNewProvider_LoadsRows(t *testing.T) {
	path := writeWorkTSV(t,
		"PSA\t65:1\ttranslate-unknown\tyour faithfulness\t\t\ttranslate-unknown\n"+
			"\t65:2\t\tgreat things\tGo\tgreat deeds\tsee how 65:1\n")

	p, err := NewProvider(path, "psa")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if p.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", p.Len())
	}

	rows := p.All()

	// Row numbers line up with spreadsheet numbering (header is row 1).
	if rows[0].Number != 2 || rows[1].Number != 3 {
		t.Errorf("Expected row numbers 2 and 3, got %d and %d", rows[0].Number, rows[1].Number)
	}

	if rows[0].Book != "PSA" {
		t.Errorf("Expected book PSA, got %q", rows[0].Book)
	}
	if rows[0].Go != "LA" {
		t.Errorf("Expected empty Go? marker to default to LA, got %q", rows[0].Go)
	}
	if rows[0].GLQuote != "your faithfulness" {
		t.Errorf("Unexpected quote: %q", rows[0].GLQuote)
	}

	// Empty book column falls back to the uppercased provider book code.
	if rows[1].Book != "PSA" {
		t.Errorf("Expected fallback book PSA, got %q", rows[1].Book)
	}
	if rows[1].AT != "great deeds" {
		t.Errorf("Unexpected AT: %q", rows[1].AT)
	}
	if rows[1].Explanation != "see how 65:1" {
		t.Errorf("Unexpected explanation: %q", rows[1].Explanation)
	}
}

func TestNewProvider_SkipsBlankLines(t *testing.T) {
	path := writeWorkTSV(t, "PSA\t65:1\t\tquote\t\t\tnote\n\n\n")

	p, err := NewProvider(path, "PSA")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Len() != 1 {
		t.Errorf("Expected 1 row, got %d", p.Len())
	}
}

func TestNewProvider_ShortLinesPadded(t *testing.T) {
	path := writeWorkTSV(t, "PSA\t65:1\ttranslate-unknown\tquote\n")

	p, err := NewProvider(path, "PSA")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	row := p.All()[0]
	if row.Explanation != "" || row.AT != "" {
		t.Errorf("Expected padded empty columns, got %+v", row)
	}
}

func TestNewProvider_MissingFile(t *testing.T) {
	if _, err := NewProvider(filepath.Join(t.TempDir(), "absent.tsv"), "PSA"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestProvider_Pending(t *testing.T) {
	path := writeWorkTSV(t,
		"PSA\t65:1\t\ta\t\t\t\n"+
			"PSA\t65:2\t\tb\t\t\t\n"+
			"PSA\t65:3\t\tc\t\t\t\n")

	p, err := NewProvider(path, "PSA")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := p.Pending(0); len(got) != 3 {
		t.Errorf("Expected all 3 rows pending, got %d", len(got))
	}
	if got := p.Pending(2); len(got) != 2 {
		t.Errorf("Expected maxItems to cap at 2 rows, got %d", len(got))
	}
}

func TestProvider_PendingSkipsCompletedRows(t *testing.T) {
	path := writeWorkTSV(t,
		"PSA\t65:1\t\ta\tAI\t\t\n"+
			"PSA\t65:2\t\tb\t\t\t\n")

	p, err := NewProvider(path, "PSA")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	pending := p.Pending(0)
	if len(pending) != 1 || pending[0].Ref != "65:2" {
		t.Errorf("Expected only the unmarked row pending, got %+v", pending)
	}
}

func TestWriter_Write(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.tsv")

	rows := []model.Row{
		{Number: 2, Book: "PSA", Ref: "PSA 65:1", SRef: "translate-unknown", GLQuote: "your faithfulness"},
		{Number: 3, Book: "PSA", Ref: "65:2", GLQuote: "great\tthings"},
	}
	updates := []model.RowUpdate{
		{Number: 2, Values: map[string]string{"Go?": "AI", "AI TN": "TW found: faithful.md", "SRef": "translate-unknown"}},
	}

	if err := NewWriter(outPath).Write(rows, updates); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d lines", len(lines))
	}

	if lines[0] != "Reference\tID\tTags\tSupportReference\tQuote\tOccurrence\tNote" {
		t.Errorf("Unexpected header: %q", lines[0])
	}

	first := strings.Split(lines[1], "\t")
	if first[0] != "65:1" {
		t.Errorf("Expected book prefix stripped from reference, got %q", first[0])
	}
	if first[3] != "rc://*/ta/man/translate/translate-unknown" {
		t.Errorf("Expected rc:// support reference, got %q", first[3])
	}
	if first[6] != "TW found: faithful.md" {
		t.Errorf("Expected note in last column, got %q", first[6])
	}

	second := strings.Split(lines[2], "\t")
	if second[0] != "65:2" {
		t.Errorf("Expected bare reference unchanged, got %q", second[0])
	}
	if second[4] != "great things" {
		t.Errorf("Expected tab sanitized out of the quote, got %q", second[4])
	}
	if second[6] != "" {
		t.Errorf("Expected empty note for row without update, got %q", second[6])
	}
}
