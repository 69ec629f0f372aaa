// Package sheet loads translation-note work rows from TSV files and
// writes resolved notes back. The TSV is the local stand-in for the
// spreadsheet collaborator; column names follow its external contract.
package sheet

import (
	"fmt"
	"os"
	"strings"

	"github.com/deferredreward/translation-note-writer-sub001/internal/model"
)

// Input column positions of the headerless work TSV:
// book, chapter:verse, issue type, quote, Go?, AT, explanation.
const inputColumns = 7

// Provider loads work rows from a TSV file.
type Provider struct {
	path     string
	bookCode string // Fallback book code when the column is empty
	rows     []model.Row
}

// NewProvider loads rows from the TSV at path. Row numbers start at 2 to
// line up with spreadsheet row numbering (row 1 is the header there).
func NewProvider(path, bookCode string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open work TSV: %w", err)
	}

	p := &Provider{path: path, bookCode: bookCode}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, "\t")
		for len(cols) < inputColumns {
			cols = append(cols, "")
		}

		book := strings.ToUpper(cols[0])
		if book == "" {
			book = bookCode
		}

		goMark := cols[4]
		if goMark == "" {
			goMark = "LA"
		}

		p.rows = append(p.rows, model.Row{
			Number:      i + 2,
			Book:        book,
			Ref:         cols[1],
			SRef:        cols[2],
			GLQuote:     cols[3],
			Go:          goMark,
			AT:          cols[5],
			Explanation: cols[6],
		})
	}

	return p, nil
}

// Len returns the number of loaded rows.
func (p *Provider) Len() int { return len(p.rows) }

// All returns every loaded row.
func (p *Provider) All() []model.Row { return p.rows }

// Pending returns rows still awaiting a note, in file order. Rows already
// marked complete or carrying a note are skipped. maxItems of 0 means no
// limit.
func (p *Provider) Pending(maxItems int) []model.Row {
	var pending []model.Row
	for _, row := range p.rows {
		if row.Existing != "" || row.Go == "AI" {
			continue
		}
		pending = append(pending, row)
		if maxItems > 0 && len(pending) == maxItems {
			break
		}
	}
	return pending
}

// Output columns of the results TSV.
var resultColumns = []string{"Reference", "ID", "Tags", "SupportReference", "Quote", "Occurrence", "Note"}

// Writer writes resolved rows to a results TSV.
type Writer struct {
	path string
}

// NewWriter creates a result writer targeting path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Write renders rows and their notes to the results TSV. Updates are
// matched to rows by row number; rows without an update keep an empty
// note column.
func (w *Writer) Write(rows []model.Row, updates []model.RowUpdate) error {
	notes := make(map[int]model.RowUpdate, len(updates))
	for _, u := range updates {
		notes[u.Number] = u
	}

	var b strings.Builder
	b.WriteString(strings.Join(resultColumns, "\t"))
	b.WriteString("\n")

	for _, row := range rows {
		update, ok := notes[row.Number]

		sref := row.SRef
		if ok && update.Values["SRef"] != "" {
			sref = update.Values["SRef"]
		}
		if sref != "" && !strings.HasPrefix(sref, "rc://") {
			sref = "rc://*/ta/man/translate/" + sref
		}

		// Strip a book prefix from the reference ("PSA 65:1" -> "65:1").
		ref := row.Ref
		if _, rest, found := strings.Cut(ref, " "); found {
			ref = rest
		}

		fields := []string{
			ref,
			"",
			"",
			sref,
			sanitize(row.GLQuote),
			"1",
			sanitize(notes[row.Number].Values["AI TN"]),
		}
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteString("\n")
	}

	if err := os.WriteFile(w.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write results TSV: %w", err)
	}
	return nil
}

// sanitize keeps TSV structure intact inside a field value.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
