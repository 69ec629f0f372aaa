package note

import (
	"fmt"
	"strings"

	"github.com/deferredreward/translation-note-writer-sub001/internal/model"
)

// Type classifies how a note gets its alternate translation.
type Type string

const (
	TypeSeeHow   Type = "see_how"   // "See how" cross-reference note
	TypeGivenAT  Type = "given_at"  // AT provided in the row, appended verbatim
	TypeWritesAT Type = "writes_at" // Model writes the alternate translation itself
)

// TypeOf determines the note type for a row.
func TypeOf(row model.Row) Type {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(row.Explanation)), "see how") {
		return TypeSeeHow
	}
	if row.HasAT() {
		return TypeGivenAT
	}
	return TypeWritesAT
}

// SeeHow builds the cross-reference note for a "see how <ref>" row,
// zero-padding the chapter/verse link target to two digits.
func SeeHow(row model.Row) string {
	ref := strings.TrimSpace(strings.Replace(row.Explanation, "see how ", "", 1))
	ref = strings.TrimSpace(strings.Replace(ref, "See how ", "", 1))

	var text string
	if chapter, verse, ok := strings.Cut(ref, ":"); ok {
		text = fmt.Sprintf("See how you translated the similar expression in [%s:%s](../%s/%s.md).",
			chapter, verse, zeroPad(chapter), zeroPad(verse))
	} else {
		text = fmt.Sprintf("See how you translated the similar expression in %s.", ref)
	}

	return PostProcess(text + FormatAlternateTranslation(row.AT))
}

// TranslateUnknown builds the note for a row resolved by headword
// matching, listing the matched article files.
func TranslateUnknown(matches []string) string {
	if len(matches) == 0 {
		return ""
	}
	return PostProcess("TW found: " + strings.Join(matches, ", "))
}

// FormatFinal assembles the note for an AI-resolved row from the cleaned
// model output, appending the provided AT where the note type calls for
// it.
func FormatFinal(row model.Row, aiOutput string, noteType Type) string {
	text := aiOutput

	switch noteType {
	case TypeSeeHow:
		return SeeHow(row)
	case TypeWritesAT:
		// The model was asked to include the alternate translation; only
		// patch one in if it failed to and the row has one.
		if !strings.Contains(text, "Alternate translation:") && row.HasAT() {
			text += FormatAlternateTranslation(row.AT)
		}
	default:
		if row.HasAT() {
			text += FormatAlternateTranslation(row.AT)
		}
	}

	return PostProcess(text)
}

func zeroPad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
