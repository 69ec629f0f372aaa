// Package note assembles translation-note text: typographic cleanup,
// alternate-translation formatting, and final note layout for both
// programmatic and AI-resolved rows.
package note

import "strings"

// PostProcess strips curly braces and converts straight quotes to smart
// quotes. Double quotes alternate open/close; single quotes become
// apostrophes when attached to a word and directional quotes otherwise.
func PostProcess(text string) string {
	if text == "" {
		return text
	}

	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	inDouble := false
	for i, r := range runes {
		switch r {
		case '"':
			if inDouble {
				b.WriteRune('”')
			} else {
				b.WriteRune('“')
			}
			inDouble = !inDouble
		case '\'':
			switch {
			case i > 0 && isAlnum(runes[i-1]):
				// Apostrophe or closing quote after a word.
				b.WriteRune('’')
			case i < len(runes)-1 && isAlnum(runes[i+1]):
				b.WriteRune('‘')
			default:
				b.WriteRune('’')
			}
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// FormatAlternateTranslation renders the AT column for appending to a
// note. Multiple alternatives separated by '/' each get their own
// brackets.
func FormatAlternateTranslation(at string) string {
	at = strings.TrimSpace(at)
	if at == "" {
		return ""
	}

	if strings.Contains(at, "/") {
		var parts []string
		for _, part := range strings.Split(at, "/") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, "["+part+"]")
			}
		}
		return " Alternate translation: " + strings.Join(parts, " or ")
	}

	return " Alternate translation: [" + at + "]"
}

// CleanAIOutput strips surrounding quotes and trailing newlines from raw
// model output.
func CleanAIOutput(output string) string {
	cleaned := strings.TrimSpace(output)
	if len(cleaned) >= 2 {
		if (cleaned[0] == '"' && cleaned[len(cleaned)-1] == '"') ||
			(cleaned[0] == '\'' && cleaned[len(cleaned)-1] == '\'') {
			cleaned = cleaned[1 : len(cleaned)-1]
		}
	}
	return strings.TrimRight(cleaned, "\n")
}
