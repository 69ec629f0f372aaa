package headword

import (
	"sort"
	"strings"
)

// stopwords are closed-class words that never match as a single-token
// phrase on their own. Multi-token phrases containing them still match.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "if": true, "in": true, "on": true, "to": true,
	"for": true, "with": true, "at": true, "by": true, "from": true,
	"up": true, "about": true, "into": true, "over": true, "after": true,
	"under": true, "again": true, "further": true, "then": true,
	"once": true, "of": true, "off": true, "out": true, "so": true,
	"than": true, "too": true, "very": true, "he": true, "she": true,
	"it": true, "they": true, "them": true, "him": true, "her": true,
	"you": true, "i": true, "we": true, "us": true, "my": true,
	"your": true, "his": true, "their": true, "our": true,
}

// FindMatches scans every contiguous token span of quote against the
// index's headwords, case-insensitively, and returns the matching source
// files, deduplicated and sorted. Span enumeration is deliberately
// unbounded in phrase length; quotes are short verse fragments in
// practice. Passing categories restricts matching to entries from those
// corpus categories.
//
// Both sides are lowered at call time rather than at index-build time, so
// the result is a pure function of the arguments.
func FindMatches(quote string, index Index, categories ...string) []string {
	tokens := strings.Fields(strings.ToLower(quote))
	if len(tokens) == 0 || len(index) == 0 {
		return nil
	}

	var allowed map[string]bool
	if len(categories) > 0 {
		allowed = make(map[string]bool, len(categories))
		for _, c := range categories {
			allowed[c] = true
		}
	}

	matched := make(map[string]bool)

	for start := 0; start < len(tokens); start++ {
		for end := start + 1; end <= len(tokens); end++ {
			span := tokens[start:end]
			if len(span) == 1 && stopwords[span[0]] {
				continue
			}
			phrase := strings.Join(span, " ")

			for _, entry := range index {
				if allowed != nil && !allowed[entry.Category] {
					continue
				}
				for _, hw := range entry.Headwords {
					if phrase == strings.ToLower(hw) {
						matched[entry.File] = true
						break // At most one hit per entry per span.
					}
				}
			}
		}
	}

	if len(matched) == 0 {
		return nil
	}

	files := make([]string, 0, len(matched))
	for file := range matched {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// IsStopword reports whether a single token is excluded from one-word
// phrase matching.
func IsStopword(token string) bool {
	return stopwords[strings.ToLower(token)]
}
