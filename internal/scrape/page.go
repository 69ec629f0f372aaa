package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// BookText is parsed verse content: chapter number → verse number → text.
type BookText map[int]map[int]string

// Verse returns the text for a chapter:verse, or "" when absent.
func (b BookText) Verse(chapter, verse int) string {
	if verses, ok := b[chapter]; ok {
		return verses[verse]
	}
	return ""
}

var (
	chapterRe    = regexp.MustCompile(`^\\c\s+(\d+)`)
	verseRe      = regexp.MustCompile(`\\v\s+(\d+(?:-\d+)?)\s+(.*)`)
	pairedTagRe  = regexp.MustCompile(`\\(add|nd|wj|em)\s+([^\\]+)\\(?:add|nd|wj|em)\*`)
	quotedTagRe  = regexp.MustCompile(`\\qt\s+([^\\]+)\\qt\*`)
	footnoteRe   = regexp.MustCompile(`\\f\s.*?\\f\*`)
	crossRefRe   = regexp.MustCompile(`\\x\s.*?\\x\*`)
	bareTagRe    = regexp.MustCompile(`\\[a-z0-9]+\*?`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ParseVersePage extracts USFM-marked verse content from a fetched page.
// The page's visible text is scanned line by line for \c and \v markers;
// everything else on a verse line is cleaned of inline markup. Combined
// verses ("41-42") yield one entry per verse with shared content, and
// marker-less lines (poetry continuations) append to the previous verse.
func ParseVersePage(pageHTML []byte) (BookText, error) {
	doc, err := html.Parse(strings.NewReader(string(pageHTML)))
	if err != nil {
		return nil, err
	}

	return ParseUSFM(visibleText(doc)), nil
}

// ParseUSFM parses raw USFM content into per-verse text.
func ParseUSFM(content string) BookText {
	book := make(BookText)
	var chapter int
	var lastVerses []int // Verse numbers of the most recent \v marker

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := chapterRe.FindStringSubmatch(line); m != nil {
			chapter, _ = strconv.Atoi(m[1])
			book[chapter] = make(map[int]string)
			lastVerses = nil
			continue
		}
		if chapter == 0 {
			continue
		}

		if m := verseRe.FindStringSubmatch(line); m != nil {
			text := cleanMarkup(m[2])
			lastVerses = verseRange(m[1])
			for _, v := range lastVerses {
				book[chapter][v] = text
			}
			continue
		}

		// Continuation line: append to the verses of the last marker.
		if cleaned := cleanMarkup(line); cleaned != "" && len(lastVerses) > 0 {
			for _, v := range lastVerses {
				if existing := book[chapter][v]; existing != "" {
					book[chapter][v] = existing + " " + cleaned
				} else {
					book[chapter][v] = cleaned
				}
			}
		}
	}

	return book
}

// verseRange expands "41-42" to its verse numbers; single verses yield one.
func verseRange(s string) []int {
	if first, second, ok := strings.Cut(s, "-"); ok {
		start, _ := strconv.Atoi(first)
		end, _ := strconv.Atoi(second)
		var verses []int
		for v := start; v <= end && v-start < 200; v++ {
			verses = append(verses, v)
		}
		return verses
	}
	v, _ := strconv.Atoi(s)
	return []int{v}
}

// cleanMarkup strips inline USFM tags from verse text.
func cleanMarkup(text string) string {
	text = pairedTagRe.ReplaceAllString(text, "$2")
	text = quotedTagRe.ReplaceAllString(text, `"$1"`)
	text = footnoteRe.ReplaceAllString(text, "")
	text = crossRefRe.ReplaceAllString(text, "")
	text = bareTagRe.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// visibleText walks an HTML document and collects its text nodes,
// preserving line structure so USFM markers stay at line starts.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "br", "p", "div":
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return buf.String()
}
