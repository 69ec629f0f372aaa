package scrape

import "testing"

const sampleUSFM = `\id PSA
\c 65
\q1
\v 1 Praise awaits you, \nd God\nd*, in Zion.
\v 2 You who hear prayer,
to you all people will come.
\v 3 When we were overwhelmed by sins,
you forgave our transgressions.
\c 66
\v 1 Shout for joy to God, all the earth!
\v 41-42 Combined verse content here.
`

func TestParseUSFM_ChaptersAndVerses(t *testing.T) {
	book := ParseUSFM(sampleUSFM)

	if len(book) != 2 {
		t.Fatalf("Expected 2 chapters, got %d", len(book))
	}

	got := book.Verse(65, 1)
	want := "Praise awaits you, God, in Zion."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestParseUSFM_ContinuationLines(t *testing.T) {
	book := ParseUSFM(sampleUSFM)

	got := book.Verse(65, 2)
	want := "You who hear prayer, to you all people will come."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestParseUSFM_VerseRange(t *testing.T) {
	book := ParseUSFM(sampleUSFM)

	if book.Verse(66, 41) != book.Verse(66, 42) {
		t.Error("Expected combined verses to share content")
	}
	if book.Verse(66, 41) != "Combined verse content here." {
		t.Errorf("Unexpected combined verse text: %q", book.Verse(66, 41))
	}
}

func TestParseUSFM_StripsMarkup(t *testing.T) {
	book := ParseUSFM(`\c 1
\v 1 The \nd Lord\nd* spoke \f + \ft a footnote \f* plainly.
`)

	got := book.Verse(1, 1)
	want := "The Lord spoke plainly."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestParseUSFM_IgnoresPreChapterContent(t *testing.T) {
	book := ParseUSFM("\\id PSA\nsome front matter\n\\c 1\n\\v 1 First verse.\n")

	if len(book) != 1 {
		t.Fatalf("Expected 1 chapter, got %d", len(book))
	}
	if book.Verse(1, 1) != "First verse." {
		t.Errorf("Unexpected verse text: %q", book.Verse(1, 1))
	}
}

func TestBookText_VerseMisses(t *testing.T) {
	book := ParseUSFM(sampleUSFM)

	if book.Verse(99, 1) != "" {
		t.Error("Expected empty text for an absent chapter")
	}
	if book.Verse(65, 99) != "" {
		t.Error("Expected empty text for an absent verse")
	}
}

func TestParseVersePage_ExtractsFromHTML(t *testing.T) {
	page := []byte(`<html><head><title>PSA</title><style>p{}</style></head><body>
<div id="content">
<p>\c 65</p>
<p>\v 1 Praise awaits you, God, in Zion.</p>
<p>\v 2 You who hear prayer.</p>
</div>
<script>ignored()</script>
</body></html>`)

	book, err := ParseVersePage(page)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if book.Verse(65, 1) != "Praise awaits you, God, in Zion." {
		t.Errorf("Unexpected verse text: %q", book.Verse(65, 1))
	}
	if book.Verse(65, 2) != "You who hear prayer." {
		t.Errorf("Unexpected verse text: %q", book.Verse(65, 2))
	}
}
