package note

import "testing"

func TestPostProcess_SmartDoubleQuotes(t *testing.T) {
	got := PostProcess(`He said "peace" twice: "peace"`)
	want := "He said “peace” twice: “peace”"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPostProcess_Apostrophe(t *testing.T) {
	got := PostProcess("God's people won't forget")
	want := "God’s people won’t forget"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPostProcess_SingleQuotePair(t *testing.T) {
	got := PostProcess("the word 'selah' here")
	want := "the word ‘selah’ here"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPostProcess_StripsBraces(t *testing.T) {
	got := PostProcess("keep {this} text")
	want := "keep this text"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPostProcess_Empty(t *testing.T) {
	if got := PostProcess(""); got != "" {
		t.Errorf("Expected empty output, got %q", got)
	}
}

func TestFormatAlternateTranslation_Single(t *testing.T) {
	got := FormatAlternateTranslation("flat bread")
	want := " Alternate translation: [flat bread]"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestFormatAlternateTranslation_Multiple(t *testing.T) {
	got := FormatAlternateTranslation("flat bread / thin cake")
	want := " Alternate translation: [flat bread] or [thin cake]"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestFormatAlternateTranslation_Empty(t *testing.T) {
	if got := FormatAlternateTranslation("  "); got != "" {
		t.Errorf("Expected empty output for blank AT, got %q", got)
	}
}

func TestCleanAIOutput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"surrounding double quotes", `"A drafted note."`, "A drafted note."},
		{"surrounding single quotes", `'A drafted note.'`, "A drafted note."},
		{"trailing newlines", "A drafted note.\n\n", "A drafted note."},
		{"interior quotes kept", `The "inner" quote stays`, `The "inner" quote stays`},
		{"already clean", "A drafted note.", "A drafted note."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanAIOutput(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
