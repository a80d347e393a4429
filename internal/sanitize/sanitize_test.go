package sanitize

import "testing"

func TestStripMarkdown(t *testing.T) {
	got := StripMarkdown("**Bold** _and_ `code` with #heading")
	want := "Bold and code with heading"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStripMarkdownNoControlChars(t *testing.T) {
	input := "plain sentence, nothing special."
	if got := StripMarkdown(input); got != input {
		t.Fatalf("got %q, want unchanged input", got)
	}
}

func TestPlainTextStripsHTML(t *testing.T) {
	got := PlainText("<p>Good <b>news</b> today</p>")
	want := "Good news today"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPlainTextCollapsesWhitespace(t *testing.T) {
	got := PlainText("A  sunny\n\nday   ahead")
	want := "A sunny day ahead"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPlainTextEmptyInput(t *testing.T) {
	if got := PlainText("   "); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}
