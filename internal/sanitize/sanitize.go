// Package sanitize prepares model output for speech synthesis: narration
// input must be plain text, free of markdown control characters and HTML.
package sanitize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const markdownControlChars = "_[](){}#|*~>" + "`"

// PlainText strips HTML tags and markdown control characters and
// collapses runs of whitespace into single spaces.
func PlainText(input string) string {
	input = stripHTML(input)
	input = StripMarkdown(input)

	return strings.Join(strings.Fields(input), " ")
}

// StripMarkdown removes markdown control characters, keeping the text
// between them.
func StripMarkdown(input string) string {
	lookup := markdownControlCharLookup()
	charsToStrip := 0

	for i := range input {
		if lookup[input[i]] {
			charsToStrip++
		}
	}
	if charsToStrip == 0 {
		return input
	}

	var b strings.Builder
	b.Grow(len(input) - charsToStrip)

	for i := range input {
		c := input[i]
		if lookup[c] {
			continue
		}
		b.WriteByte(c)
	}

	return b.String()
}

func stripHTML(input string) string {
	if !strings.ContainsRune(input, '<') {
		return input
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return input
	}

	return doc.Text()
}

func markdownControlCharLookup() [256]bool {
	var m [256]bool
	for _, c := range []byte(markdownControlChars) {
		m[c] = true
	}
	return m
}
