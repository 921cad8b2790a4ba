package analysis

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizedText holds the extracted document text and the lowercased copy
// used for case-insensitive matching.
type NormalizedText struct {
	Text  string
	Lower string
}

// Normalize composes the text to NFC so that decomposed accents coming out of
// PDF extraction match the dictionary, and prepares the lowercase copy.
func Normalize(text string) NormalizedText {
	text = norm.NFC.String(text)
	return NormalizedText{
		Text:  text,
		Lower: strings.ToLower(text),
	}
}

// Empty reports whether nothing was extracted at all.
// Whitespace-only text is not empty and still goes through the pipeline.
func (t NormalizedText) Empty() bool {
	return t.Text == ""
}
