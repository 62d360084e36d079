package application

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripTags = bluemonday.StrictPolicy()

// plainText removes all markup from s and returns the remaining text
// unescaped, so it is stored once and escaped only when rendered.
func plainText(s string) string {
	s = strings.ToValidUTF8(s, "")
	return html.UnescapeString(stripTags.Sanitize(s))
}

// SanitizeText turns single-line input into plain text: tags stripped, every
// run of whitespace (line breaks included) collapsed to one space, trimmed.
func SanitizeText(s string) string {
	return strings.Join(strings.Fields(plainText(s)), " ")
}

// SanitizeTextarea is SanitizeText for multi-line input: line breaks are kept
// and normalised to \n, and the result is trimmed.
func SanitizeTextarea(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(plainText(s))
}
