package frame

import (
	"strings"

	"golang.org/x/net/html"
)

// NormalizeTitle prepares a feed-supplied title for matching: embedded markup
// is stripped, entities are unescaped, whitespace is collapsed, and a trailing
// "| Publisher" segment is removed. Normalization preserves the original
// casing because slot extraction reads entity names out of the title.
func NormalizeTitle(raw string) string {
	text := stripMarkup(raw)
	text = strings.Join(strings.Fields(text), " ")

	// Feeds often append the outlet after a pipe. A dash is too ambiguous to
	// strip (company names and deal phrasing both use it).
	if idx := strings.LastIndex(text, " | "); idx > 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// stripMarkup removes tags and unescapes entities using the HTML tokenizer.
// Titles arrive from RSS feeds and occasionally carry <b> wrappers or escaped
// ampersands.
func stripMarkup(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return raw
	}
	tok := html.NewTokenizer(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			buf.Write(tok.Text())
		}
	}
	return buf.String()
}
