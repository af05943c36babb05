package extract

import (
	"regexp"
	"strings"
)

var roundRe = regexp.MustCompile(`(?i)\b(pre-seed|preseed|seed|series [a-f])\b`)

// referentialCues within a few words before a round token indicate the phrase
// refers back to an earlier round ("following their Series C") rather than
// announcing the current one. The cue list is the chosen disambiguation
// heuristic pending a larger labeled corpus; it is exercised directly by the
// round extractor tests.
var referentialCues = map[string]bool{
	"following": true, "after": true, "since": true, "post": true,
	"their": true, "last": true, "previous": true, "earlier": true,
}

// Round extracts the funding round announced by the title, if any. Milestone
// references to past rounds are excluded.
func Round(title string) (string, bool) {
	for _, loc := range roundRe.FindAllStringIndex(title, -1) {
		if referencesPastRound(title[:loc[0]]) {
			continue
		}
		return canonicalRound(title[loc[0]:loc[1]]), true
	}
	return "", false
}

// referencesPastRound checks up to four words immediately before the token.
func referencesPastRound(prefix string) bool {
	words := strings.Fields(strings.ToLower(prefix))
	from := len(words) - 4
	if from < 0 {
		from = 0
	}
	for _, w := range words[from:] {
		if referentialCues[strings.Trim(w, ",.;:-")] {
			return true
		}
	}
	return false
}

func canonicalRound(token string) string {
	lower := strings.ToLower(token)
	switch {
	case lower == "pre-seed" || lower == "preseed":
		return "Pre-Seed"
	case lower == "seed":
		return "Seed"
	default:
		// "series x" -> "Series X"
		return "Series " + strings.ToUpper(lower[len(lower)-1:])
	}
}
