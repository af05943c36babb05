// Package quality gates entity candidates before they reach the assembled
// event. Frame matching and quality gating are deliberately separate: the
// matcher extracts slots by position, this package decides whether a slot
// actually names an organization.
package quality

import (
	"strings"
	"unicode"

	"github.com/leguplabs/capframe/internal/ontology"
)

// Rejection reasons reported by Check.
const (
	ReasonEmpty      = "empty"
	ReasonGeneric    = "generic_term"
	ReasonPlace      = "place_name"
	ReasonPossessive = "possessive_fragment"
	ReasonFreeText   = "free_text"
	ReasonLowercase  = "not_capitalized"
	ReasonInvestor   = "investor_context"
	ReasonTooLong    = "too_long"
)

// Verdict is the outcome of one entity check.
type Verdict struct {
	OK     bool
	Reason string
}

// Validator applies the plausibility heuristics backed by ontology lookups.
type Validator struct {
	onto *ontology.Ontology
}

// NewValidator creates a validator over the given ontology tables.
func NewValidator(onto *ontology.Ontology) *Validator {
	return &Validator{onto: onto}
}

// Check decides whether candidate plausibly names a company. allowInvestor
// permits known investor names, which are legitimate subjects for investment
// frames ("Sequoia leads investment in ...") but noise everywhere else.
func (v *Validator) Check(candidate string, allowInvestor bool) Verdict {
	name := strings.TrimSpace(candidate)
	if name == "" {
		return Verdict{Reason: ReasonEmpty}
	}
	if len(name) > 80 {
		return Verdict{Reason: ReasonTooLong}
	}
	if strings.HasSuffix(name, "'s") || strings.HasSuffix(name, "s'") {
		return Verdict{Reason: ReasonPossessive}
	}
	if v.onto.IsGenericTerm(name) {
		return Verdict{Reason: ReasonGeneric}
	}
	if v.onto.IsPlace(name) {
		return Verdict{Reason: ReasonPlace}
	}
	if !allowInvestor && v.onto.IsKnownInvestor(name) {
		return Verdict{Reason: ReasonInvestor}
	}
	first, _ := firstLetter(name)
	if !unicode.IsUpper(first) && !leadingDigit(name) {
		return Verdict{Reason: ReasonLowercase}
	}
	if isFreeText(name) {
		return Verdict{Reason: ReasonFreeText}
	}
	return Verdict{OK: true}
}

// IsPlausibleCompanyName is the strict form of Check used outside investment
// frames.
func (v *Validator) IsPlausibleCompanyName(candidate string) bool {
	return v.Check(candidate, false).OK
}

// junkPrefixes open editorial headlines that describe no discrete event.
var junkPrefixes = []string{
	"how ", "why ", "what ", "when ", "where ", "who ", "which ",
	"the rise of ", "the fall of ", "the future of ", "the end of ",
	"inside ", "meet ", "top ", "here's ", "here is ", "opinion:",
	"analysis:", "explained:", "everything you need to know",
}

// junkPhrases mark editorial framing anywhere in the title.
var junkPhrases = []string{
	" is changing ", " is transforming ", " is disrupting ", " is reshaping ",
	" is killing ", " is eating ", " explained", " you need to know",
	"things to know", "what we know",
}

// IsPublisherJunkTitle reports whether the title is editorial/opinion rather
// than a discrete capital event, returning true with the filter reason.
func (v *Validator) IsPublisherJunkTitle(title string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(title))
	if lower == "" {
		return "", false
	}
	for _, p := range junkPrefixes {
		if strings.HasPrefix(lower, p) {
			return "topic_headline", true
		}
	}
	for _, p := range junkPhrases {
		if strings.Contains(lower, p) {
			return "topic_headline", true
		}
	}
	return "", false
}

// isFreeText flags long fragments with no capitalized multi-word run: more
// likely a clause that leaked through slot extraction than a company name.
func isFreeText(name string) bool {
	words := strings.Fields(name)
	if len(words) <= 6 {
		return false
	}
	run := 0
	for _, w := range words {
		first, ok := firstLetter(w)
		if ok && unicode.IsUpper(first) {
			run++
			if run >= 2 {
				return false
			}
		} else {
			run = 0
		}
	}
	return true
}

func firstLetter(s string) (rune, bool) {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return r, true
		}
	}
	return 0, false
}

func leadingDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
