// Package frame turns a normalized headline into a frame match: which verb
// pattern fired and which text spans fill the subject and object slots. The
// matcher is purely positional and pattern-driven; whether a slot names a real
// organization is the quality validator's call, not ours.
package frame

import (
	"strings"
	"unicode"

	"github.com/leguplabs/capframe/internal/catalog"
	"github.com/leguplabs/capframe/internal/model"
)

// MatchResult describes the outcome of scanning one title against the
// pattern catalog.
type MatchResult struct {
	Frame          model.FrameType
	PatternID      string
	Verb           string
	SubjectSlot    string
	ObjectSlot     string
	BaseConfidence float64
	Notes          []string
}

// Match scans the title against the catalog and returns the best match, or a
// result with FrameUnknown when nothing fires. Selection prefers the longest
// matching verb phrase; ties break by catalog order, which is part of the
// catalog's contract.
func Match(title string) MatchResult {
	lower := strings.ToLower(title)

	bestIdx := -1
	bestPos := -1
	for i, p := range catalog.All() {
		pos := findPhrase(lower, p.Verb)
		if pos < 0 {
			continue
		}
		if bestIdx < 0 || len(p.Verb) > len(catalog.All()[bestIdx].Verb) {
			bestIdx, bestPos = i, pos
		}
	}
	if bestIdx < 0 {
		return MatchResult{Frame: model.FrameUnknown}
	}

	p := catalog.All()[bestIdx]
	result := MatchResult{
		Frame:          p.Frame,
		PatternID:      p.ID,
		Verb:           strings.TrimSpace(title[bestPos : bestPos+len(p.Verb)]),
		BaseConfidence: p.Confidence,
	}

	subject := strings.TrimSpace(title[:bestPos])
	object := strings.TrimSpace(title[bestPos+len(p.Verb):])

	// A comma in the pre-verb text means the slot holds a leading clause, not
	// a name: "After months of talks, Acme merges with Globex" keeps "Acme".
	if idx := strings.LastIndex(subject, ","); idx >= 0 {
		result.Notes = append(result.Notes, "subject_clause_trimmed")
		subject = strings.TrimSpace(subject[idx+1:])
	}
	subject = stripSubjectModifiers(subject, &result.Notes)
	if p.Frame == model.FrameExecEvent {
		subject = stripExecRolePhrase(subject, &result.Notes)
		object = execPersonSlot(object, &result.Notes)
	} else {
		object = trimObjectSlot(object, p.Frame, &result.Notes)
	}

	result.SubjectSlot = strings.TrimRight(subject, " ,.;:")
	result.ObjectSlot = object
	return result
}

// findPhrase locates phrase in text as whole words, -1 if absent.
func findPhrase(text, phrase string) int {
	from := 0
	for {
		idx := strings.Index(text[from:], phrase)
		if idx < 0 {
			return -1
		}
		idx += from
		if boundaryBefore(text, idx) && boundaryAfter(text, idx+len(phrase)) {
			return idx
		}
		from = idx + 1
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	return !isWordRune(rune(text[idx-1]))
}

func boundaryAfter(text string, idx int) bool {
	if idx >= len(text) {
		return true
	}
	return !isWordRune(rune(text[idx]))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// backerSuffixes end a leading modifier phrase naming a backer or origin:
// "YC-backed Metaview", "Sam Altman-backed Helion", "Berlin-based Raisin".
var backerSuffixes = []string{"-backed", "-based", "-founded", "-owned", "-led"}

// stripSubjectModifiers removes leading modifier phrases from the subject
// slot. Each action taken is appended to notes for auditability. Backer names
// are recorded as notes, never promoted to entities.
func stripSubjectModifiers(subject string, notes *[]string) string {
	words := strings.Fields(subject)
	for len(words) > 1 {
		stripped := false
		for _, suffix := range backerSuffixes {
			// The modifier may span several words: "Sam Altman-backed".
			end := -1
			for i, w := range words[:len(words)-1] {
				if strings.HasSuffix(strings.ToLower(w), suffix) {
					end = i
					break
				}
				if i >= 3 {
					break
				}
			}
			if end >= 0 {
				modifier := strings.Join(words[:end+1], " ")
				backer := strings.TrimSuffix(modifier, modifier[strings.LastIndex(modifier, "-"):])
				*notes = append(*notes, "stripped_modifier:"+modifier)
				if suffix == "-backed" || suffix == "-led" {
					*notes = append(*notes, "backer:"+backer)
				}
				words = words[end+1:]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}

	// A single leading hyphenated participle is adjectival noise:
	// "Fast-growing Klarna raises ...".
	if len(words) > 1 && participleModifier(words[0]) {
		*notes = append(*notes, "stripped_modifier:"+words[0])
		words = words[1:]
	}
	return strings.Join(words, " ")
}

// participleModifier reports whether a token looks like "Fast-growing" or
// "Cash-strapped": hyphenated with a participle tail.
func participleModifier(token string) bool {
	idx := strings.Index(token, "-")
	if idx <= 0 || idx == len(token)-1 {
		return false
	}
	tail := strings.ToLower(token[idx+1:])
	return strings.HasSuffix(tail, "ing") || strings.HasSuffix(tail, "ed")
}

// objectDelimiters cut the object slot before trailing deal detail:
// "Rockset in $200M deal" keeps only "Rockset".
var objectDelimiters = []string{
	" in ", " for ", " to ", " at ", " as ", " on ", " amid ", " after ",
	" with ", " over ", ", ", " — ", " – ",
}

func trimObjectSlot(object string, frame model.FrameType, notes *[]string) string {
	if frame == model.FrameSelfEvent || object == "" {
		// Self events have no object entity; the raw tail stays available to
		// the auxiliary extractors via the full title.
		return ""
	}
	cut := len(object)
	for _, d := range objectDelimiters {
		if idx := strings.Index(object, d); idx > 0 && idx < cut {
			cut = idx
		}
	}
	if cut < len(object) {
		*notes = append(*notes, "object_trimmed")
	}
	return strings.TrimRight(strings.TrimSpace(object[:cut]), " ,.;:")
}

// execRoleTokens mark the start of a role-plus-person phrase inside an exec
// subject slot: "Databricks CEO Ali Ghodsi steps down" -> "Databricks".
var execRoleTokens = []string{
	"ceo", "cto", "cfo", "coo", "cpo", "ciso", "chief", "president",
	"chairman", "chairwoman", "founder", "co-founder", "vp",
}

func stripExecRolePhrase(subject string, notes *[]string) string {
	words := strings.Fields(subject)
	for i, w := range words {
		lw := strings.ToLower(strings.Trim(w, ",."))
		for _, role := range execRoleTokens {
			if lw == role {
				if i == 0 {
					return subject
				}
				*notes = append(*notes, "stripped_role_phrase:"+strings.Join(words[i:], " "))
				return strings.Join(words[:i], " ")
			}
		}
	}
	return subject
}

// execPersonSlot records the person named after an exec verb as an audit note
// and empties the slot: person names are never emitted as entities.
func execPersonSlot(object string, notes *[]string) string {
	person := object
	for _, d := range []string{" as ", " to ", ", "} {
		if idx := strings.Index(person, d); idx > 0 {
			person = person[:idx]
		}
	}
	person = strings.TrimRight(strings.TrimSpace(person), " ,.;:")
	if person != "" {
		if r := []rune(person)[0]; unicode.IsUpper(r) {
			*notes = append(*notes, "person:"+person)
		}
	}
	return ""
}
