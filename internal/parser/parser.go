// Package parser assembles the final CapitalEvent from the frame matcher,
// event type mapper, auxiliary extractors, and entity quality validator, and
// enforces the structural invariants before returning. This is the analog of
// a pipeline orchestrator, except every stage is a pure in-memory computation.
package parser

import (
	"strings"
	"time"
	"unicode"

	"github.com/leguplabs/capframe/internal/classify"
	"github.com/leguplabs/capframe/internal/extract"
	"github.com/leguplabs/capframe/internal/frame"
	"github.com/leguplabs/capframe/internal/model"
	"github.com/leguplabs/capframe/internal/ontology"
	"github.com/leguplabs/capframe/internal/quality"
)

// Parser is a pure function of its inputs plus two read-only resources: the
// pattern catalog and the ontology tables. Instances are safe for concurrent
// use from any number of goroutines with no coordination.
type Parser struct {
	validator    *quality.Validator
	graphSafeMin float64
}

// New builds a parser from configuration. Ontology tables are merged once
// here; nothing is mutated afterwards.
func New(cfg *model.Config) *Parser {
	min := cfg.Thresholds.GraphSafe
	if min <= 0 || min > 1 {
		min = 0.8
	}
	return &Parser{
		validator:    quality.NewValidator(ontology.New(cfg.Ontology)),
		graphSafeMin: min,
	}
}

// Parse classifies one headline. It is a total function: every input, however
// malformed, yields a fully populated CapitalEvent with Decision set, and it
// never panics. Callers branch on Extraction.Decision and
// Extraction.GraphSafe, never on field presence.
func (p *Parser) Parse(title, publisher, url string, publishedAt time.Time) *model.CapitalEvent {
	ev := &model.CapitalEvent{
		EventID:         model.EventID(publisher, url),
		SchemaVersion:   model.SchemaVersion,
		ParserVersion:   model.ParserVersion,
		Title:           title,
		Publisher:       publisher,
		URL:             url,
		PublishedAt:     publishedAt,
		EventType:       model.EventFiltered,
		FrameType:       model.FrameUnknown,
		Entities:        []model.Entity{},
		SemanticContext: []model.ContextItem{},
		Extraction:      model.Extraction{Decision: model.DecisionAccept},
	}

	normalized := frame.NormalizeTitle(title)
	if !hasLetters(normalized) {
		ev.Extraction.Decision = model.DecisionReject
		ev.Extraction.RejectReason = "empty_title"
		return ev
	}

	if reason, junk := p.validator.IsPublisherJunkTitle(normalized); junk {
		if !p.hasSalvageableToken(normalized) {
			ev.Extraction.Decision = model.DecisionReject
			ev.Extraction.RejectReason = "publisher_junk"
			return ev
		}
		return p.filtered(ev, reason)
	}

	m := frame.Match(normalized)
	ev.Extraction.Notes = m.Notes

	if m.Frame == model.FrameUnknown {
		return p.assembleUnmatched(ev, normalized)
	}
	return p.assembleMatched(ev, normalized, m)
}

// filtered routes the event to the FILTERED-ACCEPT terminal state. Filtered
// events are stored for audit only, so no entities, amounts, or context
// survive on them.
func (p *Parser) filtered(ev *model.CapitalEvent, reason string) *model.CapitalEvent {
	ev.EventType = model.EventFiltered
	ev.Subject = ""
	ev.Object = ""
	ev.Verb = ""
	ev.Entities = []model.Entity{}
	ev.Amounts = nil
	ev.Round = ""
	ev.SemanticContext = []model.ContextItem{}
	ev.FrameConfidence = 0
	ev.Extraction.PatternID = ""
	ev.Extraction.FilteredReason = reason
	ev.Extraction.FallbackUsed = false
	ev.Extraction.GraphSafe = false
	ev.Extraction.Decision = model.DecisionAccept
	return ev
}

// assembleUnmatched handles titles no pattern fired on: classified OTHER with
// a low-confidence heuristic subject when one can be salvaged.
func (p *Parser) assembleUnmatched(ev *model.CapitalEvent, normalized string) *model.CapitalEvent {
	ev.FrameType = model.FrameUnknown
	ev.EventType = classify.MapEventType(model.FrameUnknown, "")
	ev.FrameConfidence = 0.3
	ev.Extraction.FallbackUsed = true

	if subj := leadingNameRun(normalized); subj != "" && p.validator.IsPlausibleCompanyName(subj) {
		ev.Subject = subj
		ev.Entities = append(ev.Entities, model.Entity{
			Name:       subj,
			Role:       model.RoleSubject,
			Confidence: 0.4,
			Source:     model.EntityFromHeuristic,
		})
	}

	ev.Amounts = extract.Amounts(normalized)
	if round, ok := extract.Round(normalized); ok {
		ev.Round = round
	}
	ev.SemanticContext = extract.Context(normalized)
	return p.enforce(ev)
}

// assembleMatched is the normal classification path.
func (p *Parser) assembleMatched(ev *model.CapitalEvent, normalized string, m frame.MatchResult) *model.CapitalEvent {
	ev.FrameType = m.Frame
	ev.EventType = classify.MapEventType(m.Frame, m.PatternID)
	ev.Verb = m.Verb
	ev.Extraction.PatternID = m.PatternID

	confidence := m.BaseConfidence
	allowInvestor := strings.HasPrefix(m.PatternID, "invest_") ||
		strings.HasPrefix(m.PatternID, "leads_round_")

	expected := 1
	if m.Frame == model.FrameDirectional || m.Frame == model.FrameBidirectional {
		expected = 2
	}

	if verdict := p.validator.Check(m.SubjectSlot, allowInvestor); verdict.OK {
		name := strings.TrimSpace(m.SubjectSlot)
		ev.Subject = name
		ev.Entities = append(ev.Entities, model.Entity{
			Name:       name,
			Role:       model.RoleSubject,
			Confidence: confidence,
			Source:     model.EntityFromFrame,
		})
	} else if verdict.Reason != quality.ReasonEmpty {
		ev.Extraction.Notes = append(ev.Extraction.Notes, "subject_rejected:"+verdict.Reason)
	}

	if m.ObjectSlot != "" {
		if verdict := p.validator.Check(m.ObjectSlot, false); verdict.OK {
			name := strings.TrimSpace(m.ObjectSlot)
			ev.Object = name
			ev.Entities = append(ev.Entities, model.Entity{
				Name:       name,
				Role:       model.RoleObject,
				Confidence: confidence * 0.95,
				Source:     model.EntityFromFrame,
			})
		} else {
			ev.Extraction.Notes = append(ev.Extraction.Notes, "object_rejected:"+verdict.Reason)
		}
	}

	ev.Entities = dedupeEntities(ev.Entities)
	if len(ev.Entities) == 0 {
		// Fail closed: a classified frame with no trustworthy entity is worse
		// than no classification.
		notes := ev.Extraction.Notes
		out := p.filtered(ev, "low_quality_entities")
		out.Extraction.Notes = notes
		return out
	}
	if len(ev.Entities) < expected {
		confidence *= 0.75
		ev.Extraction.Notes = append(ev.Extraction.Notes, "entity_shortfall")
	}

	ev.FrameConfidence = clamp01(confidence)
	ev.Amounts = extract.Amounts(normalized)
	if round, ok := extract.Round(normalized); ok {
		ev.Round = round
	}
	ev.SemanticContext = extract.Context(normalized)

	ev.Extraction.FallbackUsed = ev.FrameConfidence < p.graphSafeMin
	ev.Extraction.GraphSafe = ev.Extraction.Decision == model.DecisionAccept &&
		ev.EventType != model.EventFiltered &&
		ev.FrameConfidence >= p.graphSafeMin &&
		len(ev.Entities) > 0

	return p.enforce(ev)
}

// enforce validates the structural invariants. Violations are not silently
// corrected: an inconsistent event is re-routed to FILTERED rather than
// emitted.
func (p *Parser) enforce(ev *model.CapitalEvent) *model.CapitalEvent {
	for i := range ev.Entities {
		ev.Entities[i].Confidence = clamp01(ev.Entities[i].Confidence)
	}
	for i := range ev.SemanticContext {
		ev.SemanticContext[i].Confidence = clamp01(ev.SemanticContext[i].Confidence)
	}
	ev.FrameConfidence = clamp01(ev.FrameConfidence)

	if ev.EventType == model.EventFiltered {
		if len(ev.Entities) != 0 || ev.Subject != "" || ev.Object != "" {
			notes := ev.Extraction.Notes
			out := p.filtered(ev, "low_quality_entities")
			out.Extraction.Notes = notes
			return out
		}
		return ev
	}

	if ev.Subject != "" && !hasEntity(ev.Entities, ev.Subject, model.RoleSubject) {
		return p.rerouteInconsistent(ev)
	}
	if ev.Object != "" && !hasEntity(ev.Entities, ev.Object, model.RoleObject) {
		return p.rerouteInconsistent(ev)
	}
	return ev
}

func (p *Parser) rerouteInconsistent(ev *model.CapitalEvent) *model.CapitalEvent {
	notes := ev.Extraction.Notes
	out := p.filtered(ev, "low_quality_entities")
	out.Extraction.Notes = notes
	return out
}

// hasSalvageableToken reports whether a junk title still names something that
// could plausibly be an organization, which keeps the record worth auditing.
func (p *Parser) hasSalvageableToken(title string) bool {
	words := strings.Fields(title)
	for i, w := range words {
		if i == 0 {
			continue // first word is capitalized by convention
		}
		token := strings.Trim(w, ",.;:!?\"'()")
		if token == "" {
			continue
		}
		if r := []rune(token)[0]; !unicode.IsUpper(r) {
			continue
		}
		if p.validator.IsPlausibleCompanyName(token) {
			return true
		}
	}
	return false
}

// leadingNameRun takes the run of capitalized tokens at the start of the
// title, up to three words, as a heuristic subject candidate.
func leadingNameRun(title string) string {
	words := strings.Fields(title)
	var run []string
	for _, w := range words {
		token := strings.Trim(w, ",.;:!?\"'()")
		if token == "" {
			break
		}
		r := []rune(token)[0]
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			break
		}
		run = append(run, token)
		if len(run) == 3 || strings.HasSuffix(w, ",") || strings.HasSuffix(w, ":") {
			break
		}
	}
	return strings.Join(run, " ")
}

func dedupeEntities(entities []model.Entity) []model.Entity {
	seen := make(map[string]bool)
	out := entities[:0]
	for _, e := range entities {
		key := e.Name + "|" + string(e.Role)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

func hasEntity(entities []model.Entity, name string, role model.EntityRole) bool {
	for _, e := range entities {
		if e.Name == name && e.Role == role {
			return true
		}
	}
	return false
}

func hasLetters(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
