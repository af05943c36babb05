package model

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion identifies the CapitalEvent wire shape. Any breaking change to
// the record bumps this string so downstream consumers can detect incompatible
// payloads without inspecting individual fields.
const SchemaVersion = "1"

// ParserVersion identifies the classifier build that produced an event.
const ParserVersion = "0.4.1"

// FrameType is the syntactic shape of a headline, independent of the business
// meaning of the event it describes.
type FrameType string

const (
	FrameSelfEvent     FrameType = "SELF_EVENT"    // subject acts alone: "X raises $5M"
	FrameDirectional   FrameType = "DIRECTIONAL"   // subject acts on object: "X acquires Y"
	FrameBidirectional FrameType = "BIDIRECTIONAL" // mutual: "X partners with Y"
	FrameExecEvent     FrameType = "EXEC_EVENT"    // personnel change
	FrameUnknown       FrameType = "UNKNOWN"       // no pattern matched
)

// EventType is the canonical business meaning of a capital event. FILTERED and
// OTHER are first-class values, not absence of a value.
type EventType string

const (
	EventFunding     EventType = "FUNDING"
	EventInvestment  EventType = "INVESTMENT"
	EventAcquisition EventType = "ACQUISITION"
	EventMerger      EventType = "MERGER"
	EventPartnership EventType = "PARTNERSHIP"
	EventLaunch      EventType = "LAUNCH"
	EventIPOFiling   EventType = "IPO_FILING"
	EventValuation   EventType = "VALUATION"
	EventExecChange  EventType = "EXEC_CHANGE"
	EventContract    EventType = "CONTRACT"
	EventOther       EventType = "OTHER"
	EventFiltered    EventType = "FILTERED"
)

// EntityRole positions a named entity inside a capital event.
type EntityRole string

const (
	RoleSubject      EntityRole = "SUBJECT"
	RoleObject       EntityRole = "OBJECT"
	RoleCounterparty EntityRole = "COUNTERPARTY"
	RoleChannel      EntityRole = "CHANNEL"
)

// EntitySource records how an entity was obtained.
type EntitySource string

const (
	EntityFromFrame     EntitySource = "frame"
	EntityFromHeuristic EntitySource = "heuristic"
)

// Entity is a named organization participating in an event. Names are
// non-empty, trimmed, and deduplicated by (name, role) within one event.
type Entity struct {
	Name       string       `json:"name"`
	Role       EntityRole   `json:"role"`
	Confidence float64      `json:"confidence"`
	Source     EntitySource `json:"source"`
}

// ContextType classifies a semantic-context signal found in the title.
type ContextType string

const (
	ContextProblemSolved ContextType = "problem_solved"
	ContextAchievement   ContextType = "achievement"
	ContextMilestone     ContextType = "milestone"
	ContextRelationship  ContextType = "relationship"
)

// ContextItem is one semantic-context signal. A single headline may carry
// several simultaneous signals, so events hold a list rather than one slot.
type ContextItem struct {
	Type          ContextType `json:"type"`
	Text          string      `json:"text"`
	Confidence    float64     `json:"confidence"`
	ExtractedFrom string      `json:"extracted_from"`
}

// Amount is a monetary figure normalized to a USD equivalent alongside the raw
// matched substring and detected currency.
type Amount struct {
	Raw      string  `json:"raw"`
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
	USD      float64 `json:"usd"`
}

// Decision is the terminal outcome of one parse.
type Decision string

const (
	DecisionAccept Decision = "ACCEPT"
	DecisionReject Decision = "REJECT"
)

// Extraction carries the audit trail of one parse: which pattern fired, why a
// title was filtered or rejected, and whether downstream may build graph edges.
type Extraction struct {
	PatternID      string   `json:"pattern_id,omitempty"`
	FilteredReason string   `json:"filtered_reason,omitempty"`
	FallbackUsed   bool     `json:"fallback_used"`
	Decision       Decision `json:"decision"`
	GraphSafe      bool     `json:"graph_safe"`
	RejectReason   string   `json:"reject_reason,omitempty"`
	Notes          []string `json:"notes,omitempty"`
}

// CapitalEvent is the structured record produced for one headline. It is
// constructed once per input, immutable after return, and always fully
// populated: callers branch on Extraction.Decision and Extraction.GraphSafe,
// never on field presence.
type CapitalEvent struct {
	EventID       string `json:"event_id"`
	SchemaVersion string `json:"schema_version"`
	ParserVersion string `json:"parser_version"`

	Title       string    `json:"title"`
	Publisher   string    `json:"publisher"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`

	EventType       EventType     `json:"event_type"`
	FrameType       FrameType     `json:"frame_type"`
	Verb            string        `json:"verb,omitempty"`
	FrameConfidence float64       `json:"frame_confidence"`
	Subject         string        `json:"subject,omitempty"`
	Object          string        `json:"object,omitempty"`
	Entities        []Entity      `json:"entities"`
	Amounts         []Amount      `json:"amounts,omitempty"`
	Round           string        `json:"round,omitempty"`
	SemanticContext []ContextItem `json:"semantic_context"`

	Extraction Extraction `json:"extraction"`
}

// eventNamespace scopes deterministic event IDs. Derived once from the DNS
// namespace so identity survives rebuilds and catalog changes.
var eventNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("capframe.leguplabs.com"))

// EventID derives the identity of an event from publisher and URL only.
// Title edits at the publisher must not create duplicate identities, so the
// title is deliberately excluded.
func EventID(publisher, url string) string {
	return uuid.NewSHA1(eventNamespace, []byte(publisher+"|"+url)).String()
}
