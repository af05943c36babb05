package parser

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/leguplabs/capframe/internal/model"
)

var testTime = time.Date(2026, 7, 14, 9, 30, 0, 0, time.UTC)

func newTestParser() *Parser {
	return New(model.DefaultConfig())
}

func parseTitle(t *testing.T, title string) *model.CapitalEvent {
	t.Helper()
	p := newTestParser()
	return p.Parse(title, "example.com", "https://example.com/"+title[:min(8, len(title))], testTime)
}

func TestParse_Acquisition(t *testing.T) {
	ev := parseTitle(t, "OpenAI acquires Rockset in $200M deal")

	if ev.FrameType != model.FrameDirectional {
		t.Errorf("Expected DIRECTIONAL, got %s", ev.FrameType)
	}
	if ev.EventType != model.EventAcquisition {
		t.Errorf("Expected ACQUISITION, got %s", ev.EventType)
	}
	if ev.Subject != "OpenAI" || ev.Object != "Rockset" {
		t.Errorf("Expected OpenAI/Rockset, got %q/%q", ev.Subject, ev.Object)
	}
	if len(ev.Amounts) != 1 || ev.Amounts[0].USD != 200_000_000 {
		t.Errorf("Expected one $200M amount, got %+v", ev.Amounts)
	}
	if ev.Extraction.Decision != model.DecisionAccept {
		t.Errorf("Expected ACCEPT, got %s", ev.Extraction.Decision)
	}
	if !ev.Extraction.GraphSafe {
		t.Error("Expected graph_safe for a high-confidence two-entity match")
	}
}

func TestParse_FundingWithBackerModifier(t *testing.T) {
	ev := parseTitle(t, "YC-backed Metaview raises $7M Series A")

	if ev.EventType != model.EventFunding {
		t.Errorf("Expected FUNDING, got %s", ev.EventType)
	}
	if ev.Subject != "Metaview" {
		t.Errorf("Expected subject Metaview, got %q", ev.Subject)
	}
	if ev.Round != "Series A" {
		t.Errorf("Expected Series A, got %q", ev.Round)
	}
	if len(ev.Amounts) != 1 || ev.Amounts[0].USD != 7_000_000 {
		t.Errorf("Expected one $7M amount, got %+v", ev.Amounts)
	}
	// The backer is an audit note, never an entity.
	for _, e := range ev.Entities {
		if e.Name == "YC" {
			t.Error("Backer must not be emitted as an entity")
		}
	}
}

func TestParse_TopicHeadlineFiltered(t *testing.T) {
	ev := parseTitle(t, "How Revolut is changing the future of banking")

	if ev.EventType != model.EventFiltered {
		t.Fatalf("Expected FILTERED, got %s", ev.EventType)
	}
	if ev.Extraction.Decision != model.DecisionAccept {
		t.Errorf("Filtered records are still accepted for audit, got %s", ev.Extraction.Decision)
	}
	if ev.Extraction.FilteredReason != "topic_headline" {
		t.Errorf("Expected topic_headline, got %s", ev.Extraction.FilteredReason)
	}
	if len(ev.Entities) != 0 || ev.Subject != "" || ev.Object != "" {
		t.Error("Filtered events must carry no entities or slots")
	}
	if ev.Extraction.GraphSafe {
		t.Error("Filtered events are never graph-safe")
	}
}

func TestParse_LowQualityEntitiesFailClosed(t *testing.T) {
	// "It" matches a funding pattern but fails entity validation: the event
	// is re-routed to FILTERED rather than emitted inconsistent, and it is
	// not a crash or a REJECT.
	ev := parseTitle(t, "It raises funding")

	if ev.EventType != model.EventFiltered {
		t.Fatalf("Expected FILTERED, got %s", ev.EventType)
	}
	if ev.Extraction.FilteredReason != "low_quality_entities" {
		t.Errorf("Expected low_quality_entities, got %s", ev.Extraction.FilteredReason)
	}
	if ev.Extraction.Decision != model.DecisionAccept {
		t.Errorf("Expected ACCEPT, got %s", ev.Extraction.Decision)
	}
	if len(ev.Entities) != 0 {
		t.Errorf("Expected no entities, got %+v", ev.Entities)
	}
}

func TestParse_ExecChangeOmitsPerson(t *testing.T) {
	ev := parseTitle(t, "Databricks names Ali Ghodsi as CEO")

	if ev.FrameType != model.FrameExecEvent {
		t.Errorf("Expected EXEC_EVENT, got %s", ev.FrameType)
	}
	if ev.EventType != model.EventExecChange {
		t.Errorf("Expected EXEC_CHANGE, got %s", ev.EventType)
	}
	if len(ev.Entities) != 1 {
		t.Fatalf("Expected exactly one entity, got %+v", ev.Entities)
	}
	e := ev.Entities[0]
	if e.Name != "Databricks" || e.Role != model.RoleSubject {
		t.Errorf("Expected Databricks as SUBJECT, got %+v", e)
	}
}

func TestParse_RejectEmptyTitle(t *testing.T) {
	p := newTestParser()
	for _, title := range []string{"", "   ", "§§§ 123 !!!"} {
		ev := p.Parse(title, "example.com", "https://example.com/x", testTime)
		if ev.Extraction.Decision != model.DecisionReject {
			t.Errorf("%q: expected REJECT, got %s", title, ev.Extraction.Decision)
		}
		if ev.Extraction.RejectReason == "" {
			t.Errorf("%q: expected reject_reason", title)
		}
	}
}

func TestParse_RejectJunkWithoutSalvageableEntity(t *testing.T) {
	ev := parseTitle(t, "Why startups fail")
	if ev.Extraction.Decision != model.DecisionReject {
		t.Fatalf("Expected REJECT, got %s", ev.Extraction.Decision)
	}
	if ev.Extraction.RejectReason != "publisher_junk" {
		t.Errorf("Expected publisher_junk, got %s", ev.Extraction.RejectReason)
	}
}

func TestParse_Deterministic(t *testing.T) {
	p := newTestParser()
	titles := []string{
		"OpenAI acquires Rockset in $200M deal",
		"YC-backed Metaview raises $7M Series A",
		"How Revolut is changing the future of banking",
		"Acme surpasses milestone, teams up with Globex in new partnership",
	}
	for _, title := range titles {
		a := p.Parse(title, "example.com", "https://example.com/a", testTime)
		b := p.Parse(title, "example.com", "https://example.com/a", testTime)

		aj, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		bj, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(aj) != string(bj) {
			t.Errorf("%q: outputs differ between identical calls", title)
		}
	}
}

func TestParse_EventIDFromPublisherAndURL(t *testing.T) {
	p := newTestParser()
	a := p.Parse("OpenAI acquires Rockset", "example.com", "https://example.com/a", testTime)
	b := p.Parse("OpenAI acquires Rockset in $200M deal", "example.com", "https://example.com/a", testTime)
	if a.EventID != b.EventID {
		t.Error("Title edits must not change event identity")
	}

	c := p.Parse("OpenAI acquires Rockset", "other.com", "https://example.com/a", testTime)
	if a.EventID == c.EventID {
		t.Error("Different publishers must yield different identities")
	}
}

func TestParse_EntitySlotConsistency(t *testing.T) {
	p := newTestParser()
	titles := []string{
		"OpenAI acquires Rockset in $200M deal",
		"Acme partners with Globex on logistics",
		"Sequoia leads investment in Metaview",
		"Klarna files for IPO",
		"Databricks names Ali Ghodsi as CEO",
		"Tiger Global backs fintech startup Slice",
		"Figma, Adobe call off merger",
	}
	for _, title := range titles {
		ev := p.Parse(title, "example.com", "https://example.com/x", testTime)
		if ev.Extraction.Decision != model.DecisionAccept {
			continue
		}
		if ev.Subject != "" && !containsEntity(ev.Entities, ev.Subject, model.RoleSubject) {
			t.Errorf("%q: subject %q missing from entities", title, ev.Subject)
		}
		if ev.Object != "" && !containsEntity(ev.Entities, ev.Object, model.RoleObject) {
			t.Errorf("%q: object %q missing from entities", title, ev.Object)
		}
		if ev.EventType == model.EventFiltered && (len(ev.Entities) != 0 || ev.Subject != "" || ev.Object != "") {
			t.Errorf("%q: FILTERED event carries entities or slots", title)
		}
	}
}

func TestParse_ConfidenceBounds(t *testing.T) {
	p := newTestParser()
	titles := []string{
		"OpenAI acquires Rockset in $200M deal",
		"YC-backed Metaview raises $7M Series A",
		"Acme surpasses milestone, teams up with Globex in new partnership",
		"Figma, Adobe call off merger",
		"It raises funding",
	}
	for _, title := range titles {
		ev := p.Parse(title, "example.com", "https://example.com/x", testTime)
		if ev.FrameConfidence < 0 || ev.FrameConfidence > 1 {
			t.Errorf("%q: frame_confidence %v out of range", title, ev.FrameConfidence)
		}
		for _, e := range ev.Entities {
			if e.Confidence < 0 || e.Confidence > 1 {
				t.Errorf("%q: entity confidence %v out of range", title, e.Confidence)
			}
		}
		for _, c := range ev.SemanticContext {
			if c.Confidence < 0 || c.Confidence > 1 {
				t.Errorf("%q: context confidence %v out of range", title, c.Confidence)
			}
		}
	}
}

func TestParse_InvestorSubjectAllowedForInvestmentFrames(t *testing.T) {
	ev := parseTitle(t, "Sequoia leads investment in Metaview")
	if ev.EventType != model.EventInvestment {
		t.Fatalf("Expected INVESTMENT, got %s", ev.EventType)
	}
	if ev.Subject != "Sequoia" {
		t.Errorf("Expected investor subject for investment frame, got %q", ev.Subject)
	}
	if ev.Object != "Metaview" {
		t.Errorf("Expected object Metaview, got %q", ev.Object)
	}
}

func TestParse_UnmatchedTitleFallsBack(t *testing.T) {
	ev := parseTitle(t, "Revolut tops analyst expectations again")
	if ev.FrameType != model.FrameUnknown {
		t.Fatalf("Expected UNKNOWN frame, got %s", ev.FrameType)
	}
	if ev.EventType != model.EventOther {
		t.Errorf("Expected OTHER, got %s", ev.EventType)
	}
	if !ev.Extraction.FallbackUsed {
		t.Error("Expected fallback_used for low-confidence output")
	}
	if ev.Extraction.GraphSafe {
		t.Error("Unmatched titles are never graph-safe")
	}
	if ev.Subject != "Revolut" {
		t.Errorf("Expected heuristic subject Revolut, got %q", ev.Subject)
	}
	if len(ev.Entities) != 1 || ev.Entities[0].Source != model.EntityFromHeuristic {
		t.Errorf("Expected one heuristic entity, got %+v", ev.Entities)
	}
}

// regressionCorpus freezes expected classifications. Catalog growth must
// never change any row here; extend the corpus when patterns are added.
var regressionCorpus = []struct {
	title string
	event model.EventType
}{
	{"OpenAI acquires Rockset in $200M deal", model.EventAcquisition},
	{"Bolt snaps up Deliverr for $1.8B", model.EventAcquisition},
	{"Acme agrees to acquire Globex", model.EventAcquisition},
	{"YC-backed Metaview raises $7M Series A", model.EventFunding},
	{"Berlin-based Raisin secures funding from major banks", model.EventFunding},
	{"Acme closes funding round at $50M", model.EventFunding},
	{"Sequoia leads investment in Metaview", model.EventInvestment},
	{"Tiger Global backs fintech startup Slice", model.EventInvestment},
	{"Stripe merges with Paystack", model.EventMerger},
	{"Acme partners with Globex on logistics", model.EventPartnership},
	{"Microsoft teams up with Mistral", model.EventPartnership},
	{"Acme signs agreement with Globex", model.EventPartnership},
	{"Figma launches collaborative whiteboard", model.EventLaunch},
	{"Rivian unveils electric van", model.EventLaunch},
	{"Klarna files for IPO", model.EventIPOFiling},
	{"Databricks valued at $43B after new round", model.EventValuation},
	{"Palantir wins contract with US Army", model.EventContract},
	{"Databricks names Ali Ghodsi as CEO", model.EventExecChange},
	{"Stripe CFO Dhivya Suryadevara steps down", model.EventExecChange},
	{"Anthropic appoints new head of policy", model.EventExecChange},
	{"How Revolut is changing the future of banking", model.EventFiltered},
	{"It raises funding", model.EventFiltered},
	{"Figma, Adobe call off merger", model.EventOther},
}

func TestParse_RegressionCorpus(t *testing.T) {
	p := newTestParser()
	for _, c := range regressionCorpus {
		ev := p.Parse(c.title, "example.com", "https://example.com/x", testTime)
		if ev.EventType != c.event {
			t.Errorf("%q: expected %s, got %s (pattern %s)",
				c.title, c.event, ev.EventType, ev.Extraction.PatternID)
		}
		if ev.Extraction.Decision != model.DecisionAccept {
			t.Errorf("%q: expected ACCEPT, got %s", c.title, ev.Extraction.Decision)
		}
	}
}

func containsEntity(entities []model.Entity, name string, role model.EntityRole) bool {
	for _, e := range entities {
		if e.Name == name && e.Role == role {
			return true
		}
	}
	return false
}
