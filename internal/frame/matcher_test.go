package frame

import (
	"strings"
	"testing"

	"github.com/leguplabs/capframe/internal/model"
)

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"OpenAI acquires Rockset", "OpenAI acquires Rockset"},
		{"OpenAI   acquires\tRockset ", "OpenAI acquires Rockset"},
		{"<b>Klarna</b> files for IPO", "Klarna files for IPO"},
		{"Stripe &amp; Shopify sign agreement with Amazon", "Stripe & Shopify sign agreement with Amazon"},
		{"Klarna files for IPO | TechCrunch", "Klarna files for IPO"},
	}
	for _, c := range cases {
		if got := NormalizeTitle(c.in); got != c.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMatch_DirectionalSlots(t *testing.T) {
	m := Match("OpenAI acquires Rockset in $200M deal")
	if m.Frame != model.FrameDirectional {
		t.Fatalf("Expected DIRECTIONAL, got %s", m.Frame)
	}
	if m.PatternID != "acquire_plain" {
		t.Errorf("Expected acquire_plain, got %s", m.PatternID)
	}
	if m.SubjectSlot != "OpenAI" {
		t.Errorf("Expected subject OpenAI, got %q", m.SubjectSlot)
	}
	if m.ObjectSlot != "Rockset" {
		t.Errorf("Expected object Rockset (trailing deal detail trimmed), got %q", m.ObjectSlot)
	}
	if m.Verb != "acquires" {
		t.Errorf("Expected verb acquires, got %q", m.Verb)
	}
}

func TestMatch_SelfEventHasNoObject(t *testing.T) {
	m := Match("Metaview raises $7M Series A")
	if m.Frame != model.FrameSelfEvent {
		t.Fatalf("Expected SELF_EVENT, got %s", m.Frame)
	}
	if m.SubjectSlot != "Metaview" {
		t.Errorf("Expected subject Metaview, got %q", m.SubjectSlot)
	}
	if m.ObjectSlot != "" {
		t.Errorf("Self events carry no object slot, got %q", m.ObjectSlot)
	}
}

func TestMatch_LongestVerbWins(t *testing.T) {
	// "raises funding" and "raises" both occur; the longer phrase is the more
	// specific pattern and must win.
	m := Match("It raises funding")
	if m.PatternID != "raise_funding" {
		t.Errorf("Expected raise_funding to beat raise_amount, got %s", m.PatternID)
	}

	m = Match("Palantir wins contract with US Army")
	if m.PatternID != "win_contract_with" {
		t.Errorf("Expected win_contract_with to beat win_contract, got %s", m.PatternID)
	}
}

func TestMatch_StripsBackerModifier(t *testing.T) {
	m := Match("YC-backed Metaview raises $7M Series A")
	if m.SubjectSlot != "Metaview" {
		t.Fatalf("Expected backer modifier stripped, subject %q", m.SubjectSlot)
	}
	if !hasNote(m.Notes, "stripped_modifier:YC-backed") {
		t.Errorf("Expected stripped_modifier note, got %v", m.Notes)
	}
	if !hasNote(m.Notes, "backer:YC") {
		t.Errorf("Expected backer note, got %v", m.Notes)
	}
}

func TestMatch_StripsMultiWordBackerAsNote(t *testing.T) {
	m := Match("Sam Altman-backed Helion raises $500M")
	if m.SubjectSlot != "Helion" {
		t.Fatalf("Expected person-backer phrase stripped, subject %q", m.SubjectSlot)
	}
	if !hasNote(m.Notes, "backer:Sam Altman") {
		t.Errorf("Expected the person recorded as a note, got %v", m.Notes)
	}
}

func TestMatch_StripsAdjectivalModifier(t *testing.T) {
	m := Match("Fast-growing Klarna raises $800M")
	if m.SubjectSlot != "Klarna" {
		t.Fatalf("Expected adjectival modifier stripped, subject %q", m.SubjectSlot)
	}
	if !hasNote(m.Notes, "stripped_modifier:Fast-growing") {
		t.Errorf("Expected stripped_modifier note, got %v", m.Notes)
	}
}

func TestMatch_ExecSubjectAndPersonNote(t *testing.T) {
	m := Match("Databricks names Ali Ghodsi as CEO")
	if m.Frame != model.FrameExecEvent {
		t.Fatalf("Expected EXEC_EVENT, got %s", m.Frame)
	}
	if m.SubjectSlot != "Databricks" {
		t.Errorf("Expected subject Databricks, got %q", m.SubjectSlot)
	}
	if m.ObjectSlot != "" {
		t.Errorf("Person slot must never become an object, got %q", m.ObjectSlot)
	}
	if !hasNote(m.Notes, "person:Ali Ghodsi") {
		t.Errorf("Expected person note, got %v", m.Notes)
	}
}

func TestMatch_ExecRolePhraseStripped(t *testing.T) {
	m := Match("Stripe CFO Dhivya Suryadevara steps down")
	if m.Frame != model.FrameExecEvent {
		t.Fatalf("Expected EXEC_EVENT, got %s", m.Frame)
	}
	if m.SubjectSlot != "Stripe" {
		t.Errorf("Expected role phrase stripped from subject, got %q", m.SubjectSlot)
	}
}

func TestMatch_BidirectionalObject(t *testing.T) {
	m := Match("Acme partners with Globex on logistics")
	if m.Frame != model.FrameBidirectional {
		t.Fatalf("Expected BIDIRECTIONAL, got %s", m.Frame)
	}
	if m.SubjectSlot != "Acme" || m.ObjectSlot != "Globex" {
		t.Errorf("Expected Acme/Globex, got %q/%q", m.SubjectSlot, m.ObjectSlot)
	}
}

func TestMatch_NoPattern(t *testing.T) {
	m := Match("Figma, Adobe call off merger")
	if m.Frame != model.FrameUnknown {
		t.Errorf("Expected UNKNOWN for unmatched title, got %s", m.Frame)
	}
	if m.PatternID != "" {
		t.Errorf("Expected empty pattern ID, got %s", m.PatternID)
	}
}

func TestMatch_WholeWordOnly(t *testing.T) {
	// "buys" must not fire inside "buyside".
	m := Match("Acme hires buyside analysts")
	if m.PatternID == "acquire_buyout" {
		t.Error("Verb matched inside a longer word")
	}
}

func hasNote(notes []string, want string) bool {
	for _, n := range notes {
		if n == want {
			return true
		}
	}
	return false
}

func TestMatch_SubjectClauseTrimmedAtComma(t *testing.T) {
	m := Match("After months of talks, Acme merges with Globex")
	if m.SubjectSlot != "Acme" {
		t.Errorf("Expected subject Acme, got %q", m.SubjectSlot)
	}
	if !hasNote(m.Notes, "subject_clause_trimmed") {
		t.Errorf("Expected subject_clause_trimmed note, got %v", m.Notes)
	}

	// A clause ending right at the verb leaves the slot empty rather than
	// passing the clause through as a name.
	m = Match("Acme surpasses milestone, teams up with Globex")
	if m.SubjectSlot != "" {
		t.Errorf("Expected empty subject slot, got %q", m.SubjectSlot)
	}
	if m.ObjectSlot != "Globex" {
		t.Errorf("Expected object Globex, got %q", m.ObjectSlot)
	}
}

func TestMatch_NotesRecordObjectTrim(t *testing.T) {
	m := Match("Bolt snaps up Deliverr for $1.8B")
	if m.ObjectSlot != "Deliverr" {
		t.Fatalf("Expected object Deliverr, got %q", m.ObjectSlot)
	}
	found := false
	for _, n := range m.Notes {
		if strings.HasPrefix(n, "object_trimmed") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected object_trimmed note, got %v", m.Notes)
	}
}
