package extract

import "testing"

func TestRound_Basic(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Metaview raises $7M Series A", "Series A"},
		{"Acme closes $3M seed round", "Seed"},
		{"Acme raises pre-seed funding", "Pre-Seed"},
		{"Northvolt secures $1B Series F", "Series F"},
	}
	for _, c := range cases {
		got, ok := Round(c.title)
		if !ok {
			t.Errorf("%q: expected round %s, got none", c.title, c.want)
			continue
		}
		if got != c.want {
			t.Errorf("%q: expected %s, got %s", c.title, c.want, got)
		}
	}
}

func TestRound_MilestoneReferenceExcluded(t *testing.T) {
	// "following their Series C" refers back to an earlier round; it must not
	// be reported as the current round. The referential-cue window is the
	// disambiguation heuristic this package commits to.
	titles := []string{
		"Acme doubles headcount following their Series C",
		"Acme expands to Europe after Series B",
		"Acme hits profitability since their seed round",
	}
	for _, title := range titles {
		if round, ok := Round(title); ok {
			t.Errorf("%q: expected no current round, got %s", title, round)
		}
	}
}

func TestRound_CurrentRoundNextToReference(t *testing.T) {
	// The announced round is still extracted when a past-round reference
	// appears elsewhere in the title.
	round, ok := Round("Acme raises $20M Series B, two years after their Series A")
	if !ok || round != "Series B" {
		t.Errorf("Expected Series B, got %q (ok=%v)", round, ok)
	}
}

func TestRound_None(t *testing.T) {
	if round, ok := Round("OpenAI acquires Rockset in $200M deal"); ok {
		t.Errorf("Expected no round, got %s", round)
	}
}
