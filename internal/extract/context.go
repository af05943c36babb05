package extract

import (
	"strings"

	"github.com/leguplabs/capframe/internal/model"
)

// contextTrigger binds a trigger phrase to a context type and confidence.
// Trigger sets are disjoint across types so one phrase never produces two
// items; one title can still yield several items of different types.
type contextTrigger struct {
	phrase     string
	ctype      model.ContextType
	confidence float64
}

var contextTriggers = []contextTrigger{
	{"solves", model.ContextProblemSolved, 0.7},
	{"tackles", model.ContextProblemSolved, 0.65},
	{"fixes", model.ContextProblemSolved, 0.65},
	{"eliminates", model.ContextProblemSolved, 0.6},
	{"cuts costs", model.ContextProblemSolved, 0.7},
	{"automates", model.ContextProblemSolved, 0.6},

	{"surpasses", model.ContextAchievement, 0.7},
	{"crosses", model.ContextAchievement, 0.6},
	{"hits record", model.ContextAchievement, 0.75},
	{"record revenue", model.ContextAchievement, 0.75},
	{"profitability", model.ContextAchievement, 0.65},
	{"doubles revenue", model.ContextAchievement, 0.7},

	{"milestone", model.ContextMilestone, 0.7},
	{"anniversary", model.ContextMilestone, 0.6},
	{"millionth", model.ContextMilestone, 0.65},
	{"first to", model.ContextMilestone, 0.6},
	{"following their", model.ContextMilestone, 0.55},
	{"one year after", model.ContextMilestone, 0.6},

	{"partnership", model.ContextRelationship, 0.7},
	{"joint venture", model.ContextRelationship, 0.75},
	{"alliance", model.ContextRelationship, 0.65},
	{"collaboration", model.ContextRelationship, 0.65},
	{"teams up", model.ContextRelationship, 0.7},
	{"joins forces", model.ContextRelationship, 0.7},
}

// Context scans the title for every semantic-context trigger and returns all
// matches, not just the first: a single headline can simultaneously announce
// a relationship and reference a milestone.
func Context(title string) []model.ContextItem {
	lower := strings.ToLower(title)
	var items []model.ContextItem
	seen := make(map[model.ContextType]map[string]bool)
	for _, t := range contextTriggers {
		if !strings.Contains(lower, t.phrase) {
			continue
		}
		if seen[t.ctype] == nil {
			seen[t.ctype] = make(map[string]bool)
		}
		if seen[t.ctype][t.phrase] {
			continue
		}
		seen[t.ctype][t.phrase] = true
		items = append(items, model.ContextItem{
			Type:          t.ctype,
			Text:          t.phrase,
			Confidence:    t.confidence,
			ExtractedFrom: "title",
		})
	}
	return items
}
