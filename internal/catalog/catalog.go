// Package catalog holds the ordered, versioned verb-phrase pattern table the
// frame matcher scans. The table is built once at init and never mutated, so
// concurrent parse calls share it without locking.
//
// Every pattern carries a permanent ID. The event type mapper keys on ID
// prefixes, never on the literal verb text, so growing this table can never
// reclassify a headline that already matched an existing pattern. Do not
// recycle or rename IDs.
package catalog

import "github.com/leguplabs/capframe/internal/model"

// Version identifies the pattern table revision.
const Version = "2026-07"

// Pattern is one verb-phrase rule. Verb is matched as a whole-word phrase
// against the lowercased normalized title.
type Pattern struct {
	ID         string
	Verb       string
	Frame      model.FrameType
	Confidence float64
}

// patterns is the catalog in priority order: within each frame group the more
// specific phrases come first. Ties between equally long verb matches are
// broken by position here, so ordering is part of the contract: append new
// patterns to the end of their group unless they are strictly more specific
// than an existing one.
var patterns = []Pattern{
	// Directional: subject acts on object.
	{ID: "acquire_complete", Verb: "completes acquisition of", Frame: model.FrameDirectional, Confidence: 0.95},
	{ID: "acquire_agree", Verb: "agrees to acquire", Frame: model.FrameDirectional, Confidence: 0.95},
	{ID: "acquire_snap", Verb: "snaps up", Frame: model.FrameDirectional, Confidence: 0.8},
	{ID: "acquire_plain", Verb: "acquires", Frame: model.FrameDirectional, Confidence: 0.9},
	{ID: "acquire_buyout", Verb: "buys", Frame: model.FrameDirectional, Confidence: 0.7},
	{ID: "leads_round_investment", Verb: "leads investment in", Frame: model.FrameDirectional, Confidence: 0.9},
	{ID: "leads_round_in", Verb: "leads round in", Frame: model.FrameDirectional, Confidence: 0.85},
	{ID: "invest_in", Verb: "invests in", Frame: model.FrameDirectional, Confidence: 0.9},
	{ID: "invest_back", Verb: "backs", Frame: model.FrameDirectional, Confidence: 0.7},
	{ID: "win_contract_with", Verb: "wins contract with", Frame: model.FrameDirectional, Confidence: 0.9},
	{ID: "win_deal_with", Verb: "wins deal with", Frame: model.FrameDirectional, Confidence: 0.85},
	{ID: "land_contract_with", Verb: "lands contract with", Frame: model.FrameDirectional, Confidence: 0.85},

	// Bidirectional: mutual events, both sides are entities.
	{ID: "merge_announce", Verb: "to merge with", Frame: model.FrameBidirectional, Confidence: 0.95},
	{ID: "merge_with", Verb: "merges with", Frame: model.FrameBidirectional, Confidence: 0.95},
	{ID: "sign_partnership", Verb: "signs partnership with", Frame: model.FrameBidirectional, Confidence: 0.9},
	{ID: "sign_agreement", Verb: "signs agreement with", Frame: model.FrameBidirectional, Confidence: 0.85},
	{ID: "sign_mou", Verb: "signs mou with", Frame: model.FrameBidirectional, Confidence: 0.85},
	{ID: "partner_forces", Verb: "joins forces with", Frame: model.FrameBidirectional, Confidence: 0.85},
	{ID: "team_up", Verb: "teams up with", Frame: model.FrameBidirectional, Confidence: 0.85},
	{ID: "partner_with", Verb: "partners with", Frame: model.FrameBidirectional, Confidence: 0.9},
	{ID: "partner_collab", Verb: "collaborates with", Frame: model.FrameBidirectional, Confidence: 0.8},

	// Self events: subject acts alone, trailing text is detail, not an entity.
	{ID: "close_round_oversub", Verb: "closes oversubscribed round", Frame: model.FrameSelfEvent, Confidence: 0.95},
	{ID: "close_round_funding", Verb: "closes funding round", Frame: model.FrameSelfEvent, Confidence: 0.9},
	{ID: "close_round_plain", Verb: "closes round", Frame: model.FrameSelfEvent, Confidence: 0.85},
	{ID: "secure_funding", Verb: "secures funding", Frame: model.FrameSelfEvent, Confidence: 0.9},
	{ID: "secure_investment", Verb: "secures investment", Frame: model.FrameSelfEvent, Confidence: 0.9},
	{ID: "secure_backing", Verb: "secures backing", Frame: model.FrameSelfEvent, Confidence: 0.85},
	{ID: "raise_funding", Verb: "raises funding", Frame: model.FrameSelfEvent, Confidence: 0.9},
	{ID: "raise_capital", Verb: "raises capital", Frame: model.FrameSelfEvent, Confidence: 0.85},
	{ID: "raise_amount", Verb: "raises", Frame: model.FrameSelfEvent, Confidence: 0.85},
	{ID: "file_ipo", Verb: "files for ipo", Frame: model.FrameSelfEvent, Confidence: 0.95},
	{ID: "file_s1", Verb: "files s-1", Frame: model.FrameSelfEvent, Confidence: 0.9},
	{ID: "file_public", Verb: "files to go public", Frame: model.FrameSelfEvent, Confidence: 0.9},
	{ID: "valued_at", Verb: "valued at", Frame: model.FrameSelfEvent, Confidence: 0.85},
	{ID: "win_contract", Verb: "wins contract", Frame: model.FrameSelfEvent, Confidence: 0.8},
	{ID: "land_deal", Verb: "lands deal", Frame: model.FrameSelfEvent, Confidence: 0.75},
	{ID: "unveil_product", Verb: "unveils", Frame: model.FrameSelfEvent, Confidence: 0.75},
	{ID: "debut_product", Verb: "debuts", Frame: model.FrameSelfEvent, Confidence: 0.75},
	{ID: "launch_product", Verb: "launches", Frame: model.FrameSelfEvent, Confidence: 0.75},

	// Executive events: personnel changes, person names are never entities.
	{ID: "exec_stepdown", Verb: "steps down", Frame: model.FrameExecEvent, Confidence: 0.85},
	{ID: "exec_appoint", Verb: "appoints", Frame: model.FrameExecEvent, Confidence: 0.9},
	{ID: "exec_name", Verb: "names", Frame: model.FrameExecEvent, Confidence: 0.8},
	{ID: "exec_hire", Verb: "hires", Frame: model.FrameExecEvent, Confidence: 0.8},
	{ID: "exec_tap", Verb: "taps", Frame: model.FrameExecEvent, Confidence: 0.75},
	{ID: "exec_promote", Verb: "promotes", Frame: model.FrameExecEvent, Confidence: 0.8},
}

// All returns the catalog in priority order. The returned slice is shared and
// must be treated as read-only.
func All() []Pattern {
	return patterns
}

// ByFrame returns the patterns for one frame type, preserving catalog order.
func ByFrame(frame model.FrameType) []Pattern {
	var out []Pattern
	for _, p := range patterns {
		if p.Frame == frame {
			out = append(out, p)
		}
	}
	return out
}

// ByID looks up a single pattern.
func ByID(id string) (Pattern, bool) {
	for _, p := range patterns {
		if p.ID == id {
			return p, true
		}
	}
	return Pattern{}, false
}
