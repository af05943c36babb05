// Package classify maps a matched frame onto the canonical event taxonomy.
package classify

import (
	"strings"

	"github.com/leguplabs/capframe/internal/model"
)

// prefixGroup binds a pattern ID prefix to an event type. Mapping keys on the
// permanent pattern ID, never on the literal verb text: a new pattern whose
// verb happens to share a substring with an old one can therefore never
// reclassify the old one.
type prefixGroup struct {
	prefix string
	event  model.EventType
}

// prefixGroups is checked in order; first match wins.
var prefixGroups = []prefixGroup{
	{prefix: "raise_", event: model.EventFunding},
	{prefix: "close_round_", event: model.EventFunding},
	{prefix: "secure_", event: model.EventFunding},
	{prefix: "invest_", event: model.EventInvestment},
	{prefix: "leads_round_", event: model.EventInvestment},
	{prefix: "acquire_", event: model.EventAcquisition},
	{prefix: "merge_", event: model.EventMerger},
	{prefix: "partner_", event: model.EventPartnership},
	{prefix: "sign_", event: model.EventPartnership},
	{prefix: "team_", event: model.EventPartnership},
	{prefix: "launch_", event: model.EventLaunch},
	{prefix: "unveil_", event: model.EventLaunch},
	{prefix: "debut_", event: model.EventLaunch},
	{prefix: "file_", event: model.EventIPOFiling},
	{prefix: "valued_", event: model.EventValuation},
	{prefix: "win_", event: model.EventContract},
	{prefix: "land_", event: model.EventContract},
}

// MapEventType resolves (frame type, pattern ID) to exactly one event type.
// The function is total: every input yields a value, with OTHER as the only
// fallthrough for matched-but-unmapped patterns and unmatched titles.
func MapEventType(frame model.FrameType, patternID string) model.EventType {
	switch frame {
	case model.FrameExecEvent:
		return model.EventExecChange
	case model.FrameUnknown:
		return model.EventOther
	case model.FrameSelfEvent, model.FrameDirectional, model.FrameBidirectional:
		for _, g := range prefixGroups {
			if strings.HasPrefix(patternID, g.prefix) {
				return g.event
			}
		}
		return model.EventOther
	}
	return model.EventOther
}
