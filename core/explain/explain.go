// Package explain renders a planner decision trace into human-readable
// rationale records. It is pure and deterministic: the same trace always
// yields the same text, and nothing outside the trace is consulted.
package explain

import (
	"fmt"

	"github.com/kilianp07/hems/core/model"
)

// Rationale is one rendered explanation for a fixed action.
type Rationale struct {
	Slot   model.TimeSlot   `json:"slot"`
	Action model.Action     `json:"action"`
	Factor model.FactorKind `json:"factor"`
	Text   string           `json:"text"`
}

// template pairs the text pattern for a dominant factor with the function
// extracting its arguments from the trace entry. New factor kinds extend
// this table without touching Explain's control flow.
type template struct {
	pattern string
	args    func(e model.TraceEntry) []any
}

var templates = map[model.FactorKind]template{
	model.FactorPrice: {
		pattern: "%s at slot %d avoids the peak price window (slots %d-%d)",
		args: func(e model.TraceEntry) []any {
			return []any{subject(e.Action), e.Slot, e.PeakWindow.From, e.PeakWindow.To}
		},
	},
	model.FactorComfort: {
		pattern: "%s at slot %d keeps the temperature inside the comfort band (margin %.1f degrees)",
		args: func(e model.TraceEntry) []any {
			return []any{subject(e.Action), e.Slot, e.ComfortMargin}
		},
	},
	model.FactorDeadline: {
		pattern: "%s at slot %d runs under deadline pressure with %d slots of slack",
		args: func(e model.TraceEntry) []any {
			return []any{subject(e.Action), e.Slot, e.SlackSlots}
		},
	},
	model.FactorBudget: {
		pattern: "%s at slot %d conserves the daily energy allowance (%.1f kWh headroom)",
		args: func(e model.TraceEntry) []any {
			return []any{subject(e.Action), e.Slot, e.BudgetHeadroom}
		},
	},
}

// flatPricePattern replaces the price template when the horizon has no
// distinguishable peak window to name.
const flatPricePattern = "%s at slot %d uses the cheapest available hours"

// Explain maps each trace entry to a rationale naming its dominant factor.
func Explain(trace model.DecisionTrace) []Rationale {
	out := make([]Rationale, 0, len(trace.Entries))
	for _, e := range trace.Entries {
		dom := e.Dominant()
		tpl, ok := templates[dom.Kind]
		if !ok {
			continue
		}
		text := fmt.Sprintf(tpl.pattern, tpl.args(e)...)
		if dom.Kind == model.FactorPrice && !e.HasPeakWindow {
			text = fmt.Sprintf(flatPricePattern, subject(e.Action), e.Slot)
		}
		out = append(out, Rationale{Slot: e.Slot, Action: e.Action, Factor: dom.Kind, Text: text})
	}
	return out
}

func subject(a model.Action) string {
	switch a.Type {
	case model.ActionStartAppliance:
		return fmt.Sprintf("starting %s", a.ApplianceID)
	case model.ActionStopAppliance:
		return fmt.Sprintf("stopping %s", a.ApplianceID)
	case model.ActionSetHVAC:
		return fmt.Sprintf("setting the HVAC to %.1f", a.Setpoint)
	case model.ActionChargeEV:
		return fmt.Sprintf("charging the EV at %.1f kW", a.RateKW)
	default:
		return "idling"
	}
}
