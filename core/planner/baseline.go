package planner

import "github.com/kilianp07/hems/core/model"

// BaselinePlan is the run-everything-as-soon-as-possible policy used as
// the comparison point for savings: appliances back to back from slot 0
// (respecting earliest starts), EV at full rate from plug-in, setpoint
// held constant.
func BaselinePlan(planID string, in *model.Input) *model.Schedule {
	s := model.NewSchedule(planID, in)
	cursor := model.TimeSlot(0)
	for _, a := range in.Appliances {
		start := cursor
		if start < a.EarliestStart {
			start = a.EarliestStart
		}
		for int(start) < in.Horizon() && s.Actions[start].Type != model.ActionNoOp {
			start++
		}
		if int(start) >= in.Horizon() {
			continue
		}
		s.Actions[start] = model.StartAppliance(a.ID)
		cursor = start + model.TimeSlot(a.DurationSlots)
	}
	if ev := in.EV; ev != nil && ev.RequiredKWh > 0 {
		remaining := ev.RequiredKWh
		for t := ev.PlugIn; int(t) < in.Horizon() && t <= ev.ReadyBy && remaining > rateEpsilon; t++ {
			if s.Actions[t].Type != model.ActionNoOp {
				continue
			}
			rate := ev.MaxRateKW
			if rate > remaining {
				rate = remaining
			}
			s.Actions[t] = model.ChargeEV(rate)
			remaining -= rate
		}
	}
	return s
}

// Savings compares the baseline bill against the planned one.
type Savings struct {
	AbsoluteCost float64 `json:"absolute_cost"`
	Percent      float64 `json:"percent"`
}

// ComputeSavings returns zero savings when the baseline cost is not
// positive instead of dividing by it.
func ComputeSavings(baseline, planned *model.Schedule) Savings {
	bc := baseline.TotalCost()
	pc := planned.TotalCost()
	if bc <= 0 {
		return Savings{}
	}
	diff := bc - pc
	return Savings{AbsoluteCost: diff, Percent: diff / bc * 100}
}
