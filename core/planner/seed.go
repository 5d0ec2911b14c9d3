package planner

import (
	"sort"

	"github.com/kilianp07/hems/core/model"
)

// seedSchedule builds the greedy starting point: appliances in their
// cheapest feasible windows, EV energy allocated to the cheapest plugged-in
// slots, HVAC relaxed toward the band edge during peak-priced slots.
func (p *Planner) seedSchedule(planID string, in *model.Input) *model.Schedule {
	s := model.NewSchedule(planID, in)
	p.seedAppliances(s)
	p.seedEV(s)
	p.seedHVAC(s)
	return s
}

// seedAppliances assigns each appliance, tightest deadline first, to the
// cheapest window that respects its earliest start and deadline and whose
// start slot is still free. When every feasible start is already taken,
// one occupant is relocated to its own next-cheapest free start; only if
// that fails too does the appliance stay unplaced, surfaced as a deadline
// violation by the constraint controller.
func (p *Planner) seedAppliances(s *model.Schedule) {
	in := s.Input
	apps := make([]model.Appliance, len(in.Appliances))
	copy(apps, in.Appliances)
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].Deadline < apps[j].Deadline })

	for _, a := range apps {
		if start := cheapestFreeStart(s, a); start >= 0 {
			s.Actions[start] = model.StartAppliance(a.ID)
			continue
		}
		p.displace(s, a)
	}
}

// latestStart clamps the appliance's latest feasible start to the horizon.
func latestStart(in *model.Input, a model.Appliance) model.TimeSlot {
	last := a.LatestStart()
	if max := model.TimeSlot(in.Horizon() - a.DurationSlots); last > max {
		last = max
	}
	return last
}

// cheapestFreeStart returns the cheapest no-op start slot in the
// appliance's feasible window, or -1 when every feasible start is taken.
func cheapestFreeStart(s *model.Schedule, a model.Appliance) model.TimeSlot {
	in := s.Input
	best := model.TimeSlot(-1)
	bestCost := 0.0
	for start := a.EarliestStart; start <= latestStart(in, a); start++ {
		if s.Actions[start].Type != model.ActionNoOp {
			continue
		}
		cost := runCost(in.Prices, a, start)
		if best < 0 || cost < bestCost {
			best = start
			bestCost = cost
		}
	}
	return best
}

// displace frees one of a's feasible starts by moving its occupant to that
// appliance's cheapest remaining free start, then places a on the freed
// slot. One level of relocation covers flexible loads parked on the only
// feasible starts of a tighter one.
func (p *Planner) displace(s *model.Schedule, a model.Appliance) bool {
	in := s.Input
	for start := a.EarliestStart; start <= latestStart(in, a); start++ {
		occ := s.Actions[start]
		if occ.Type != model.ActionStartAppliance {
			continue
		}
		other, ok := in.Appliance(occ.ApplianceID)
		if !ok {
			continue
		}
		alt := cheapestFreeStart(s, other)
		if alt < 0 {
			continue
		}
		s.Actions[alt] = model.StartAppliance(other.ID)
		s.Actions[start] = model.StartAppliance(a.ID)
		return true
	}
	return false
}

// runCost returns the cost of running the appliance from the given slot.
func runCost(prices model.PriceSchedule, a model.Appliance, start model.TimeSlot) float64 {
	var cost float64
	for i := 0; i < a.DurationSlots; i++ {
		cost += a.PowerKW * prices.At(start+model.TimeSlot(i))
	}
	return cost
}

// seedEV allocates the EV requirement across the free slots of the
// plug-in window via the LP allocator.
func (p *Planner) seedEV(s *model.Schedule) {
	ev := s.Input.EV
	if ev == nil || ev.RequiredKWh <= 0 {
		return
	}
	last := ev.ReadyBy
	if max := model.TimeSlot(s.Input.Horizon() - 1); last > max {
		last = max
	}
	var slots []model.TimeSlot
	for t := ev.PlugIn; t <= last; t++ {
		if s.Actions[t].Type == model.ActionNoOp {
			slots = append(slots, t)
		}
	}
	rates := p.allocateEV(s.Input.Prices, slots, ev.RequiredKWh, ev.MaxRateKW)
	for i, t := range slots {
		if rates[i] > rateEpsilon {
			s.Actions[t] = model.ChargeEV(rates[i])
		}
	}
}

// seedHVAC holds the base setpoint and relaxes it toward the band maximum
// during peak-priced slots, returning to base afterwards. Setpoint changes
// only occupy slots still free.
func (p *Planner) seedHVAC(s *model.Schedule) {
	in := s.Input
	peak, hasPeak := in.Prices.PeakWindow()
	prev := in.HVAC.CurrentSetpoint
	for t := 0; t < in.Horizon(); t++ {
		slot := model.TimeSlot(t)
		band := in.HVAC.Band(slot)
		base := clamp(in.HVAC.CurrentSetpoint, band.Min, band.Max)
		desired := base
		if hasPeak && peak.Contains(slot) {
			desired = base + p.cfg.PeakRelaxDegrees
			if desired > band.Max {
				desired = band.Max
			}
		}
		if desired != prev && s.Actions[slot].Type == model.ActionNoOp {
			s.Actions[slot] = model.SetHVAC(desired)
			prev = desired
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
