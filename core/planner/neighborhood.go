package planner

import (
	"math/rand"

	"github.com/kilianp07/hems/core/model"
)

// neighbor proposes one local modification of the candidate: moving or
// inserting an appliance start, nudging an HVAC setpoint, or shifting EV
// charge between slots. Returns false when the drawn move has no
// applicable target in this candidate.
func (p *Planner) neighbor(s *model.Schedule, rng *rand.Rand) (*model.Schedule, bool) {
	switch rng.Intn(3) {
	case 0:
		return p.moveAppliance(s, rng)
	case 1:
		return p.nudgeHVAC(s, rng)
	default:
		return p.shiftEV(s, rng)
	}
}

// moveAppliance relocates a placed appliance to another free start, or
// inserts one the candidate does not start at all, so loads the seed
// could not place stay reachable during search.
func (p *Planner) moveAppliance(s *model.Schedule, rng *rand.Rand) (*model.Schedule, bool) {
	in := s.Input
	if len(in.Appliances) == 0 {
		return nil, false
	}
	a := in.Appliances[rng.Intn(len(in.Appliances))]
	cur, placed := s.StartSlot(a.ID)

	var targets []model.TimeSlot
	for t := a.EarliestStart; t <= latestStart(in, a); t++ {
		if placed && t == cur {
			continue
		}
		if s.Actions[t].Type == model.ActionNoOp {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		return nil, false
	}
	dst := targets[rng.Intn(len(targets))]
	next := s.Clone()
	if placed {
		next.Actions[cur] = model.NoOp()
	}
	next.Actions[dst] = model.StartAppliance(a.ID)
	return next, true
}

func (p *Planner) nudgeHVAC(s *model.Schedule, rng *rand.Rand) (*model.Schedule, bool) {
	in := s.Input
	slot := model.TimeSlot(rng.Intn(in.Horizon()))
	band := in.HVAC.Band(slot)
	lo, hi := band.Min, band.Max
	if !p.constraints.Config().ComfortHard {
		// Soft comfort lets the search trade comfort for cost; the reward
		// model charges for the deviation.
		lo -= p.cfg.PeakRelaxDegrees
		hi += p.cfg.PeakRelaxDegrees
	}

	next := s.Clone()
	switch next.Actions[slot].Type {
	case model.ActionSetHVAC:
		if rng.Intn(4) == 0 {
			next.Actions[slot] = model.NoOp()
			return next, true
		}
		step := 0.5
		if rng.Intn(2) == 0 {
			step = -step
		}
		sp := clamp(next.Actions[slot].Setpoint+step, lo, hi)
		next.Actions[slot] = model.SetHVAC(sp)
		return next, true
	case model.ActionNoOp:
		sp := clamp(in.HVAC.CurrentSetpoint+(rng.Float64()*2-1)*p.cfg.PeakRelaxDegrees, lo, hi)
		next.Actions[slot] = model.SetHVAC(sp)
		return next, true
	default:
		return nil, false
	}
}

func (p *Planner) shiftEV(s *model.Schedule, rng *rand.Rand) (*model.Schedule, bool) {
	ev := s.Input.EV
	if ev == nil || ev.RequiredKWh <= 0 {
		return nil, false
	}
	last := ev.ReadyBy
	if max := model.TimeSlot(s.Input.Horizon() - 1); last > max {
		last = max
	}
	var sources, sinks []model.TimeSlot
	for t := ev.PlugIn; t <= last; t++ {
		switch s.Actions[t].Type {
		case model.ActionChargeEV:
			if s.Actions[t].RateKW > rateEpsilon {
				sources = append(sources, t)
			}
			if s.Actions[t].RateKW < ev.MaxRateKW-rateEpsilon {
				sinks = append(sinks, t)
			}
		case model.ActionNoOp:
			sinks = append(sinks, t)
		}
	}
	if len(sources) == 0 || len(sinks) == 0 {
		return nil, false
	}
	src := sources[rng.Intn(len(sources))]
	dst := sinks[rng.Intn(len(sinks))]
	if src == dst {
		return nil, false
	}

	srcRate := s.Actions[src].RateKW
	dstRate := 0.0
	if s.Actions[dst].Type == model.ActionChargeEV {
		dstRate = s.Actions[dst].RateKW
	}
	delta := srcRate
	if rng.Intn(2) == 0 {
		delta = srcRate / 2
	}
	if room := ev.MaxRateKW - dstRate; delta > room {
		delta = room
	}
	if delta <= rateEpsilon {
		return nil, false
	}

	next := s.Clone()
	if remaining := srcRate - delta; remaining > rateEpsilon {
		next.Actions[src] = model.ChargeEV(remaining)
	} else {
		next.Actions[src] = model.NoOp()
	}
	next.Actions[dst] = model.ChargeEV(dstRate + delta)
	return next, true
}
