package planner

import (
	"math"
	"sort"

	"github.com/kilianp07/hems/core/model"
)

// Factor contributions are normalized to a 0-100 scale so magnitudes are
// comparable across kinds. The exact shaping is an implementation choice;
// what matters is that the dominant influence ranks first.

// buildTrace derives the per-action decision record from the final
// schedule: each entry carries the action's marginal reward terms, the
// schedule's terms minus the terms with that action replaced by a no-op,
// plus the context each rationale template renders.
func (p *Planner) buildTrace(s *model.Schedule) model.DecisionTrace {
	in := s.Input
	r := p.rewards.Score(s, in.Budget)
	allowance := p.rewards.DailyAllowance(in.Budget)
	total := s.TotalEnergyKWh()
	headroom := allowance - total
	budgetFactor := budgetPressure(total, allowance)
	peak, hasPeak := in.Prices.PeakWindow()
	setpoints := s.Setpoints()

	trace := model.DecisionTrace{PlanID: s.PlanID}
	for i, a := range s.Actions {
		slot := model.TimeSlot(i)
		if a.Type == model.ActionNoOp {
			continue
		}
		prevSetpoint := in.HVAC.CurrentSetpoint
		if i > 0 {
			prevSetpoint = setpoints[i-1]
		}
		without := s.Clone()
		without.Actions[i] = model.NoOp()
		wr := p.rewards.Score(without, in.Budget)
		entry := model.TraceEntry{
			Slot:           slot,
			Action:         a,
			CostTerm:       r.CostTerm - wr.CostTerm,
			ComfortTerm:    r.ComfortTerm - wr.ComfortTerm,
			DeadlineTerm:   r.DeadlineTerm - wr.DeadlineTerm,
			BudgetTerm:     r.BudgetTerm - wr.BudgetTerm,
			PriceTier:      in.Prices.TierAt(slot),
			ComfortMargin:  comfortMargin(in.HVAC.Band(slot), setpoints[i]),
			BudgetHeadroom: headroom,
			PeakWindow:     peak,
			HasPeakWindow:  hasPeak,
		}

		switch a.Type {
		case model.ActionStartAppliance:
			if app, ok := in.Appliance(a.ApplianceID); ok {
				entry.SlackSlots = app.Slack()
				entry.Factors = applianceFactors(in, app, slot, budgetFactor)
			}
		case model.ActionChargeEV:
			entry.SlackSlots = evSlack(in.EV)
			entry.Factors = chargeFactors(in, slot, budgetFactor)
		case model.ActionStopAppliance:
			if app, ok := in.Appliance(a.ApplianceID); ok {
				entry.SlackSlots = app.Slack()
				entry.Factors = applianceFactors(in, app, slot, budgetFactor)
			}
		case model.ActionSetHVAC:
			entry.Factors = hvacFactors(in, slot, a.Setpoint, prevSetpoint, budgetFactor)
		}
		sort.SliceStable(entry.Factors, func(x, y int) bool {
			return math.Abs(entry.Factors[x].Contribution) > math.Abs(entry.Factors[y].Contribution)
		})
		trace.Entries = append(trace.Entries, entry)
	}
	return trace
}

// comfortMargin is the signed distance to the nearest band edge, negative
// outside the band.
func comfortMargin(band model.ComfortBand, setpoint float64) float64 {
	return math.Min(setpoint-band.Min, band.Max-setpoint)
}

// budgetPressure grows from 0 to 100 as the plan consumes the last fifth
// of the daily allowance, and saturates beyond it.
func budgetPressure(totalKWh, allowance float64) float64 {
	if allowance <= 0 {
		return 100
	}
	frac := totalKWh / allowance
	if frac <= 0.8 {
		return 0
	}
	pressure := (frac - 0.8) / 0.2 * 100
	if pressure > 100 {
		pressure = 100
	}
	return pressure
}

// applianceFactors ranks why an appliance landed where it did: the share
// of the worst feasible window's cost it avoided, deadline pressure from
// the remaining slack, and budget pressure.
func applianceFactors(in *model.Input, app model.Appliance, start model.TimeSlot, budgetFactor float64) []model.Factor {
	chosen := runCost(in.Prices, app, start)
	worst := chosen
	for t := app.EarliestStart; t <= latestStart(in, app); t++ {
		if c := runCost(in.Prices, app, t); c > worst {
			worst = c
		}
	}
	price := 0.0
	if worst > 0 {
		price = 100 * (worst - chosen) / worst
	}
	deadline := 100 * math.Exp(-float64(app.Slack())/2)
	return []model.Factor{
		{Kind: model.FactorPrice, Contribution: price},
		{Kind: model.FactorDeadline, Contribution: deadline},
		{Kind: model.FactorBudget, Contribution: budgetFactor},
	}
}

// chargeFactors ranks an EV charging slot by how cheap it is relative to
// the horizon's price spread.
func chargeFactors(in *model.Input, slot model.TimeSlot, budgetFactor float64) []model.Factor {
	price := priceAdvantage(in.Prices, slot)
	deadline := 0.0
	if in.EV != nil {
		deadline = 100 * math.Exp(-float64(evSlack(in.EV))/2)
	}
	return []model.Factor{
		{Kind: model.FactorPrice, Contribution: price},
		{Kind: model.FactorDeadline, Contribution: deadline},
		{Kind: model.FactorBudget, Contribution: budgetFactor},
	}
}

// hvacFactors splits setpoint changes into price-driven relaxation and
// comfort-driven restoration.
func hvacFactors(in *model.Input, slot model.TimeSlot, setpoint, previous float64, budgetFactor float64) []model.Factor {
	band := in.HVAC.Band(slot)
	dev := band.Deviation(setpoint)
	if setpoint > previous {
		// Relaxing: conditioning less while prices are high.
		exposure := 100 - priceAdvantage(in.Prices, slot)
		comfort := 25.0
		if dev > 0 {
			comfort = 0
		}
		return []model.Factor{
			{Kind: model.FactorPrice, Contribution: exposure},
			{Kind: model.FactorComfort, Contribution: comfort},
			{Kind: model.FactorBudget, Contribution: budgetFactor},
		}
	}
	// Restoring comfort once the expensive window has passed.
	comfort := 90.0 - 25*dev*dev
	if comfort < 0 {
		comfort = 0
	}
	return []model.Factor{
		{Kind: model.FactorComfort, Contribution: comfort},
		{Kind: model.FactorPrice, Contribution: priceAdvantage(in.Prices, slot) / 2},
		{Kind: model.FactorBudget, Contribution: budgetFactor},
	}
}

// priceAdvantage scores a slot 100 at the horizon's cheapest price and 0
// at its most expensive.
func priceAdvantage(prices model.PriceSchedule, slot model.TimeSlot) float64 {
	values := prices.Values()
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		return 0
	}
	return 100 * (hi - prices.At(slot)) / (hi - lo)
}

// evSlack is the number of spare slots in the plug-in window beyond the
// minimum needed at full rate.
func evSlack(ev *model.EVProfile) int {
	if ev == nil || ev.MaxRateKW <= 0 {
		return 0
	}
	needed := int(math.Ceil(ev.RequiredKWh / ev.MaxRateKW))
	return ev.WindowSlots() - needed
}
