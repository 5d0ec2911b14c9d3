// Package constraint validates candidate schedules against the household's
// hard and soft constraints and prunes the per-slot action set during
// search. The controller is stateless: same schedule and inputs always
// yield the same verdict and the same feasible set.
package constraint

import (
	"fmt"
	"sort"

	"github.com/kilianp07/hems/core/budget"
	"github.com/kilianp07/hems/core/model"
)

// Config toggles which constraints are hard. Deadlines are hard by
// default; comfort and budget default to soft (penalized by the reward
// model instead of rejected). A CircuitLimitKW of zero disables the
// shared-circuit check.
type Config struct {
	DeadlineHard   bool    `json:"deadline_hard"`
	ComfortHard    bool    `json:"comfort_hard"`
	BudgetHard     bool    `json:"budget_hard"`
	CircuitLimitKW float64 `json:"circuit_limit_kw"`
}

// DefaultConfig returns the usual household policy: hard deadlines, soft comfort
// and budget, no circuit limit.
func DefaultConfig() Config {
	return Config{DeadlineHard: true}
}

// Controller checks schedules and generates feasible actions.
type Controller struct {
	cfg    Config
	budget budget.Controller
}

// New returns a Controller for the given configuration.
func New(cfg Config, b budget.Controller) Controller {
	return Controller{cfg: cfg, budget: b}
}

// Config returns the controller's configuration.
func (c Controller) Config() Config { return c.cfg }

// AllSoft reports whether every constraint class is configured soft, in
// which case feasibility checks are advisory only.
func (c Controller) AllSoft() bool {
	return !c.cfg.DeadlineHard && !c.cfg.ComfortHard && !c.cfg.BudgetHard && c.cfg.CircuitLimitKW <= 0
}

// Violations returns every constraint violation in the schedule, hard and
// soft, in deterministic order: appliances in input order, then comfort,
// circuit and budget by slot.
func (c Controller) Violations(s *model.Schedule) []model.Violation {
	var out []model.Violation
	out = append(out, c.applianceViolations(s)...)
	out = append(out, c.comfortViolations(s)...)
	out = append(out, c.circuitViolations(s)...)
	out = append(out, c.budgetViolations(s)...)
	out = append(out, c.evViolations(s)...)
	return out
}

// HardViolations filters Violations down to the ones configured hard.
func (c Controller) HardViolations(s *model.Schedule) []model.Violation {
	var out []model.Violation
	for _, v := range c.Violations(s) {
		if c.isHard(v.Kind) {
			out = append(out, v)
		}
	}
	return out
}

// IsFeasible reports whether the schedule satisfies every hard constraint.
func (c Controller) IsFeasible(s *model.Schedule) bool {
	return len(c.HardViolations(s)) == 0
}

func (c Controller) isHard(k model.ViolationKind) bool {
	switch k {
	case model.ViolationDeadline, model.ViolationEarliestStart, model.ViolationEVUnderCharge:
		return c.cfg.DeadlineHard
	case model.ViolationComfort:
		return c.cfg.ComfortHard
	case model.ViolationBudget:
		return c.cfg.BudgetHard
	case model.ViolationCircuit:
		return c.cfg.CircuitLimitKW > 0
	default:
		return false
	}
}

func (c Controller) applianceViolations(s *model.Schedule) []model.Violation {
	var out []model.Violation
	for _, a := range s.Input.Appliances {
		w, started := s.RunWindow(a)
		if !started {
			out = append(out, model.Violation{
				Kind:        model.ViolationDeadline,
				ApplianceID: a.ID,
				Slot:        a.Deadline,
				Detail:      "never started",
			})
			continue
		}
		if w.From < a.EarliestStart {
			out = append(out, model.Violation{
				Kind:        model.ViolationEarliestStart,
				ApplianceID: a.ID,
				Slot:        w.From,
				Detail:      fmt.Sprintf("starts at %d before earliest start %d", w.From, a.EarliestStart),
			})
		}
		if !s.Completes(a) {
			out = append(out, model.Violation{
				Kind:        model.ViolationDeadline,
				ApplianceID: a.ID,
				Slot:        w.To,
				Detail:      fmt.Sprintf("does not complete by deadline %d", a.Deadline),
			})
		}
	}
	return out
}

func (c Controller) comfortViolations(s *model.Schedule) []model.Violation {
	var out []model.Violation
	for i, sp := range s.Setpoints() {
		band := s.Input.HVAC.Band(model.TimeSlot(i))
		if dev := band.Deviation(sp); dev > 0 {
			out = append(out, model.Violation{
				Kind:   model.ViolationComfort,
				Slot:   model.TimeSlot(i),
				Detail: fmt.Sprintf("setpoint %.1f outside band [%.1f, %.1f]", sp, band.Min, band.Max),
			})
		}
	}
	return out
}

func (c Controller) circuitViolations(s *model.Schedule) []model.Violation {
	if c.cfg.CircuitLimitKW <= 0 {
		return nil
	}
	var out []model.Violation
	rates := s.EVRates()
	for i := range s.Actions {
		_, fixed := s.AppliancePowerAt(model.TimeSlot(i))
		draw := fixed + rates[i]
		if draw > c.cfg.CircuitLimitKW {
			out = append(out, model.Violation{
				Kind:   model.ViolationCircuit,
				Slot:   model.TimeSlot(i),
				Detail: fmt.Sprintf("fixed draw %.2f kW exceeds circuit limit %.2f kW", draw, c.cfg.CircuitLimitKW),
			})
		}
	}
	return out
}

func (c Controller) budgetViolations(s *model.Schedule) []model.Violation {
	allowance := c.budget.DailyAllowance(s.Input.Budget)
	total := s.TotalEnergyKWh()
	if total > allowance+c.budget.ToleranceKWh {
		return []model.Violation{{
			Kind:   model.ViolationBudget,
			Slot:   0,
			Detail: fmt.Sprintf("plan uses %.2f kWh against a %.2f kWh daily allowance", total, allowance),
		}}
	}
	return nil
}

func (c Controller) evViolations(s *model.Schedule) []model.Violation {
	ev := s.Input.EV
	if ev == nil || ev.RequiredKWh <= 0 {
		return nil
	}
	var out []model.Violation
	rates := s.EVRates()
	for i, r := range rates {
		if r <= 0 {
			continue
		}
		t := model.TimeSlot(i)
		if t < ev.PlugIn || t > ev.ReadyBy {
			out = append(out, model.Violation{
				Kind:   model.ViolationEVUnderCharge,
				Slot:   t,
				Detail: fmt.Sprintf("charging outside plug-in window [%d, %d]", ev.PlugIn, ev.ReadyBy),
			})
		}
		if r > ev.MaxRateKW {
			out = append(out, model.Violation{
				Kind:   model.ViolationEVUnderCharge,
				Slot:   t,
				Detail: fmt.Sprintf("rate %.2f kW above maximum %.2f kW", r, ev.MaxRateKW),
			})
		}
	}
	if delivered := s.EVDeliveredKWh(); delivered < ev.RequiredKWh-1e-9 {
		out = append(out, model.Violation{
			Kind:   model.ViolationEVUnderCharge,
			Slot:   ev.ReadyBy,
			Detail: fmt.Sprintf("delivered %.2f kWh of required %.2f kWh", delivered, ev.RequiredKWh),
		})
	}
	return out
}

// HorizonFeasible checks for dead ends from the given slot onward: an
// appliance not yet started whose latest feasible start has already
// passed makes every extension of the schedule infeasible. Detecting this
// early keeps the search from completing doomed candidates.
func (c Controller) HorizonFeasible(s *model.Schedule, from model.TimeSlot) (bool, []model.Violation) {
	var out []model.Violation
	for _, a := range s.Input.Appliances {
		if _, started := s.StartSlot(a.ID); started {
			continue
		}
		earliest := a.EarliestStart
		if from > earliest {
			earliest = from
		}
		if earliest > a.LatestStart() {
			out = append(out, model.Violation{
				Kind:        model.ViolationDeadline,
				ApplianceID: a.ID,
				Slot:        earliest,
				Detail: fmt.Sprintf("no remaining slack: latest start %d already passed at slot %d",
					a.LatestStart(), earliest),
			})
		}
	}
	if s.Input.EV != nil && s.Input.EV.RequiredKWh > 0 && !s.Input.EV.Deliverable() {
		out = append(out, model.Violation{
			Kind:   model.ViolationEVUnderCharge,
			Slot:   s.Input.EV.PlugIn,
			Detail: "required energy cannot fit in the plug-in window at maximum rate",
		})
	}
	return len(out) == 0, out
}

// FeasibleActions returns the pruned candidate action set for the slot
// given the current partial schedule. Deterministic: appliances in input
// order, then HVAC candidates, then EV rates, then no-op.
func (c Controller) FeasibleActions(s *model.Schedule, slot model.TimeSlot) []model.Action {
	var out []model.Action
	for _, a := range s.Input.Appliances {
		if _, started := s.StartSlot(a.ID); started {
			continue
		}
		if slot >= a.EarliestStart && slot <= a.LatestStart() {
			out = append(out, model.StartAppliance(a.ID))
		}
	}
	band := s.Input.HVAC.Band(slot)
	for _, sp := range hvacCandidates(band) {
		out = append(out, model.SetHVAC(sp))
	}
	if ev := s.Input.EV; ev != nil && ev.RequiredKWh > 0 && slot >= ev.PlugIn && slot <= ev.ReadyBy {
		for _, rate := range []float64{ev.MaxRateKW, ev.MaxRateKW / 2} {
			if rate > 0 {
				out = append(out, model.ChargeEV(rate))
			}
		}
	}
	out = append(out, model.NoOp())
	return out
}

// hvacCandidates discretizes the comfort band into the setpoints the
// search considers: band edges and midpoint, low to high.
func hvacCandidates(band model.ComfortBand) []float64 {
	sps := []float64{band.Min, (band.Min + band.Max) / 2, band.Max}
	sort.Float64s(sps)
	return sps
}
