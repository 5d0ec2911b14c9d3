// Package reward scores candidate schedules. The score decomposes into
// cost, comfort, deadline and budget penalty terms combined with
// non-negative weights, so improving any single term never lowers the
// total. The planner relies on that monotonicity.
package reward

import (
	"github.com/kilianp07/hems/core/budget"
	"github.com/kilianp07/hems/core/model"
)

// DeadlineMissPenalty is the fixed penalty per appliance that misses its
// deadline. Large enough that any feasible alternative dominates, while
// still letting the search compare partially infeasible candidates.
const DeadlineMissPenalty = 1000.0

// Weights configures the trade-off between the reward terms. All weights
// must be non-negative.
type Weights struct {
	Cost     float64 `json:"cost"`
	Comfort  float64 `json:"comfort"`
	Deadline float64 `json:"deadline"`
	Budget   float64 `json:"budget"`
}

// DefaultWeights returns a balanced weighting.
func DefaultWeights() Weights {
	return Weights{Cost: 1, Comfort: 1, Deadline: 1, Budget: 1}
}

// Validate checks that no weight is negative.
func (w Weights) Validate() error {
	if w.Cost < 0 || w.Comfort < 0 || w.Deadline < 0 || w.Budget < 0 {
		return &model.ValidationError{Field: "weights", Reason: "reward weights must be non-negative"}
	}
	return nil
}

// Reward is the decomposed score of a schedule. Terms are penalties
// (always >= 0); Total is their negated weighted sum, so higher is better.
type Reward struct {
	CostTerm     float64 `json:"cost_term"`
	ComfortTerm  float64 `json:"comfort_term"`
	DeadlineTerm float64 `json:"deadline_term"`
	BudgetTerm   float64 `json:"budget_term"`
	Total        float64 `json:"total"`
}

// Model scores schedules against a budget state.
type Model struct {
	weights Weights
	budget  budget.Controller
}

// New returns a reward model with the given weights.
func New(weights Weights, b budget.Controller) (Model, error) {
	if err := weights.Validate(); err != nil {
		return Model{}, err
	}
	return Model{weights: weights, budget: b}, nil
}

// Weights returns the configured weights.
func (m Model) Weights() Weights { return m.weights }

// DailyAllowance exposes the budget controller's per-day ceiling so
// callers scoring against it (planner trace, explanations) agree with the
// budget term.
func (m Model) DailyAllowance(state model.BudgetState) float64 {
	return m.budget.DailyAllowance(state)
}

// Score evaluates a complete or partial schedule. Deterministic: identical
// arguments always produce identical rewards.
func (m Model) Score(s *model.Schedule, state model.BudgetState) Reward {
	r := Reward{
		CostTerm:     s.TotalCost(),
		ComfortTerm:  m.comfortTerm(s),
		DeadlineTerm: m.deadlineTerm(s),
		BudgetTerm:   m.budgetTerm(s, state),
	}
	r.Total = -(m.weights.Cost*r.CostTerm +
		m.weights.Comfort*r.ComfortTerm +
		m.weights.Deadline*r.DeadlineTerm +
		m.weights.Budget*r.BudgetTerm)
	return r
}

// comfortTerm sums squared band deviations over the horizon.
func (m Model) comfortTerm(s *model.Schedule) float64 {
	var term float64
	for i, sp := range s.Setpoints() {
		dev := s.Input.HVAC.Band(model.TimeSlot(i)).Deviation(sp)
		term += dev * dev
	}
	return term
}

// deadlineTerm charges a fixed penalty per missed appliance plus a
// proportional penalty for unserved EV energy.
func (m Model) deadlineTerm(s *model.Schedule) float64 {
	term := float64(len(s.MissedAppliances())) * DeadlineMissPenalty
	if ev := s.Input.EV; ev != nil && ev.RequiredKWh > 0 {
		if shortfall := ev.RequiredKWh - s.EVDeliveredKWh(); shortfall > 1e-9 {
			term += shortfall * DeadlineMissPenalty / ev.RequiredKWh
		}
	}
	return term
}

// budgetTerm penalizes the positive excess over the daily allowance. A
// budget state already flagged over budget from a previous day doubles the
// pressure on this cycle.
func (m Model) budgetTerm(s *model.Schedule, state model.BudgetState) float64 {
	allowance := m.budget.DailyAllowance(state)
	excess := s.TotalEnergyKWh() - allowance
	if excess <= 0 {
		return 0
	}
	if state.OverBudget {
		excess *= 2
	}
	return excess
}
