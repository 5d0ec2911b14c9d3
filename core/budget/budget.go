// Package budget tracks monthly energy allowance consumption and derives
// the per-day ceiling the planner works against. The equal-split policy in
// DailyAllowance is deliberately simple and can be swapped without touching
// the Controller interface surface.
package budget

import "github.com/kilianp07/hems/core/model"

// DefaultToleranceKWh is the slack granted before usage is flagged as over
// budget.
const DefaultToleranceKWh = 0.5

// Controller derives daily allowances and folds realized usage back into
// the monthly state. All methods are pure.
type Controller struct {
	ToleranceKWh float64
}

// New returns a Controller with the default tolerance.
func New() Controller {
	return Controller{ToleranceKWh: DefaultToleranceKWh}
}

// DailyAllowance splits the remaining monthly allowance evenly across the
// remaining days. A fully spent month yields zero, never a negative
// allowance.
func (c Controller) DailyAllowance(state model.BudgetState) float64 {
	if state.DaysRemaining <= 0 {
		return 0
	}
	remaining := state.RemainingKWh()
	if remaining <= 0 {
		return 0
	}
	return remaining / float64(state.DaysRemaining)
}

// ApplyUsage folds one realized day of consumption into the budget and
// returns the new state. It never fails: overage beyond the tolerance,
// against either the day's allowance or the monthly total, is reported
// through the OverBudget flag for the next cycle's reward model to
// penalize.
func (c Controller) ApplyUsage(state model.BudgetState, usedKWh float64) model.BudgetState {
	allowance := c.DailyAllowance(state)
	next := state
	next.CumulativeUsageKWh += usedKWh
	if next.DaysRemaining > 0 {
		next.DaysRemaining--
	}
	next.OverBudget = usedKWh > allowance+c.ToleranceKWh ||
		next.CumulativeUsageKWh > next.MonthlyAllowanceKWh+c.ToleranceKWh
	return next
}
