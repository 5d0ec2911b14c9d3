package model

// BudgetState tracks monthly energy budget progress. It is a value:
// applying a day's usage produces a new state, the previous one is left
// untouched. Exceeding the allowance is a soft condition flagged via
// OverBudget, never silently clamped.
type BudgetState struct {
	MonthlyAllowanceKWh float64 `json:"monthly_allowance_kwh"`
	CumulativeUsageKWh  float64 `json:"cumulative_usage_kwh"`
	DaysRemaining       int     `json:"days_remaining"`
	OverBudget          bool    `json:"over_budget"`
}

// NewBudgetState validates and returns a monthly budget state.
func NewBudgetState(monthlyAllowanceKWh, cumulativeUsageKWh float64, daysRemaining int) (BudgetState, error) {
	if monthlyAllowanceKWh <= 0 {
		return BudgetState{}, validationErrorf("budget_state", "monthly allowance must be positive, got %.2f", monthlyAllowanceKWh)
	}
	if cumulativeUsageKWh < 0 {
		return BudgetState{}, validationErrorf("budget_state", "negative cumulative usage %.2f", cumulativeUsageKWh)
	}
	if daysRemaining <= 0 {
		return BudgetState{}, validationErrorf("budget_state", "days remaining must be positive, got %d", daysRemaining)
	}
	return BudgetState{
		MonthlyAllowanceKWh: monthlyAllowanceKWh,
		CumulativeUsageKWh:  cumulativeUsageKWh,
		DaysRemaining:       daysRemaining,
	}, nil
}

// RemainingKWh returns the unspent monthly allowance. It can be negative
// once the household has overrun the month.
func (b BudgetState) RemainingKWh() float64 {
	return b.MonthlyAllowanceKWh - b.CumulativeUsageKWh
}
