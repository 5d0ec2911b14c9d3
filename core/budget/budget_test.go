package budget

import (
	"math"
	"testing"

	"github.com/kilianp07/hems/core/model"
)

func TestDailyAllowanceEqualSplit(t *testing.T) {
	state, err := model.NewBudgetState(300, 150, 10)
	if err != nil {
		t.Fatalf("budget state: %v", err)
	}
	c := New()
	if got := c.DailyAllowance(state); math.Abs(got-15) > 1e-9 {
		t.Fatalf("expected daily allowance 15, got %.3f", got)
	}
}

func TestApplyUsageFlagsOverage(t *testing.T) {
	state, err := model.NewBudgetState(300, 150, 10)
	if err != nil {
		t.Fatalf("budget state: %v", err)
	}
	c := New()
	next := c.ApplyUsage(state, 20)
	if math.Abs(next.CumulativeUsageKWh-170) > 1e-9 {
		t.Fatalf("expected cumulative 170, got %.3f", next.CumulativeUsageKWh)
	}
	if !next.OverBudget {
		t.Fatal("20 kWh against a 15 kWh allowance must flag over_budget")
	}
	if next.DaysRemaining != 9 {
		t.Fatalf("expected 9 days remaining, got %d", next.DaysRemaining)
	}
	if state.CumulativeUsageKWh != 150 || state.OverBudget {
		t.Fatal("ApplyUsage must not mutate the previous state")
	}
}

func TestApplyUsageWithinAllowance(t *testing.T) {
	state, _ := model.NewBudgetState(300, 150, 10)
	c := New()
	next := c.ApplyUsage(state, 12)
	if next.OverBudget {
		t.Fatal("usage under the daily allowance must not flag over_budget")
	}
}

func TestApplyUsageMonthlyOverrun(t *testing.T) {
	state, _ := model.NewBudgetState(300, 295, 2)
	c := New()
	// 2.5 kWh daily allowance; 4 kWh usage overruns both the day and,
	// within tolerance, approaches the month.
	next := c.ApplyUsage(state, 4)
	if !next.OverBudget {
		t.Fatal("expected over_budget")
	}
	next = c.ApplyUsage(next, 3)
	if !next.OverBudget {
		t.Fatal("cumulative beyond monthly allowance must stay flagged")
	}
	if next.CumulativeUsageKWh != 302 {
		t.Fatalf("expected cumulative 302, got %.3f", next.CumulativeUsageKWh)
	}
}

func TestDailyAllowanceSpentMonth(t *testing.T) {
	state, _ := model.NewBudgetState(300, 301, 5)
	c := New()
	if got := c.DailyAllowance(state); got != 0 {
		t.Fatalf("spent month must yield zero allowance, got %.3f", got)
	}
}
