package scenarios

import (
	"context"
	"errors"
	"testing"

	"github.com/kilianp07/hems/core/budget"
	"github.com/kilianp07/hems/core/constraint"
	"github.com/kilianp07/hems/core/logger"
	"github.com/kilianp07/hems/core/planner"
	"github.com/kilianp07/hems/core/reward"
)

// RunScenario plans the scenario's day and checks it against the
// expectations declared in the YAML file.
func RunScenario(t *testing.T, sc *Scenario) {
	in, err := sc.ToInput()
	if err != nil {
		t.Fatalf("scenario input: %v", err)
	}

	ctrl := constraint.New(constraint.DefaultConfig(), budget.New())
	rewards, err := reward.New(reward.DefaultWeights(), budget.New())
	if err != nil {
		t.Fatalf("reward model: %v", err)
	}

	cfg := planner.Config{Seed: 42}
	cfg.SetDefaults()
	pl, err := planner.New(cfg, ctrl, rewards, logger.Nop{})
	if err != nil {
		t.Fatalf("planner: %v", err)
	}

	res, err := pl.Plan(context.Background(), in)
	if err != nil {
		var infeasible *planner.InfeasibleHorizonError
		if !errors.As(err, &infeasible) {
			t.Fatalf("plan: %v", err)
		}
	}

	if res.Feasible != sc.Expected.Feasible {
		t.Errorf("scenario %s: expected feasible=%v, got %v (violations: %v)",
			sc.Name, sc.Expected.Feasible, res.Feasible, res.Violations)
	}

	for _, want := range sc.Expected.Placements {
		start, ok := res.Schedule.StartSlot(want.Appliance)
		if !ok {
			t.Errorf("scenario %s: appliance %s never started", sc.Name, want.Appliance)
			continue
		}
		if int(start) != want.Start {
			t.Errorf("scenario %s: appliance %s started at slot %d, want %d",
				sc.Name, want.Appliance, start, want.Start)
		}
	}

	if sc.Expected.MaxCost > 0 {
		if cost := res.Schedule.TotalCost(); cost > sc.Expected.MaxCost {
			t.Errorf("scenario %s: plan cost %.2f exceeds %.2f", sc.Name, cost, sc.Expected.MaxCost)
		}
	}
}
